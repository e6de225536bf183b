package mechapi

import "errors"

var (
	ErrTransport        = errors.New("mechapi: request failed")
	ErrUnexpectedStatus = errors.New("mechapi: unexpected status")
	ErrDecode           = errors.New("mechapi: invalid response body")
)
