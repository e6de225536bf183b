package repository

import "errors"

var (
	ErrBuildQuery = errors.New("repository: failed to build query")
	ErrExecQuery  = errors.New("repository: failed to execute query")
	ErrScanRow    = errors.New("repository: failed to scan row")
)
