package mechapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Client talks to the MechApp backend. The session cookie received on login
// is kept in the client's cookie jar.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	jar, _ := cookiejar.New(nil)
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		log: log,
	}
}

// --------------------------------------------------
// Mechanics / workshops
// --------------------------------------------------

func (c *Client) ListMechanics(ctx context.Context) Result[[]Mechanic] {
	var raw rawList
	res := do(ctx, c, http.MethodGet, "/api/mechanics", nil, "", &raw)
	return withValue(res, decodeList[Mechanic](raw))
}

func (c *Client) ListWorkshops(ctx context.Context) Result[[]Workshop] {
	var raw rawList
	res := do(ctx, c, http.MethodGet, "/api/workshops", nil, "", &raw)
	return withValue(res, decodeList[Workshop](raw))
}

func (c *Client) GetWorkshop(ctx context.Context, id uint) Result[WorkshopDetail] {
	var detail WorkshopDetail
	res := do(ctx, c, http.MethodGet, fmt.Sprintf("/api/workshops/%d", id), nil, "", &detail)
	if detail.Reviews == nil {
		detail.Reviews = []Review{}
	}
	return withValue(res, detail)
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (c *Client) UnavailableDays(ctx context.Context, mechanicID uint) Result[[]string] {
	q := url.Values{}
	q.Set("mechanicId", strconv.FormatUint(uint64(mechanicID), 10))

	var body unavailableDaysResponse
	res := do(ctx, c, http.MethodGet, "/api/appointments/unavailable-days?"+q.Encode(), nil, "", &body)
	return withValue(res, decodeList[string](body.Dates))
}

func (c *Client) UnavailableSlots(ctx context.Context, mechanicID uint, dateKey string) Result[[]string] {
	q := url.Values{}
	q.Set("mechanicId", strconv.FormatUint(uint64(mechanicID), 10))
	q.Set("date", dateKey)

	var body unavailableSlotsResponse
	res := do(ctx, c, http.MethodGet, "/api/appointments/unavailable-slots?"+q.Encode(), nil, "", &body)
	return withValue(res, decodeList[string](body.Times))
}

// --------------------------------------------------
// Appointments / profile
// --------------------------------------------------

func (c *Client) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) Result[Appointment] {
	payload, err := json.Marshal(req)
	if err != nil {
		return failed[Appointment](fmt.Errorf("%w: encode appointment: %v", ErrTransport, err))
	}

	var ap Appointment
	res := do(ctx, c, http.MethodPost, "/api/appointments", payload, "application/json", &ap)
	return withValue(res, ap)
}

func (c *Client) Profile(ctx context.Context) Result[Profile] {
	var p Profile
	res := do(ctx, c, http.MethodGet, "/api/profile", nil, "", &p)
	return withValue(res, p)
}

// --------------------------------------------------
// Auth
// --------------------------------------------------

func (c *Client) Login(ctx context.Context, req LoginRequest) Result[Profile] {
	payload, err := json.Marshal(req)
	if err != nil {
		return failed[Profile](fmt.Errorf("%w: encode login: %v", ErrTransport, err))
	}

	var body struct {
		User Profile `json:"user"`
	}
	res := do(ctx, c, http.MethodPost, "/api/login", payload, "application/json", &body)
	return withValue(res, body.User)
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) Result[Profile] {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":             req.Name,
		"email":            req.Email,
		"password":         req.Password,
		"confirm-password": req.ConfirmPassword,
		"account-type":     req.AccountType,
		"terms":            strconv.FormatBool(req.Terms),
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return failed[Profile](fmt.Errorf("%w: encode register: %v", ErrTransport, err))
		}
	}

	if req.Certificate != nil {
		part, err := w.CreateFormFile("certificate", req.Certificate.Name)
		if err != nil {
			return failed[Profile](fmt.Errorf("%w: encode certificate: %v", ErrTransport, err))
		}
		if _, err := part.Write(req.Certificate.Data); err != nil {
			return failed[Profile](fmt.Errorf("%w: encode certificate: %v", ErrTransport, err))
		}
	}

	if err := w.Close(); err != nil {
		return failed[Profile](fmt.Errorf("%w: encode register: %v", ErrTransport, err))
	}

	var body struct {
		User Profile `json:"user"`
	}
	res := do(ctx, c, http.MethodPost, "/api/register", buf.Bytes(), w.FormDataContentType(), &body)
	return withValue(res, body.User)
}

func (c *Client) Logout(ctx context.Context) Result[struct{}] {
	return do(ctx, c, http.MethodPost, "/api/logout", nil, "", nil)
}

// --------------------------------------------------
// Transport
// --------------------------------------------------

func withValue[T any](res Result[struct{}], v T) Result[T] {
	out := Result[T]{
		Status:     res.Status,
		HTTPStatus: res.HTTPStatus,
		Code:       res.Code,
		Message:    res.Message,
		Fields:     res.Fields,
		Err:        res.Err,
	}
	if res.Status == StatusOK {
		out.Value = v
	}
	return out
}

// do sends one request and decodes a 2xx body into out. It never retries.
func do(
	ctx context.Context,
	c *Client,
	method string,
	path string,
	body []byte,
	contentType string,
	out any,
) Result[struct{}] {

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return failed[struct{}](fmt.Errorf("%w: build request: %v", ErrTransport, err))
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("mechapi request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return failed[struct{}](fmt.Errorf("%w: %v", ErrTransport, err))
	}
	defer resp.Body.Close()

	res := Result[struct{}]{
		Status:     statusFromHTTP(resp.StatusCode),
		HTTPStatus: resp.StatusCode,
	}

	if res.Status != StatusOK {
		var e errorResponse
		if b, _ := io.ReadAll(resp.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &e)
		}
		res.Code = e.Code
		res.Message = e.Message
		res.Fields = e.Fields
		res.Err = fmt.Errorf("%w: %s %s returned %d", ErrUnexpectedStatus, method, path, resp.StatusCode)

		c.log.Debug("mechapi non-2xx response",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("error_code", e.Code),
		)
		return res
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return res
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return failed[struct{}](fmt.Errorf("%w: %v", ErrDecode, err))
	}

	return res
}
