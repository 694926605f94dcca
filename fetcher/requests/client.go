package requests

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"leaguerats/pkg/errs"
	"leaguerats/pkg/messages"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// Sender is the contract every store depends on.
type Sender interface {
	SendRequest(ctx context.Context, request Request) *Response
}

// Request describes a single call to the backend.
// URL may be absolute or relative to the client base URL.
type Request struct {
	URL    string
	Method string
	Data   any
}

// Response is the decoded answer of the backend.
type Response struct {
	StatusCode int
	Body       []byte
	raw        any
}

// NewResponse builds a response from a JSON body.
func NewResponse(statusCode int, body []byte) (*Response, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	return &Response{StatusCode: statusCode, Body: body, raw: raw}, nil
}

// Raw returns the generic JSON value of the body.
func (r *Response) Raw() any {
	if r == nil {
		return nil
	}
	return r.raw
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if r == nil {
		return errs.ErrTransport
	}
	return json.Unmarshal(r.Body, v)
}

// Get builds a GET request.
func Get(url string) Request {
	return Request{URL: url, Method: fasthttp.MethodGet}
}

// Post builds a POST request with a JSON body.
func Post(url string, data any) Request {
	return Request{URL: url, Method: fasthttp.MethodPost, Data: data}
}

// Put builds a PUT request with a JSON body.
func Put(url string, data any) Request {
	return Request{URL: url, Method: fasthttp.MethodPut, Data: data}
}

// Delete builds a DELETE request.
func Delete(url string) Request {
	return Request{URL: url, Method: fasthttp.MethodDelete}
}

type ClientDeps struct {
	BaseURL string
	Timeout time.Duration
	Logger  zerolog.Logger
	Limiter *Limiter
}

// Client sends JSON requests to the backend over fasthttp.
type Client struct {
	baseURL string
	client  *fasthttp.Client
	logger  zerolog.Logger
	limiter *Limiter
}

// Create the client.
func NewClient(deps *ClientDeps) *Client {
	timeout := deps.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(deps.BaseURL, "/"),
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger:  deps.Logger,
		limiter: deps.Limiter,
	}
}

// SendRequest performs the request and returns nil on any failure.
// Only GET, POST, PUT and DELETE are supported.
func (c *Client) SendRequest(ctx context.Context, request Request) *Response {
	url := c.resolve(request.URL)

	switch request.Method {
	case fasthttp.MethodGet, fasthttp.MethodPost, fasthttp.MethodPut, fasthttp.MethodDelete:
	default:
		c.logger.Error().Str("url", url).Msgf(messages.UnsupportedMethodMsg, request.Method)
		return nil
	}

	if err := ctx.Err(); err != nil {
		c.logger.Warn().Err(err).Msgf(messages.RequestFailedMsg, url)
		return nil
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			c.logger.Warn().Err(err).Msgf(messages.RequestFailedMsg, url)
			return nil
		}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	requestID := uuid.New().String()

	req.SetRequestURI(url)
	req.Header.SetMethod(request.Method)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	if request.Data != nil && (request.Method == fasthttp.MethodPost || request.Method == fasthttp.MethodPut) {
		body, err := json.Marshal(request.Data)
		if err != nil {
			c.logger.Error().Err(err).Str("request_id", requestID).Msgf(messages.RequestFailedMsg, url)
			return nil
		}
		req.Header.SetContentType("application/json")
		req.SetBody(body)
	}

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.Do(req, resp)
	}
	if err != nil {
		c.logger.Error().Err(err).Str("request_id", requestID).Msgf(messages.RequestFailedMsg, url)
		return nil
	}

	// The response buffer goes back to the pool on return.
	body := append([]byte(nil), resp.Body()...)

	response, err := NewResponse(resp.StatusCode(), body)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("request_id", requestID).
			Int("status", resp.StatusCode()).
			Str("url", url).
			Msg(messages.FailedToParseMsg)
		return nil
	}

	c.logger.Debug().
		Str("request_id", requestID).
		Str("method", request.Method).
		Str("url", url).
		Int("status", resp.StatusCode()).
		Msg("request completed")

	return response
}

func (c *Client) resolve(url string) string {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return c.baseURL + url
}

// IsResponseOk reports a usable response: non nil with status 200 or 201.
func IsResponseOk(resp *Response) bool {
	return resp != nil && (resp.StatusCode == fasthttp.StatusOK || resp.StatusCode == fasthttp.StatusCreated)
}

// Classify maps a response to the shared error sentinels.
func Classify(resp *Response) error {
	switch {
	case resp == nil:
		return errs.ErrTransport
	case IsResponseOk(resp):
		return nil
	case resp.StatusCode == fasthttp.StatusNotFound:
		return errs.ErrNotFound
	case resp.StatusCode == fasthttp.StatusBadRequest, resp.StatusCode == fasthttp.StatusUnprocessableEntity:
		return fmt.Errorf("%w: status %d", errs.ErrInvalidInput, resp.StatusCode)
	default:
		return fmt.Errorf("%w: status %d", errs.ErrTransport, resp.StatusCode)
	}
}
