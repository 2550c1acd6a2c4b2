package request

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"SyconApi/models"
)

const requestTimeout = 30 * time.Second

// Executor performs HTTP calls against the cloud API and classifies the
// outcome. Transport failures, 4xx and 5xx statuses each map to their own
// error code so callers can tell a network problem from a server rejection.
type Executor struct {
	client  *resty.Client
	baseURL string
}

// NewExecutor creates an Executor bound to the given base URL.
func NewExecutor(baseURL string) *Executor {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout)

	return &Executor{
		client:  client,
		baseURL: baseURL,
	}
}

// BearerHeader builds the Authorization header for a protected endpoint.
func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": fmt.Sprintf("Bearer %s", token)}
}

// Get issues a GET request and classifies the response.
func (e *Executor) Get(path string, query map[string]string, headers map[string]string) (*resty.Response, error) {
	resp, err := e.client.R().
		SetHeaders(headers).
		SetQueryParams(query).
		Get(path)
	if err != nil {
		return nil, models.APIError{
			Code:     models.ErrorCodeTransport,
			Message:  fmt.Sprintf("request failed: %v", err),
			Endpoint: path,
		}
	}
	return resp, e.classify(path, resp)
}

// Post issues a POST request with a JSON body and classifies the response.
func (e *Executor) Post(path string, body any, headers map[string]string) (*resty.Response, error) {
	resp, err := e.client.R().
		SetHeader("Content-Type", "application/json").
		SetHeaders(headers).
		SetBody(body).
		Post(path)
	if err != nil {
		return nil, models.APIError{
			Code:     models.ErrorCodeTransport,
			Message:  fmt.Sprintf("request failed: %v", err),
			Endpoint: path,
		}
	}
	return resp, e.classify(path, resp)
}

// classify maps the HTTP status into the error taxonomy. 2xx passes through.
func (e *Executor) classify(path string, resp *resty.Response) error {
	code := resp.StatusCode()
	switch {
	case code >= 500 && code < 600:
		return models.APIError{
			Code:       models.ErrorCodeServerError,
			Message:    fmt.Sprintf("server error %d: %s", code, resp.Body()),
			Endpoint:   path,
			StatusCode: code,
			Body:       string(resp.Body()),
		}
	case code >= 400 && code < 500:
		return models.APIError{
			Code:       models.ErrorCodeBadResponse,
			Message:    fmt.Sprintf("invalid response from server %d: %s", code, resp.Body()),
			Endpoint:   path,
			StatusCode: code,
			Body:       string(resp.Body()),
		}
	}
	return nil
}

// DecodeJSON parses the body of a nominally successful response. A body that
// fails to parse violates the endpoint contract and is reported as a bad
// response even though the status code signaled success.
func DecodeJSON(resp *resty.Response, v any) error {
	if err := json.Unmarshal(resp.Body(), v); err != nil {
		return models.APIError{
			Code:       models.ErrorCodeBadResponse,
			Message:    fmt.Sprintf("invalid JSON body received from server: %v", err),
			Endpoint:   resp.Request.URL,
			StatusCode: resp.StatusCode(),
			Body:       string(resp.Body()),
		}
	}
	return nil
}
