package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client proxies current-weather lookups to OpenWeatherMap.
type Client struct {
	http   *resty.Client
	apiKey string
}

func NewClient(baseURL, apiKey string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	return &Client{http: c, apiKey: apiKey}
}

// APIError carries the upstream status so the handler can map 404/401
// distinctly.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("weather api: %d %s", e.StatusCode, e.Message)
}

// Current fetches metric-unit weather for the city and returns the upstream
// document as-is.
func (c *Client) Current(ctx context.Context, city string) (json.RawMessage, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":     city,
			"appid": c.apiKey,
			"units": "metric",
		}).
		Get("/weather")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		var body struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(resp.Body(), &body)
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: body.Message}
	}
	return json.RawMessage(resp.Body()), nil
}
