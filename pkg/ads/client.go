package ads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SearchClient is the read surface commands and handlers depend on.
type SearchClient interface {
	SearchStream(ctx context.Context, customerID, query string) (*Stream, error)
}

// MutateClient is the write surface. Mutations are single best-effort calls;
// no batching or retry happens at this layer.
type MutateClient interface {
	Mutate(ctx context.Context, customerID, service string, operations []Operation) ([]MutateResult, error)
	UploadClickConversions(ctx context.Context, customerID string, conversions []ClickConversion) ([]MutateResult, error)
	ScheduleExperiment(ctx context.Context, resourceName string) error
}

// AccountClient lists the customer accounts reachable with the caller's
// credentials.
type AccountClient interface {
	ListAccessibleCustomers(ctx context.Context) ([]string, error)
}

// Client speaks the platform's REST reporting and mutation endpoints.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	cfg.applyDefaults()
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// SearchStream issues a searchStream request and returns a lazy batch
// stream. The stream is finite and non-restartable; callers must drain or
// close it.
func (c *Client) SearchStream(ctx context.Context, customerID, query string) (*Stream, error) {
	url := fmt.Sprintf("%s/%s/customers/%s/googleAds:searchStream", c.cfg.Endpoint, c.cfg.APIVersion, customerID)

	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	resp, err := c.post(ctx, url, body)
	if err != nil {
		return nil, err
	}

	return NewStream(resp.Body)
}

// Operation is a single typed mutation entry, e.g. {"create": {...}} or
// {"remove": "resource/name"}.
type Operation map[string]any

// MutateResult carries the resource name returned for one operation.
type MutateResult struct {
	ResourceName string `json:"resourceName"`
}

type mutateResponse struct {
	Results []MutateResult `json:"results"`
}

// Mutate posts the given operations to a service mutate endpoint, e.g.
// service "campaignBudgets" maps to customers/{id}/campaignBudgets:mutate.
func (c *Client) Mutate(ctx context.Context, customerID, service string, operations []Operation) ([]MutateResult, error) {
	url := fmt.Sprintf("%s/%s/customers/%s/%s:mutate", c.cfg.Endpoint, c.cfg.APIVersion, customerID, service)

	body, err := json.Marshal(map[string]any{"operations": operations})
	if err != nil {
		return nil, fmt.Errorf("marshal mutate request: %w", err)
	}

	resp, err := c.post(ctx, url, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var parsed mutateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode mutate response: %w", err)
	}
	return parsed.Results, nil
}

// ClickConversion is one captured click conversion keyed by GCLID.
type ClickConversion struct {
	GCLID              string  `json:"gclid"`
	ConversionAction   string  `json:"conversionAction"`
	ConversionDateTime string  `json:"conversionDateTime"`
	ConversionValue    float64 `json:"conversionValue"`
	CurrencyCode       string  `json:"currencyCode"`
}

type uploadClickConversionsResponse struct {
	Results []MutateResult `json:"results"`
}

func (c *Client) UploadClickConversions(ctx context.Context, customerID string, conversions []ClickConversion) ([]MutateResult, error) {
	url := fmt.Sprintf("%s/%s/customers/%s:uploadClickConversions", c.cfg.Endpoint, c.cfg.APIVersion, customerID)

	body, err := json.Marshal(map[string]any{
		"conversions":    conversions,
		"partialFailure": false,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal conversion upload: %w", err)
	}

	resp, err := c.post(ctx, url, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var parsed uploadClickConversionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode conversion upload response: %w", err)
	}
	return parsed.Results, nil
}

// ScheduleExperiment moves an experiment out of SETUP. The platform models
// this as a custom verb on the experiment resource itself.
func (c *Client) ScheduleExperiment(ctx context.Context, resourceName string) error {
	url := fmt.Sprintf("%s/%s/%s:scheduleExperiment", c.cfg.Endpoint, c.cfg.APIVersion, resourceName)

	resp, err := c.post(ctx, url, []byte("{}"))
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

type listAccessibleCustomersResponse struct {
	ResourceNames []string `json:"resourceNames"`
}

// ListAccessibleCustomers returns the customer resource names the configured
// credentials can act on. The endpoint is not customer-scoped.
func (c *Client) ListAccessibleCustomers(ctx context.Context) ([]string, error) {
	url := fmt.Sprintf("%s/%s/customers:listAccessibleCustomers", c.cfg.Endpoint, c.cfg.APIVersion)

	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var parsed listAccessibleCustomersResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode accessible customers response: %w", err)
	}
	return parsed.ResourceNames, nil
}

func (c *Client) post(ctx context.Context, url string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	req.Header.Set("developer-token", c.cfg.DeveloperToken)
	if c.cfg.LoginCustomerID != "" {
		req.Header.Set("login-customer-id", c.cfg.LoginCustomerID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", req.URL, err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, parseRequestError(resp.Body, resp.Status)
	}
	return resp, nil
}

// parseRequestError decodes the platform's structured error body into a
// RequestError. An unparsable body still yields a RequestError carrying the
// HTTP status so callers have one error shape to inspect.
func parseRequestError(body io.Reader, httpStatus string) error {
	var parsed struct {
		Error struct {
			Status  string `json:"status"`
			Message string `json:"message"`
			Details []struct {
				RequestID string `json:"requestId"`
				Errors    []struct {
					Message  string `json:"message"`
					Location struct {
						FieldPathElements []struct {
							FieldName string `json:"fieldName"`
						} `json:"fieldPathElements"`
					} `json:"location"`
				} `json:"errors"`
			} `json:"details"`
		} `json:"error"`
	}

	reqErr := &RequestError{Status: httpStatus}
	if err := json.NewDecoder(body).Decode(&parsed); err != nil {
		reqErr.Details = []ErrorDetail{{Message: "unparsable error response"}}
		return reqErr
	}

	if parsed.Error.Status != "" {
		reqErr.Status = parsed.Error.Status
	}
	for _, detail := range parsed.Error.Details {
		if detail.RequestID != "" {
			reqErr.RequestID = detail.RequestID
		}
		for _, entry := range detail.Errors {
			d := ErrorDetail{Message: entry.Message}
			for _, el := range entry.Location.FieldPathElements {
				if d.FieldPath != "" {
					d.FieldPath += "."
				}
				d.FieldPath += el.FieldName
			}
			reqErr.Details = append(reqErr.Details, d)
		}
	}
	if len(reqErr.Details) == 0 && parsed.Error.Message != "" {
		reqErr.Details = []ErrorDetail{{Message: parsed.Error.Message}}
	}
	return reqErr
}
