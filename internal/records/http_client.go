package records

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lavamax/console/internal/domain"
)

// httpClient is the HTTP implementation of Client.
type httpClient struct {
	baseURL     string
	httpClient  *http.Client
	listRetries int
}

// NewHTTPClient creates an HTTP client for the records API. listRetries
// bounds the retry loop for the safe read operations.
func NewHTTPClient(baseURL string, timeout time.Duration, listRetries int) Client {
	if listRetries < 1 {
		listRetries = 1
	}
	return &httpClient{
		baseURL:     baseURL,
		listRetries: listRetries,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (c *httpClient) ListEmployees(ctx context.Context, activeOnly bool) ([]domain.Employee, error) {
	path := "/api/empleados"
	if activeOnly {
		path += "?activo=true"
	}
	var out []domain.Employee
	if err := c.getWithRetry(ctx, path, &out); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return out, nil
}

func (c *httpClient) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	var out []domain.Vehicle
	if err := c.getWithRetry(ctx, "/api/vehiculos", &out); err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return out, nil
}

func (c *httpClient) CreateVehicle(ctx context.Context, req *domain.CreateVehicleRequest) (*domain.Vehicle, error) {
	var out domain.Vehicle
	// Creation is idempotent-unsafe: one attempt, no retry.
	if err := c.do(ctx, http.MethodPost, "/api/vehiculos", req, &out); err != nil {
		return nil, fmt.Errorf("create vehicle: %w", err)
	}
	return &out, nil
}

func (c *httpClient) ListVehicleTypes(ctx context.Context) ([]domain.VehicleType, error) {
	var out []domain.VehicleType
	if err := c.getWithRetry(ctx, "/api/tipos-vehiculo", &out); err != nil {
		return nil, fmt.Errorf("list vehicle types: %w", err)
	}
	return out, nil
}

func (c *httpClient) ListWashTypes(ctx context.Context) ([]domain.WashType, error) {
	var out []domain.WashType
	if err := c.getWithRetry(ctx, "/api/tipos-lavado", &out); err != nil {
		return nil, fmt.Errorf("list wash types: %w", err)
	}
	return out, nil
}

func (c *httpClient) ListSupplies(ctx context.Context) ([]domain.Supply, error) {
	var out []domain.Supply
	if err := c.getWithRetry(ctx, "/api/insumos", &out); err != nil {
		return nil, fmt.Errorf("list supplies: %w", err)
	}
	return out, nil
}

func (c *httpClient) ListServices(ctx context.Context) ([]domain.ServiceRecord, error) {
	var out []domain.ServiceRecord
	if err := c.getWithRetry(ctx, "/api/servicios", &out); err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return out, nil
}

func (c *httpClient) GetService(ctx context.Context, id int) (*domain.ServiceRecord, error) {
	var out domain.ServiceRecord
	err := c.getWithRetry(ctx, fmt.Sprintf("/api/servicios/%d", id), &out)
	if err != nil {
		var serr *statusError
		if asStatusError(err, &serr) && serr.code == http.StatusNotFound {
			return nil, domain.ErrServiceNotFound
		}
		return nil, fmt.Errorf("get service %d: %w", id, err)
	}
	return &out, nil
}

func (c *httpClient) CreateService(ctx context.Context, req *domain.CreateServiceRequest) (*domain.ServiceRecord, error) {
	var out domain.ServiceRecord
	// Creation is idempotent-unsafe: one attempt, no retry.
	if err := c.do(ctx, http.MethodPost, "/api/servicios", req, &out); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return &out, nil
}

func (c *httpClient) UpdateService(ctx context.Context, id int, patch *domain.UpdateServiceRequest) (*domain.ServiceRecord, error) {
	var out domain.ServiceRecord
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/servicios/%d", id), patch, &out)
	if err != nil {
		var serr *statusError
		if asStatusError(err, &serr) && serr.code == http.StatusNotFound {
			return nil, domain.ErrServiceNotFound
		}
		return nil, fmt.Errorf("update service %d: %w", id, err)
	}
	return &out, nil
}

func (c *httpClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("health check returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// getWithRetry performs a GET with a bounded retry loop. Only reads go
// through here; 4xx responses are not retried.
func (c *httpClient) getWithRetry(ctx context.Context, path string, out interface{}) error {
	var lastErr error

	for attempt := 0; attempt < c.listRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		lastErr = c.do(ctx, http.MethodGet, path, nil, out)
		if lastErr == nil {
			return nil
		}

		var serr *statusError
		if asStatusError(lastErr, &serr) && serr.code >= 400 && serr.code < 500 {
			return lastErr
		}
	}

	return fmt.Errorf("request failed after %d attempts: %w", c.listRetries, lastErr)
}

// do executes one HTTP round trip with a JSON body and decodes the JSON
// response into out when out is non-nil.
func (c *httpClient) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		jsonData, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &statusError{code: resp.StatusCode, body: string(respBody)}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}

// statusError carries a non-2xx response so callers can branch on the code.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("records API returned status %d: %s", e.code, e.body)
}

func asStatusError(err error, target **statusError) bool {
	return errors.As(err, target)
}
