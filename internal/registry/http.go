package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultTimeout = 10 * time.Second

// HTTPClient talks to an MLflow-style model registry over REST. A model is
// resolved through its serving alias (e.g. "production"); artifacts are
// served as raw blobs under a per-version path.
type HTTPClient struct {
	BaseURL string
	Alias   string
	HTTP    *http.Client
}

// NewHTTPClient builds a client with a bounded request timeout so a stalled
// registry cannot wedge the refresh loop.
func NewHTTPClient(baseURL, alias string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		Alias:   alias,
		HTTP:    &http.Client{Timeout: defaultTimeout},
	}
}

// aliasResponse mirrors the registry's get-by-alias payload. Only the
// version field matters to the poller.
type aliasResponse struct {
	ModelVersion struct {
		Version string `json:"version"`
	} `json:"model_version"`
}

func (c *HTTPClient) ApprovedVersion(ctx context.Context, modelName string) (string, error) {
	u := fmt.Sprintf("%s/api/2.0/mlflow/registered-models/get-by-alias?name=%s&alias=%s",
		c.BaseURL, url.QueryEscape(modelName), url.QueryEscape(c.Alias))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return "", ErrNotFound
	}
	if res.StatusCode/100 != 2 {
		return "", fmt.Errorf("registry get-by-alias status=%d", res.StatusCode)
	}
	var out aliasResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.ModelVersion.Version == "" {
		return "", ErrNotFound
	}
	return out.ModelVersion.Version, nil
}

func (c *HTTPClient) FetchArtifact(ctx context.Context, modelName, version string) ([]byte, error) {
	u := fmt.Sprintf("%s/artifacts/%s/%s/model.json",
		c.BaseURL, url.PathEscape(modelName), url.PathEscape(version))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		return nil, fmt.Errorf("registry artifact fetch status=%d", res.StatusCode)
	}
	return io.ReadAll(res.Body)
}
