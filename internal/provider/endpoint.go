package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const defaultConnectTimeout = 10 * time.Second

// Info describes the endpoint a session talks to.
type Info struct {
	Host    string // as configured, no trailing slash
	BaseURL string // host plus the versioned API path
	Model   string
	Models  []string // detected models, when detection ran
}

// Endpoint is one OpenAI-compatible chat endpoint. It hides the
// host/base-url distinction: a bare server root gets /v1 appended, a
// value already naming a versioned path is used as-is.
type Endpoint struct {
	info       *Info
	httpClient *http.Client
	apiKey     string
	client     *openai.Client
	onUsage    func(prompt, completion, total int)
}

// NewEndpoint creates an endpoint for host, which may be a server root
// ("http://localhost:11434") or a full base URL
// ("https://openrouter.ai/api/v1").
func NewEndpoint(host, apiKey string) *Endpoint {
	host = strings.TrimSuffix(host, "/")
	base := host
	if !strings.HasSuffix(base, "/v1") {
		base += "/v1"
	}

	httpClient := newHTTPClient()
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = base
	config.HTTPClient = httpClient

	return &Endpoint{
		info:       &Info{Host: host, BaseURL: base},
		httpClient: httpClient,
		apiKey:     apiKey,
		client:     openai.NewClientWithConfig(config),
	}
}

// Info returns endpoint metadata.
func (e *Endpoint) Info() *Info {
	return e.info
}

// SetModel sets the active model.
func (e *Endpoint) SetModel(model string) {
	e.info.Model = model
}

// SetUsageHandler registers a callback invoked with the token counts
// the provider reports at the end of each streamed call.
func (e *Endpoint) SetUsageHandler(fn func(prompt, completion, total int)) {
	e.onUsage = fn
}

// DetectModels queries the models the endpoint serves. The
// OpenAI-compatible listing is tried first, with retries for transient
// failures, then the native tags endpoint local servers expose.
func (e *Endpoint) DetectModels(ctx context.Context) ([]string, error) {
	models, err := withRetry(ctx, "model detection", func() ([]string, error) {
		return e.detectModelsOpenAI(ctx)
	})
	if err == nil && len(models) > 0 {
		return models, nil
	}
	return e.detectModelsNative(ctx)
}

// detectModelsOpenAI queries the OpenAI-compatible model listing.
func (e *Endpoint) detectModelsOpenAI(ctx context.Context) ([]string, error) {
	url := e.info.BaseURL + "/models"

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var modelsResp struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&modelsResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	models := make([]string, 0, len(modelsResp.Data))
	for _, m := range modelsResp.Data {
		models = append(models, m.ID)
	}

	e.info.Models = models
	return models, nil
}

// detectModelsNative queries the Ollama-style /api/tags endpoint.
func (e *Endpoint) detectModelsNative(ctx context.Context) ([]string, error) {
	url := strings.TrimSuffix(e.info.BaseURL, "/v1") + "/api/tags"

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var tagsResp struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tagsResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	models := make([]string, 0, len(tagsResp.Models))
	for _, m := range tagsResp.Models {
		models = append(models, m.Name)
	}

	e.info.Models = models
	return models, nil
}

// newHTTPClient creates an HTTP client for LLM API requests.
// Client-level timeout is disabled (0) to allow long-running streaming
// responses; per-call timeouts come from the context.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 0,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   defaultConnectTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}
