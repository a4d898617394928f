// Package executor implements C9: turning a PreparedRequest into a
// CommandResult, either by short-circuiting to a curl rendering or by
// issuing the HTTP call and capturing its timing and response body.
package executor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AndrewBarba/specli/internal/request"
	"github.com/AndrewBarba/specli/internal/result"
)

// Fetcher is the injection point for issuing the actual HTTP call, so tests
// can substitute a fake transport without a live network.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPFetcher wraps a *http.Client as a Fetcher. A nil client is replaced
// by one with a 30-second timeout; redirects follow net/http's defaults.
func NewHTTPFetcher(client *http.Client) Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return httpFetcher{client}
}

type httpFetcher struct{ client *http.Client }

func (f httpFetcher) Do(req *http.Request) (*http.Response, error) {
	return f.client.Do(req)
}

// Executor issues prepared requests.
type Executor struct {
	Fetcher Fetcher
}

// New builds an Executor with the given Fetcher, defaulting to a plain
// net/http client when fetcher is nil.
func New(fetcher Fetcher) *Executor {
	if fetcher == nil {
		fetcher = NewHTTPFetcher(nil)
	}
	return &Executor{Fetcher: fetcher}
}

// Execute issues prepared and returns the resulting CommandResult. When
// curlOnly is set it short-circuits to a curl-rendering result with no
// network I/O, per §6's --curl built-in.
func (e *Executor) Execute(ctx context.Context, prepared *request.PreparedRequest, curlOnly bool) result.CommandResult {
	traceID := uuid.NewString()
	trace := func(res result.CommandResult) result.CommandResult {
		res.TraceID = traceID
		return res
	}

	resultReq := toResultRequest(prepared)

	if curlOnly {
		return trace(result.Curl(prepared.Curl, resultReq))
	}

	var bodyReader io.Reader
	if prepared.Body != "" {
		bodyReader = strings.NewReader(prepared.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, prepared.Method, prepared.URL, bodyReader)
	if err != nil {
		return trace(result.Error(err.Error(), resultReq, nil))
	}
	for _, key := range prepared.Headers.Keys() {
		httpReq.Header.Set(key, prepared.Headers.Get(key))
	}

	started := time.Now()
	httpResp, err := e.Fetcher.Do(httpReq)
	if err != nil {
		return trace(result.Error(err.Error(), resultReq, nil))
	}
	defer httpResp.Body.Close()

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return trace(result.Error(err.Error(), resultReq, nil))
	}
	duration := time.Since(started)

	resp := &result.Response{
		Status:  httpResp.StatusCode,
		OK:      httpResp.StatusCode >= 200 && httpResp.StatusCode < 300,
		Headers: map[string][]string(httpResp.Header),
		RawBody: string(bodyBytes),
		Body:    leniencyParse(httpResp.Header.Get("Content-Type"), bodyBytes),
	}

	timing := result.Timing{StartedAt: started, DurationMS: duration.Milliseconds()}

	// A non-2xx response is still a successful fetch: Kind stays "success"
	// with response.ok=false. "error" is reserved for the fetcher itself
	// failing (a transport error, never an HTTP status).
	return trace(result.Success(resultReq, resp, timing))
}

func toResultRequest(prepared *request.PreparedRequest) *result.Request {
	if prepared == nil {
		return nil
	}
	return &result.Request{
		Method:  prepared.Method,
		URL:     prepared.URL,
		Headers: prepared.Headers.ToMap(),
		Body:    prepared.Body,
	}
}

// leniencyParse decodes the response body as JSON only when the content
// type says JSON and the body actually parses; otherwise it leaves Body nil
// and callers fall back to RawBody, per §9 "tagged results, not exceptions".
func leniencyParse(contentType string, body []byte) any {
	if len(body) == 0 {
		return nil
	}
	if !isJSONContentType(contentType) {
		return nil
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil
	}
	return v
}

func isJSONContentType(ct string) bool {
	return strings.Contains(ct, "json")
}
