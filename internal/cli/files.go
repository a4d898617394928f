package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// RealFiles implements specloader.FileReader against the local filesystem.
type RealFiles struct{}

func (RealFiles) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// RealFetcher implements specloader.Fetcher against a plain net/http
// client, matching the teacher's protocol/http.Client timeout default.
type RealFetcher struct {
	Client *http.Client
}

func (f RealFetcher) Fetch(url string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("cli: fetching spec: unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
