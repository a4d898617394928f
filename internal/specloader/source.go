// Package specloader implements C1: fetching/reading an OpenAPI document,
// parsing JSON or YAML, dereferencing every $ref, and computing the
// content-addressed fingerprint and spec id used to key every downstream
// derived structure.
package specloader

import "strings"

// SpecSource identifies where a document came from.
type SpecSource string

const (
	SourceEmbedded SpecSource = "embedded"
	SourceFile     SpecSource = "file"
	SourceURL      SpecSource = "url"
)

// FileReader abstracts reading spec bytes from disk, the injection point
// named in §"Injection points" so tests can supply spec text without
// touching disk.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// Fetcher abstracts fetching spec bytes over HTTP(S).
type Fetcher interface {
	Fetch(url string) ([]byte, error)
}

// Input selects exactly one spec source with priority embedded > spec,
// matching §4.1.
type Input struct {
	// Spec is either an HTTP(S) URL or a filesystem path.
	Spec string
	// EmbeddedText is the build-time embedded document, if any.
	EmbeddedText string
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
