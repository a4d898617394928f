package specloader

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/AndrewBarba/specli/internal/jsonutil"
	"github.com/AndrewBarba/specli/internal/logging"
	"github.com/AndrewBarba/specli/internal/strcase"
	"encoding/json"
	"gopkg.in/yaml.v3"
)

// LoadedSpec is the dereferenced OpenAPI document together with its
// provenance, content fingerprint, and derived spec id (§3).
type LoadedSpec struct {
	Document    map[string]any
	Source      SpecSource
	Origin      string // file path, URL, or "embedded"
	Fingerprint string
	SpecID      string
}

// Loader fetches/reads and normalizes a spec document.
type Loader struct {
	Files   FileReader
	HTTP    Fetcher
	Logger  *slog.Logger
}

// NewLoader constructs a Loader. files and http may be nil if the
// corresponding source is never used; Load returns ErrFetchFailed on first
// use of a nil collaborator.
func NewLoader(files FileReader, http Fetcher, logger *slog.Logger) *Loader {
	return &Loader{Files: files, HTTP: http, Logger: logging.Or(logger)}
}

// Load resolves exactly one source per §4.1 priority (embedded > spec),
// parses it, dereferences every $ref, and computes the fingerprint/spec id.
func (l *Loader) Load(in Input) (*LoadedSpec, error) {
	raw, source, origin, err := l.fetchRaw(in)
	if err != nil {
		return nil, err
	}

	parsed, err := parseDocument(raw)
	if err != nil {
		return nil, err
	}

	if err := validateDocument(parsed); err != nil {
		return nil, err
	}

	deref, err := Dereference(parsed)
	if err != nil {
		return nil, err
	}

	fingerprint, err := jsonutil.Fingerprint(deref)
	if err != nil {
		return nil, fmt.Errorf("%w: computing fingerprint: %v", ErrParseFailed, err)
	}

	specID := deriveSpecID(deref, fingerprint)

	l.Logger.Debug("spec loaded", "source", source, "origin", origin, "spec_id", specID, "fingerprint", fingerprint)

	return &LoadedSpec{
		Document:    deref,
		Source:      source,
		Origin:      origin,
		Fingerprint: fingerprint,
		SpecID:      specID,
	}, nil
}

func (l *Loader) fetchRaw(in Input) ([]byte, SpecSource, string, error) {
	if in.EmbeddedText != "" {
		return []byte(in.EmbeddedText), SourceEmbedded, "embedded", nil
	}
	if in.Spec == "" {
		return nil, "", "", ErrNoSpecProvided
	}
	if isHTTPURL(in.Spec) {
		if l.HTTP == nil {
			return nil, "", "", fmt.Errorf("%w: no HTTP fetcher configured", ErrFetchFailed)
		}
		b, err := l.HTTP.Fetch(in.Spec)
		if err != nil {
			return nil, "", "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
		}
		return b, SourceURL, in.Spec, nil
	}
	if l.Files == nil {
		return nil, "", "", fmt.Errorf("%w: no file reader configured", ErrFetchFailed)
	}
	b, err := l.Files.ReadFile(in.Spec)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return b, SourceFile, in.Spec, nil
}

// parseDocument dispatches to JSON or YAML based on the trimmed leading
// byte, per §4.1.
func parseDocument(raw []byte) (map[string]any, error) {
	trimmed := strings.TrimLeft(string(raw), " \t\r\n")
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty document", ErrParseFailed)
	}

	var doc map[string]any
	if trimmed[0] == '{' || trimmed[0] == '[' {
		if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
		}
		return doc, nil
	}

	var node map[string]any
	if err := yaml.Unmarshal([]byte(trimmed), &node); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}
	return normalizeYAML(node).(map[string]any), nil
}

// normalizeYAML converts the map[any]any shapes gopkg.in/yaml.v3 can
// produce for nested maps into map[string]any so the rest of the pipeline
// (and jsonutil.Canonicalize) only ever sees JSON-shaped values.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeYAML(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprintf("%v", k)] = normalizeYAML(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeYAML(e)
		}
		return out
	default:
		return v
	}
}

func validateDocument(doc map[string]any) error {
	if doc == nil {
		return fmt.Errorf("%w: document is not an object", ErrInvalidDocument)
	}
	version, ok := doc["openapi"].(string)
	if !ok {
		return fmt.Errorf("%w: missing or non-string \"openapi\" field", ErrInvalidDocument)
	}
	if !strings.HasPrefix(version, "3.") {
		return fmt.Errorf("%w: unsupported openapi version %q", ErrInvalidDocument, version)
	}
	return nil
}

// deriveSpecID implements §3: kebab-cased info.title if non-empty, else the
// first 12 hex characters of the fingerprint.
func deriveSpecID(doc map[string]any, fingerprint string) string {
	if info, ok := doc["info"].(map[string]any); ok {
		if title, ok := info["title"].(string); ok {
			kebab := strcase.Kebab(strings.TrimSpace(title))
			if kebab != "" {
				return kebab
			}
		}
	}
	if len(fingerprint) >= 12 {
		return fingerprint[:12]
	}
	return fingerprint
}
