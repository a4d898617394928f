// Package render implements C10: rendering a CommandResult as either
// colorized, TTY-aware text or compact JSON, and picking the stream
// (stdout/stderr) and process exit code a CommandResult maps to.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AndrewBarba/specli/internal/result"
)

// Mode selects the output format.
type Mode string

const (
	ModeText Mode = "text"
	ModeJSON Mode = "json"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true)  // green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true) // red
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))            // gray
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))            // purple
)

// Renderer writes CommandResults to a pair of streams.
type Renderer struct {
	Mode   Mode
	Color  bool
	Stdout io.Writer
	Stderr io.Writer
}

// New builds a Renderer. color should reflect whether Stdout is a TTY;
// callers decide that with isatty.IsTerminal before constructing, keeping
// this package free of terminal-detection policy.
func New(mode Mode, color bool, stdout, stderr io.Writer) *Renderer {
	return &Renderer{Mode: mode, Color: color, Stdout: stdout, Stderr: stderr}
}

// Render writes res to the appropriate stream and returns its exit code.
// Errors and validation failures go to stderr; everything else to stdout,
// per §6's stream convention.
func (r *Renderer) Render(res result.CommandResult) int {
	w := r.Stdout
	if res.Kind == result.KindError || res.Kind == result.KindValidation {
		w = r.Stderr
	}

	if r.Mode == ModeJSON {
		r.renderJSON(w, res)
	} else {
		r.renderText(w, res)
	}

	return res.ExitCode()
}

func (r *Renderer) renderJSON(w io.Writer, res result.CommandResult) {
	enc := json.NewEncoder(w)
	_ = enc.Encode(jsonEnvelope(res))
}

// jsonEnvelope strips fields that don't apply to the result's kind, keeping
// the machine-readable shape minimal.
func jsonEnvelope(res result.CommandResult) map[string]any {
	env := map[string]any{"kind": string(res.Kind)}
	if res.Resource != "" {
		env["resource"] = res.Resource
	}
	if res.Action != "" {
		env["action"] = res.Action
	}
	switch res.Kind {
	case result.KindSuccess, result.KindError:
		if res.Request != nil {
			env["request"] = res.Request
		}
		if res.Response != nil {
			env["response"] = res.Response
		}
		if res.Kind == result.KindError && res.Message != "" {
			env["message"] = res.Message
		}
	case result.KindValidation:
		env["errors"] = res.Errors
	case result.KindPrepared:
		env["request"] = res.Request
	case result.KindCurl:
		env["curl"] = res.Curl
	case result.KindData:
		env["dataKind"] = res.DataKind
		env["data"] = res.Data
	}
	return env
}

func (r *Renderer) renderText(w io.Writer, res result.CommandResult) {
	switch res.Kind {
	case result.KindSuccess:
		r.renderSuccess(w, res)
	case result.KindError:
		r.renderError(w, res)
	case result.KindValidation:
		r.renderValidation(w, res)
	case result.KindPrepared:
		r.renderPrepared(w, res)
	case result.KindCurl:
		fmt.Fprintln(w, res.Curl)
	case result.KindData:
		r.renderData(w, res)
	}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.Color {
		return text
	}
	return s.Render(text)
}

func (r *Renderer) renderSuccess(w io.Writer, res result.CommandResult) {
	resp := res.Response
	if resp == nil {
		return
	}
	status := fmt.Sprintf("%d", resp.Status)
	label := r.style(successStyle, status)
	if !resp.OK {
		label = r.style(errorStyle, status)
	}
	fmt.Fprintf(w, "%s\n", label)
	r.writeBody(w, resp)
}

func (r *Renderer) renderError(w io.Writer, res result.CommandResult) {
	fmt.Fprintf(w, "%s %s\n", r.style(errorStyle, "error:"), res.Message)
	if res.Response != nil {
		r.writeBody(w, res.Response)
	}
}

func (r *Renderer) renderValidation(w io.Writer, res result.CommandResult) {
	fmt.Fprintln(w, r.style(errorStyle, "validation failed:"))
	for _, e := range res.Errors {
		if e.Path != "" {
			fmt.Fprintf(w, "  %s %s\n", r.style(keyStyle, e.Path), e.Message)
		} else {
			fmt.Fprintf(w, "  %s\n", e.Message)
		}
	}
}

func (r *Renderer) renderPrepared(w io.Writer, res result.CommandResult) {
	if res.Request == nil {
		return
	}
	fmt.Fprintf(w, "%s %s\n", res.Request.Method, res.Request.URL)
	for _, key := range sortedKeys(res.Request.Headers) {
		for _, v := range res.Request.Headers[key] {
			fmt.Fprintf(w, "%s: %s\n", r.style(dimStyle, key), v)
		}
	}
	if res.Request.Body != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, res.Request.Body)
	}
}

func (r *Renderer) renderData(w io.Writer, res result.CommandResult) {
	encoded, err := json.MarshalIndent(res.Data, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "%v\n", res.Data)
		return
	}
	fmt.Fprintln(w, string(encoded))
}

func (r *Renderer) writeBody(w io.Writer, resp *result.Response) {
	if resp.Body != nil {
		encoded, err := json.MarshalIndent(resp.Body, "", "  ")
		if err == nil {
			fmt.Fprintln(w, string(encoded))
			return
		}
	}
	if resp.RawBody != "" {
		fmt.Fprintln(w, strings.TrimRight(resp.RawBody, "\n"))
	}
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
