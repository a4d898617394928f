package request

import "strings"

// renderCurl renders a prepared request as a single-line curl command,
// masking the Authorization header's credential so --curl output is safe to
// paste into a terminal transcript or log.
func renderCurl(method, url string, h *Headers, body string) string {
	var parts []string
	parts = append(parts, "curl")

	if method != "GET" {
		parts = append(parts, "-X", method)
	}

	for _, key := range h.Keys() {
		value := h.Get(key)
		if strings.EqualFold(key, "Authorization") {
			value = maskAuthorization(value)
		}
		parts = append(parts, "-H", key+": "+value)
	}

	if body != "" {
		parts = append(parts, "--data-raw", body)
	}

	parts = append(parts, url)

	var b strings.Builder
	for i, part := range parts {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(shellQuote(part))
	}
	return b.String()
}

// maskAuthorization keeps the auth scheme prefix and the credential's first
// and last three characters, replacing the middle with "...".
func maskAuthorization(value string) string {
	scheme, cred, found := strings.Cut(value, " ")
	if !found {
		return maskCredential(value)
	}
	return scheme + " " + maskCredential(cred)
}

func maskCredential(cred string) string {
	if len(cred) <= 6 {
		return "***"
	}
	return cred[:3] + "..." + cred[len(cred)-3:]
}

// shellQuote wraps a value in single quotes whenever it contains characters
// the shell would otherwise interpret.
func shellQuote(s string) string {
	needsQuote := s == ""
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '"', '\'', '$', '`', '\\', '!', '*', '?',
			'[', ']', '{', '}', '(', ')', '<', '>', '|', '&', ';':
			needsQuote = true
		}
	}
	if !needsQuote {
		return s
	}
	escaped := strings.ReplaceAll(s, "'", `'"'"'`)
	return "'" + escaped + "'"
}
