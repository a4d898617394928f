package request

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/AndrewBarba/specli/internal/command"
	"github.com/AndrewBarba/specli/internal/opindex"
	"github.com/AndrewBarba/specli/internal/paramderiver"
)

// FlagValue is the CLI-parsed value for one declared flag: a scalar string,
// a bool (presence), or an ordered string slice for repeatable/array flags.
type FlagValue struct {
	String string
	Bool   bool
	Array  []string
	IsBool  bool
	IsArray bool
}

func (v FlagValue) present() bool {
	return v.IsBool || v.IsArray || v.String != ""
}

// placeParameters distributes declared flag values into per-location
// ordered key/value pairs, preserving the operation's flag ordering (§5
// "Parameter placement into query strings preserves insertion order").
func placeParameters(action command.CommandAction, flagValues map[string]FlagValue) (query, header, cookie []kv) {
	for _, spec := range action.Flags {
		key := paramderiver.FlagToCamel(spec.Flag)
		val, ok := flagValues[key]
		if !ok || !val.present() {
			continue
		}
		pairs := toQueryPairs(spec, val)
		switch spec.In {
		case opindex.InQuery:
			query = append(query, pairs...)
		case opindex.InHeader:
			header = append(header, pairs...)
		case opindex.InCookie:
			cookie = append(cookie, pairs...)
		}
	}
	return query, header, cookie
}

type kv struct {
	Key   string
	Value string
}

// toQueryPairs renders one parameter's value as repeated key/value pairs:
// arrays become one pair per element (in given order, §5), scalars one
// pair, and booleans one pair carrying the parsed value ("true" for a bare
// flag).
func toQueryPairs(spec paramderiver.ParamSpec, val FlagValue) []kv {
	if val.IsArray {
		out := make([]kv, 0, len(val.Array))
		for _, v := range val.Array {
			out = append(out, kv{spec.Name, v})
		}
		return out
	}
	if val.IsBool {
		return []kv{{spec.Name, strconv.FormatBool(val.Bool)}}
	}
	return []kv{{spec.Name, val.String}}
}

// buildQueryString serializes ordered query pairs with repeated keys for
// arrays, per §4.8 "Query serialization".
func buildQueryString(pairs []kv) string {
	if len(pairs) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// applyHeadersAndCookies sets header params, then a single accumulated
// Cookie header, per §4.8 "Headers"/"Cookies".
func applyHeadersAndCookies(h *Headers, headerPairs, cookiePairs []kv) {
	for _, p := range headerPairs {
		h.Set(p.Key, p.Value)
	}
	if len(cookiePairs) > 0 {
		parts := make([]string, 0, len(cookiePairs))
		for _, p := range cookiePairs {
			parts = append(parts, fmt.Sprintf("%s=%s", p.Key, p.Value))
		}
		h.Set("Cookie", strings.Join(parts, "; "))
	}
}
