// Package servers implements C3: enumerating servers declared at the
// document, path-item, and operation levels and extracting their templated
// variables.
package servers

import (
	"regexp"
	"sort"
)

// ServerVariable is a single {name} placeholder's declared metadata.
type ServerVariable struct {
	Name    string
	Default string
	Enum    []string
}

// ServerInfo is one deduplicated server entry.
type ServerInfo struct {
	URL           string
	Description   string
	Variables     []ServerVariable
	VariableNames []string // extracted {name} placeholders, in URL order
}

var placeholderRE = regexp.MustCompile(`\{([^{}]+)\}`)

// VariableNames extracts the ordered {name} placeholders from a URL template.
func VariableNames(url string) []string {
	matches := placeholderRE.FindAllStringSubmatch(url, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// Collect gathers servers from the document root, every path item, and
// every operation, de-duplicating by exact URL and merging variable
// metadata favoring first-occurrence defaults, per §4.3.
func Collect(doc map[string]any) []ServerInfo {
	var order []string
	byURL := map[string]*ServerInfo{}

	addFrom := func(raw any) {
		list, ok := raw.([]any)
		if !ok {
			return
		}
		for _, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			url, _ := m["url"].(string)
			if url == "" {
				continue
			}
			if _, exists := byURL[url]; !exists {
				order = append(order, url)
				byURL[url] = &ServerInfo{URL: url}
			}
			info := byURL[url]
			if info.Description == "" {
				info.Description, _ = m["description"].(string)
			}
			mergeVariables(info, m["variables"])
		}
	}

	addFrom(doc["servers"])

	if paths, ok := doc["paths"].(map[string]any); ok {
		pathKeys := make([]string, 0, len(paths))
		for p := range paths {
			pathKeys = append(pathKeys, p)
		}
		sort.Strings(pathKeys)
		for _, p := range pathKeys {
			item, ok := paths[p].(map[string]any)
			if !ok {
				continue
			}
			addFrom(item["servers"])
			for _, method := range []string{"get", "post", "put", "patch", "delete", "options", "head", "trace"} {
				if op, ok := item[method].(map[string]any); ok {
					addFrom(op["servers"])
				}
			}
		}
	}

	out := make([]ServerInfo, 0, len(order))
	for _, url := range order {
		info := byURL[url]
		info.VariableNames = VariableNames(info.URL)
		out = append(out, *info)
	}
	return out
}

func mergeVariables(info *ServerInfo, raw any) {
	m, ok := raw.(map[string]any)
	if !ok {
		return
	}
	existing := map[string]int{}
	for i, v := range info.Variables {
		existing[v.Name] = i
	}

	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		varMap, ok := m[name].(map[string]any)
		if !ok {
			continue
		}
		def, _ := varMap["default"].(string)
		var enum []string
		if rawEnum, ok := varMap["enum"].([]any); ok {
			for _, e := range rawEnum {
				if s, ok := e.(string); ok {
					enum = append(enum, s)
				}
			}
		}
		if idx, ok := existing[name]; ok {
			// First occurrence's default wins; only fill in if unset.
			if info.Variables[idx].Default == "" {
				info.Variables[idx].Default = def
			}
			continue
		}
		existing[name] = len(info.Variables)
		info.Variables = append(info.Variables, ServerVariable{Name: name, Default: def, Enum: enum})
	}
}
