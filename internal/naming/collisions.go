package naming

import (
	"strconv"
	"strings"

	"github.com/AndrewBarba/specli/internal/strcase"
)

type raKey struct {
	resource string
	action   string
}

// resolveCollisions implements §4.5's disambiguation ladder for operations
// that land on the same (resource, action) pair, recording the
// pre-disambiguation action as AliasOf.
func resolveCollisions(planned []PlannedOperation) {
	groups := map[raKey][]int{}
	for i, p := range planned {
		k := raKey{p.Resource, p.Action}
		groups[k] = append(groups[k], i)
	}

	for key, indices := range groups {
		if len(indices) < 2 {
			continue
		}
		for rank, idx := range indices {
			p := &planned[idx]
			disamb := operationIDDisambiguator(p.OperationID, key.action, key.resource)
			if disamb == "" {
				disamb = pathSegmentDisambiguator(p.Path, key.resource)
			}
			if disamb != "" {
				p.AliasOf = p.Action
				p.Action = key.action + "-" + disamb
				continue
			}
			p.AliasOf = p.Action
			p.Action = key.action + "-" + strconv.Itoa(rank+1)
		}
	}
}

// operationIDDisambiguator strips the leading action synonym and every
// occurrence of the resource (plural and singular) from kebab(operationId);
// if anything meaningful remains, it is the disambiguator.
func operationIDDisambiguator(operationID, action, resource string) string {
	if operationID == "" {
		return ""
	}
	kebab := strcase.Kebab(operationID)
	parts := strings.Split(kebab, "-")

	leading := map[string]bool{action: true}
	for synonym, canon := range actionSynonyms {
		if canon == action {
			leading[synonym] = true
		}
	}

	singular := strcase.Singularize(resource)
	skip := map[string]bool{resource: true, singular: true}

	var remaining []string
	strippedLeading := false
	for i, part := range parts {
		if !strippedLeading && i == 0 && leading[part] {
			strippedLeading = true
			continue
		}
		if skip[part] {
			continue
		}
		remaining = append(remaining, part)
	}

	if len(remaining) == 0 {
		return ""
	}
	return strings.Join(remaining, "-")
}

// pathSegmentDisambiguator returns the last path segment that is not a
// {param} placeholder and not equal to resource.
func pathSegmentDisambiguator(path, resource string) string {
	segs := strings.Split(path, "/")
	for i := len(segs) - 1; i >= 0; i-- {
		seg := segs[i]
		if seg == "" || strings.HasPrefix(seg, "{") {
			continue
		}
		kebab := strcase.Kebab(seg)
		if kebab != "" && kebab != resource {
			return kebab
		}
	}
	return ""
}
