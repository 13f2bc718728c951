package catalog

import "strings"

// ResultKind tags a lookup result variant.
type ResultKind int

const (
	// KindNotFound means no rule matched the query.
	KindNotFound ResultKind = iota
	// KindSingle is an exact or best single match.
	KindSingle
	// KindAutoSearch is a heuristic multi-match over descriptions,
	// features and nearby objects.
	KindAutoSearch
	// KindAllObjects is an enumeration request.
	KindAllObjects
	// KindCompare is an explicit comparison request.
	KindCompare
)

// Result is the outcome of one catalog lookup. Exactly one variant is
// produced per query: Single carries Entry, the multi variants carry Names.
type Result struct {
	Kind  ResultKind
	Entry *Entry
	Names []string
}

// Phrase sets driving the lookup heuristics. The exact contents and the
// rule ordering below are load-bearing: they decide which variant wins
// for ambiguous queries, so changes here change user-visible behavior.
var (
	enumerationPhrases = []string{
		"какие жк доступны",
		"список жк",
		"перечисли жк",
		"ваши объекты",
	}

	comparisonMarkers = []string{"сравни", "сравнение"}

	// Short-form aliases mapped to canonical catalog names. Ordered.
	nameAliases = []struct {
		Short     string
		Canonical string
	}{
		{"солнеч", "ЖК Солнечный"},
		{"луг", "ЖК Луговой"},
	}

	lookupKeywords = []string{"солнечный", "луговой", "стройинвест", "жк"}
)

// lookupRule is one step of the resolution order. First match wins.
type lookupRule struct {
	name  string
	match func(c *Catalog, query string) (Result, bool)
}

// lookupRules is the ordered resolution table. Rules 4 and 6 are duplicates
// kept for parity with the historical heuristic; do not fold them together.
var lookupRules = []lookupRule{
	{"enumeration", matchEnumeration},
	{"comparison", matchComparison},
	{"exact_name", matchExactName},
	{"name_substring", matchNameSubstring},
	{"alias", matchAlias},
	{"name_substring_again", matchNameSubstring},
	{"keyword", matchKeyword},
	{"multi_field_scan", matchMultiField},
}

// Lookup resolves a free-text query against the catalog. Pure function:
// the same catalog and query always produce the same result.
func (c *Catalog) Lookup(query string) Result {
	normalized := strings.ToLower(query)
	for _, rule := range lookupRules {
		if res, ok := rule.match(c, normalized); ok {
			return res
		}
	}
	return Result{Kind: KindNotFound}
}

func matchEnumeration(c *Catalog, query string) (Result, bool) {
	for _, phrase := range enumerationPhrases {
		if strings.Contains(query, phrase) {
			return Result{Kind: KindAllObjects, Names: c.Names()}, true
		}
	}
	return Result{}, false
}

func matchComparison(c *Catalog, query string) (Result, bool) {
	marked := false
	for _, marker := range comparisonMarkers {
		if strings.Contains(query, marker) {
			marked = true
			break
		}
	}
	if !marked {
		return Result{}, false
	}

	var names []string
	for _, name := range c.names {
		if strings.Contains(query, strings.ToLower(name)) {
			names = append(names, name)
		}
	}
	if len(names) < 2 {
		return Result{}, false
	}
	return Result{Kind: KindCompare, Names: names}, true
}

func matchExactName(c *Catalog, query string) (Result, bool) {
	for _, name := range c.names {
		if strings.ToLower(name) == query {
			return Result{Kind: KindSingle, Entry: c.entries[name]}, true
		}
	}
	return Result{}, false
}

func matchNameSubstring(c *Catalog, query string) (Result, bool) {
	for _, name := range c.names {
		if strings.Contains(query, strings.ToLower(name)) {
			return Result{Kind: KindSingle, Entry: c.entries[name]}, true
		}
	}
	return Result{}, false
}

func matchAlias(c *Catalog, query string) (Result, bool) {
	for _, alias := range nameAliases {
		if !strings.Contains(query, alias.Short) {
			continue
		}
		if entry, ok := c.entries[alias.Canonical]; ok {
			return Result{Kind: KindSingle, Entry: entry}, true
		}
	}
	return Result{}, false
}

func matchKeyword(c *Catalog, query string) (Result, bool) {
	for _, keyword := range lookupKeywords {
		if !strings.Contains(query, keyword) {
			continue
		}
		for _, name := range c.names {
			if strings.Contains(strings.ToLower(name), keyword) {
				return Result{Kind: KindSingle, Entry: c.entries[name]}, true
			}
		}
	}
	return Result{}, false
}

func matchMultiField(c *Catalog, query string) (Result, bool) {
	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	// Description appearing inside the query.
	for _, name := range c.names {
		entry := c.entries[name]
		if entry.Description != "" && strings.Contains(query, strings.ToLower(entry.Description)) {
			add(name)
		}
	}

	// Any feature string appearing inside the query.
	for _, name := range c.names {
		for _, feature := range c.entries[name].Features {
			if strings.Contains(query, strings.ToLower(feature)) {
				add(name)
				break
			}
		}
	}

	// Any nearby-object name appearing inside the query.
	for _, name := range c.names {
		for _, nearby := range c.entries[name].Nearby {
			if nearby.Name != "" && strings.Contains(query, strings.ToLower(nearby.Name)) {
				add(name)
				break
			}
		}
	}

	if len(names) == 0 {
		return Result{}, false
	}
	return Result{Kind: KindAutoSearch, Names: names}, true
}
