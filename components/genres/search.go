package genres

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Option is one suggestion in the handler response.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type matchTier int

const (
	tierPrefix matchTier = iota
	tierContains
	tierFuzzy
)

type matchedGenre struct {
	name     string
	tier     matchTier
	distance int
}

// Search returns genres matching query, case-insensitively: prefix matches
// first, then substring matches, then fuzzy subsequence matches (only when
// Fuzzy is enabled) ordered by edit distance. Ties sort by name. An empty
// query returns the head of the list.
func Search(genres []string, query string, limit int, opts Options) []string {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if len(genres) <= limit {
			return append([]string{}, genres...)
		}
		return append([]string{}, genres[:limit]...)
	}

	q := strings.ToLower(query)
	matches := make([]matchedGenre, 0, 16)
	var rest []string
	for _, genre := range genres {
		lower := strings.ToLower(genre)
		switch {
		case strings.HasPrefix(lower, q):
			matches = append(matches, matchedGenre{name: genre, tier: tierPrefix})
		case strings.Contains(lower, q):
			matches = append(matches, matchedGenre{name: genre, tier: tierContains})
		default:
			rest = append(rest, genre)
		}
	}

	if opts.Fuzzy && len(rest) > 0 {
		for _, rank := range fuzzy.RankFindFold(q, rest) {
			matches = append(matches, matchedGenre{name: rank.Target, tier: tierFuzzy, distance: rank.Distance})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].tier != matches[j].tier {
			return matches[i].tier < matches[j].tier
		}
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].name < matches[j].name
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.name)
	}
	return out
}

// SearchOptions completes the last comma separated segment of query. Each
// option value keeps the earlier segments so it can replace the input
// verbatim; genres already listed are not suggested again.
func SearchOptions(genres []string, query string, limit int, opts Options) []Option {
	head, tail := splitQuery(query)
	if len(head) > 0 {
		genres = exclude(genres, head)
	}

	results := Search(genres, tail, limit, opts)
	if len(results) == 0 {
		return nil
	}

	prefix := ""
	if len(head) > 0 {
		prefix = strings.Join(head, ", ") + ", "
	}
	out := make([]Option, 0, len(results))
	for _, genre := range results {
		out = append(out, Option{Value: prefix + genre, Label: genre})
	}
	return out
}

// Completion is the answer to a partially typed genre list.
type Completion struct {
	Data []Option `json:"data"`
	// Selected holds the already typed genres found in the vocabulary, in
	// vocabulary spelling.
	Selected []string `json:"selected"`
	// Unknown holds the already typed entries the vocabulary lacks.
	Unknown []string `json:"unknown,omitempty"`
}

// Complete resolves the finished segments of query against genres and
// suggests values for the segment being typed.
func Complete(genres []string, query string, limit int, opts Options) Completion {
	head, _ := splitQuery(query)
	selected, unknown := resolve(genres, head)
	data := SearchOptions(genres, query, limit, opts)
	if data == nil {
		data = []Option{}
	}
	if selected == nil {
		selected = []string{}
	}
	return Completion{Data: data, Selected: selected, Unknown: unknown}
}

func resolve(genres, picked []string) ([]string, []string) {
	index := make(map[string]string, len(genres))
	for _, genre := range genres {
		index[strings.ToLower(genre)] = genre
	}
	var selected, unknown []string
	seen := map[string]struct{}{}
	for _, entry := range picked {
		key := strings.ToLower(entry)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		if genre, ok := index[key]; ok {
			selected = append(selected, genre)
			continue
		}
		unknown = append(unknown, entry)
	}
	return selected, unknown
}

func splitQuery(query string) ([]string, string) {
	parts := strings.Split(query, ",")
	tail := strings.TrimSpace(parts[len(parts)-1])
	var head []string
	for _, part := range parts[:len(parts)-1] {
		if part = strings.TrimSpace(part); part != "" {
			head = append(head, part)
		}
	}
	return head, tail
}

func exclude(genres, picked []string) []string {
	skip := make(map[string]struct{}, len(picked))
	for _, genre := range picked {
		skip[strings.ToLower(genre)] = struct{}{}
	}
	out := make([]string, 0, len(genres))
	for _, genre := range genres {
		if _, ok := skip[strings.ToLower(genre)]; ok {
			continue
		}
		out = append(out, genre)
	}
	return out
}
