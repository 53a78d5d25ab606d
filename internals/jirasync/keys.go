package jirasync

import (
	"regexp"
	"strings"
)

func keyPattern(prefixes []string) *regexp.Regexp {
	quoted := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		if p == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(p))
	}
	if len(quoted) == 0 {
		return nil
	}
	return regexp.MustCompile(`(?:` + strings.Join(quoted, "|") + `)-[0-9]+`)
}

// ExtractKeys returns the issue keys referenced by the PR title. The body is
// only scanned when the title has none. Duplicates are dropped, first
// occurrence wins.
func ExtractKeys(pr PullRequest, prefixes []string) []string {
	re := keyPattern(prefixes)
	if re == nil {
		return nil
	}

	matches := re.FindAllString(pr.Title, -1)
	if len(matches) == 0 {
		matches = re.FindAllString(pr.Body, -1)
	}
	if len(matches) == 0 {
		return nil
	}

	var keys orderedSet
	for _, m := range matches {
		keys.add(m)
	}
	return keys.items
}

// orderedSet keeps insertion order and ignores blanks and repeats.
type orderedSet struct {
	items []string
	seen  map[string]struct{}
}

func (s *orderedSet) add(v string) {
	if v == "" {
		return
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

// difference returns the members of want not in have, in want's order.
func difference(want, have []string) []string {
	skip := make(map[string]struct{}, len(have))
	for _, h := range have {
		skip[h] = struct{}{}
	}
	var out []string
	for _, w := range want {
		if _, ok := skip[w]; !ok {
			out = append(out, w)
		}
	}
	return out
}
