package lg

import "strings"

// ResolveFallback returns the candidate locales for requested, in preference
// order: the exact locale, then its language subtag, then "". Only locales
// present in available are yielded, except "" which always ends the chain.
// It never fails; unknown or empty input yields [""].
func ResolveFallback(requested string, available []string) []string {
	set := make(map[string]struct{}, len(available))
	for _, l := range available {
		set[NormalizeLocale(l)] = struct{}{}
	}

	requested = NormalizeLocale(requested)
	chain := make([]string, 0, 3)
	push := func(l string) {
		if l == "" {
			return
		}
		if _, ok := set[l]; !ok {
			return
		}
		for _, c := range chain {
			if c == l {
				return
			}
		}
		chain = append(chain, l)
	}

	push(requested)
	if i := strings.IndexByte(requested, '-'); i > 0 {
		push(requested[:i])
	}
	return append(chain, "")
}

// NormalizeLocale lower-cases and trims a locale string. Underscores are
// accepted as subtag separators.
func NormalizeLocale(l string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(l)), "_", "-")
}
