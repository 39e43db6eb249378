package checker

import (
	"sort"

	"github.com/lifei6671/lg"
)

type Result struct {
	Locales   []string
	Resources []string
	// ParseErrors: resource id -> error
	ParseErrors map[string]error
	// UnresolvedImports: resource id -> import paths
	UnresolvedImports map[string][]string
	// MissingTemplates: resource id -> templates its neutral counterpart
	// declares but the locale override does not
	MissingTemplates map[string][]string
	// RedundantTemplates: resource id -> templates only the override declares
	RedundantTemplates map[string][]string
}

// HasIssues reports whether any check failed.
func (r *Result) HasIssues() bool {
	return len(r.ParseErrors) > 0 || len(r.UnresolvedImports) > 0 ||
		len(r.MissingTemplates) > 0 || len(r.RedundantTemplates) > 0
}

// CheckDir runs CheckResources over the .lg files below dir.
func CheckDir(dir string, opts ...lg.Option) (*Result, error) {
	return CheckResources(lg.NewFileSystemProvider(dir), opts...)
}

// CheckResources performs:
//  1. parse check of every resource
//  2. import resolution under each resource's own fallback chain
//  3. template alignment of locale overrides against the neutral resource
func CheckResources(p lg.ResourceProvider, opts ...lg.Option) (*Result, error) {
	catalog, err := lg.LoadCatalog(p, opts...)
	if err != nil {
		return nil, err
	}
	bucket := catalog.Bucket()

	res := &Result{
		Locales:            catalog.Locales(),
		ParseErrors:        make(map[string]error),
		UnresolvedImports:  make(map[string][]string),
		MissingTemplates:   make(map[string][]string),
		RedundantTemplates: make(map[string][]string),
	}

	for _, locale := range res.Locales {
		for _, r := range bucket[locale] {
			res.Resources = append(res.Resources, r.ID)

			parsed, err := catalog.Parsed(r.ID)
			if err != nil {
				res.ParseErrors[r.ID] = err
				continue
			}

			chain := lg.ResolveFallback(r.Locale, res.Locales)
			for _, imp := range parsed.Imports {
				if _, err := lg.ResolveImport(bucket, imp.BaseName, imp.Chain(chain)); err != nil {
					res.UnresolvedImports[r.ID] = append(res.UnresolvedImports[r.ID], imp.Path)
				}
			}

			if r.IsNeutral() {
				continue
			}
			neutral, ok := bucket.Find("", r.BaseName)
			if !ok {
				continue
			}
			base, err := catalog.Parsed(neutral.ID)
			if err != nil {
				continue
			}
			if missing := diff(base.Templates, parsed.Templates); len(missing) > 0 {
				res.MissingTemplates[r.ID] = missing
			}
			if redundant := diff(parsed.Templates, base.Templates); len(redundant) > 0 {
				res.RedundantTemplates[r.ID] = redundant
			}
		}
	}
	sort.Strings(res.Resources)

	return res, nil
}

// diff returns the names in a that b lacks, sorted.
func diff(a, b map[string]*lg.Template) []string {
	var out []string
	for name := range a {
		if _, ok := b[name]; !ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
