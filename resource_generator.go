package lg

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ResourceGenerator renders templates of one logical resource, choosing the
// locale-specific file at call time. Generators are built lazily and cached
// per resolved resource id.
type ResourceGenerator struct {
	catalog   *Catalog
	baseName  string
	cache     sync.Map // resource id -> *Generator
	preloaded sync.Map // resource id|import chain -> struct{}
}

// NewResourceGenerator returns a generator for the resources named baseName,
// e.g. "main" for main.lg, main.en-US.lg and so on.
func (c *Catalog) NewResourceGenerator(baseName string) *ResourceGenerator {
	return &ResourceGenerator{catalog: c, baseName: normalizeID(baseName)}
}

// Generate renders ref from the best resource for locale. Imports follow the
// requested locale, so a neutral resource still picks up localized imports.
// The first call for a resource and import chain parses every import
// reachable under that chain, so a malformed import fails that call whatever
// ref names.
func (rg *ResourceGenerator) Generate(ref string, data map[string]any, locale string) (string, error) {
	g, err := rg.generatorFor(locale)
	if err != nil {
		return "", err
	}
	chain := ResolveFallback(locale, rg.catalog.locales)
	if err := rg.preload(g, chain); err != nil {
		return "", err
	}
	return g.generate(ref, data, chain)
}

// BaseName returns the logical resource name.
func (rg *ResourceGenerator) BaseName() string {
	return rg.baseName
}

func (rg *ResourceGenerator) preload(g *Generator, chain []string) error {
	key := g.res.ID + "|" + strings.Join(chain, ",")
	if _, ok := rg.preloaded.Load(key); ok {
		return nil
	}
	if err := rg.catalog.preload(g.res, chain, make(map[string]struct{})); err != nil {
		return err
	}
	rg.preloaded.Store(key, struct{}{})
	return nil
}

func (rg *ResourceGenerator) generatorFor(locale string) (*Generator, error) {
	bucket := rg.catalog.bucket
	for _, l := range ResolveFallback(locale, bucket.LocalesOf(rg.baseName)) {
		r, ok := bucket.Find(l, rg.baseName)
		if !ok {
			continue
		}
		if v, ok := rg.cache.Load(r.ID); ok {
			return v.(*Generator), nil
		}

		g, err := rg.catalog.NewGenerator(r.ID)
		if err != nil {
			return nil, err
		}
		v, loaded := rg.cache.LoadOrStore(r.ID, g)
		if !loaded {
			rg.catalog.logger.Debug("resource generator cached",
				zap.String("base", rg.baseName),
				zap.String("locale", locale),
				zap.String("resource", r.ID))
		}
		return v.(*Generator), nil
	}
	return nil, errors.Wrapf(ErrNoGeneratorForLocale, "%q for %q", locale, rg.baseName)
}
