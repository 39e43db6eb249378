package lg

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ResolveImport walks chain in order and returns the first resource of bucket
// named targetBaseName.
func ResolveImport(bucket LocaleBucket, targetBaseName string, chain []string) (Resource, error) {
	for _, locale := range chain {
		if r, ok := bucket.Find(locale, targetBaseName); ok {
			return r, nil
		}
	}
	return Resource{}, errors.Wrapf(ErrImportNotFound, "%q (locales %q)", targetBaseName, chain)
}

// resolveImport applies the explicit locale hint of imp, if any, and caches
// results per (chain, target).
func (c *Catalog) resolveImport(source Resource, imp Import, chain []string) (Resource, error) {
	chain = imp.Chain(chain)
	key := strings.Join(chain, ",") + "|" + imp.BaseName
	if v, ok := c.importCache.Load(key); ok {
		return v.(Resource), nil
	}

	r, err := ResolveImport(c.bucket, imp.BaseName, chain)
	if err != nil {
		return Resource{}, errors.Wrapf(err, "%s:%d", source.ID, imp.Line)
	}
	c.importCache.Store(key, r)
	c.logger.Debug("import resolved",
		zap.String("source", source.ID),
		zap.String("target", imp.BaseName),
		zap.Strings("chain", chain),
		zap.String("resource", r.ID))
	return r, nil
}

// findTemplate looks name up in res, then depth-first through its imports in
// declaration order. Each resource is visited once per lookup.
func (c *Catalog) findTemplate(res *ParsedResource, name string, chain []string) (*ParsedResource, *Template, error) {
	return c.lookup(res, name, chain, make(map[string]struct{}))
}

func (c *Catalog) lookup(res *ParsedResource, name string, chain []string, visited map[string]struct{}) (*ParsedResource, *Template, error) {
	visited[res.ID] = struct{}{}
	if tpl, ok := res.Templates[name]; ok {
		return res, tpl, nil
	}

	for _, imp := range res.Imports {
		target, err := c.resolveImport(res.Resource, imp, chain)
		if err != nil {
			return nil, nil, err
		}
		if _, ok := visited[target.ID]; ok {
			continue
		}
		parsed, err := c.parse(target)
		if err != nil {
			return nil, nil, err
		}
		owner, tpl, err := c.lookup(parsed, name, chain, visited)
		if err == nil {
			return owner, tpl, nil
		}
		if !errors.Is(err, ErrTemplateNotFound) {
			return nil, nil, err
		}
	}
	return nil, nil, errors.Wrapf(ErrTemplateNotFound, "%q in %s", name, res.ID)
}

// preload parses every resource reachable from res under chain. Imports that
// do not resolve are left for generate time.
func (c *Catalog) preload(res *ParsedResource, chain []string, visited map[string]struct{}) error {
	visited[res.ID] = struct{}{}
	for _, imp := range res.Imports {
		target, err := c.resolveImport(res.Resource, imp, chain)
		if err != nil {
			continue
		}
		if _, ok := visited[target.ID]; ok {
			continue
		}
		parsed, err := c.parse(target)
		if err != nil {
			return err
		}
		if err := c.preload(parsed, chain, visited); err != nil {
			return err
		}
	}
	return nil
}
