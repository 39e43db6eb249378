package lg

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// TemplateGenerator renders a template reference against data.
type TemplateGenerator interface {
	Generate(ref string, data map[string]any) (string, error)
}

// Generator renders templates from one resource and its imports. Its fallback
// chain is derived from the resource's own locale when it is built.
type Generator struct {
	catalog *Catalog
	res     *ParsedResource
	chain   []string
}

var _ TemplateGenerator = (*Generator)(nil)

// NewGenerator binds the resource with the given id. The resource and every
// import reachable under its chain are parsed here, so malformed or
// duplicate definitions fail construction.
func (c *Catalog) NewGenerator(id string) (*Generator, error) {
	r, ok := c.bucket.Lookup(id)
	if !ok {
		return nil, errors.Wrapf(ErrResourceNotFound, "%q", id)
	}
	res, err := c.parse(r)
	if err != nil {
		return nil, err
	}

	chain := ResolveFallback(r.Locale, c.locales)
	if err := c.preload(res, chain, make(map[string]struct{})); err != nil {
		return nil, err
	}
	c.logger.Debug("generator created", zap.String("resource", r.ID), zap.Strings("chain", chain))
	return &Generator{catalog: c, res: res, chain: chain}, nil
}

// MustNewGenerator is NewGenerator that panics on error.
func (c *Catalog) MustNewGenerator(id string) *Generator {
	return Must(c.NewGenerator(id))
}

// Generate renders ref, either a template name or an inline body such as
// "${welcome(name)}".
func (g *Generator) Generate(ref string, data map[string]any) (string, error) {
	return g.generate(ref, data, g.chain)
}

func (g *Generator) generate(ref string, data map[string]any, chain []string) (string, error) {
	return g.catalog.evaluateRef(g.res, ref, data, chain)
}

// Resource returns the bound resource.
func (g *Generator) Resource() Resource {
	return g.res.Resource
}

// Templates returns the template names declared by the bound resource.
func (g *Generator) Templates() []string {
	return append([]string(nil), g.res.Order...)
}

// Chain returns the fallback chain imports are resolved with.
func (g *Generator) Chain() []string {
	return append([]string(nil), g.chain...)
}
