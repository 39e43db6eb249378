package lg

import (
	"sync"
	"sync/atomic"

	"github.com/bluele/gcache"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const defaultInlineCacheSize = 512

// Catalog is a read-only snapshot of grouped resources. It parses each
// resource at most once and is safe for concurrent use.
type Catalog struct {
	bucket  LocaleBucket
	locales []string

	logger          *zap.Logger
	selector        VariationSelector
	inlineCacheSize int

	parsedCache sync.Map // resource id -> *parseEntry
	importCache sync.Map // chain|base -> Resource
	inline      gcache.Cache
	parses      atomic.Int64
}

type parseEntry struct {
	res *ParsedResource
	err error
}

// NewCatalog groups resources by locale and returns the snapshot.
func NewCatalog(resources []Resource, opts ...Option) *Catalog {
	c := &Catalog{
		logger:          zap.NewNop(),
		selector:        firstVariation,
		inlineCacheSize: defaultInlineCacheSize,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.bucket = GroupByLocale(resources)
	c.locales = c.bucket.Locales()
	c.inline = gcache.New(c.inlineCacheSize).LRU().Build()

	if dropped := len(resources) - c.size(); dropped > 0 {
		c.logger.Warn("duplicate resource ids ignored", zap.Int("count", dropped))
	}
	c.logger.Debug("catalog built",
		zap.Int("resources", c.size()),
		zap.Strings("locales", c.locales))
	return c
}

// LoadCatalog lists every resource of p and builds a catalog from them.
func LoadCatalog(p ResourceProvider, opts ...Option) (*Catalog, error) {
	raws, err := p.ListResources()
	if err != nil {
		return nil, errors.Wrap(err, "list resources")
	}
	resources := make([]Resource, 0, len(raws))
	for _, raw := range raws {
		resources = append(resources, NewResource(raw.ID, raw.Content))
	}
	return NewCatalog(resources, opts...), nil
}

// MustLoadCatalog is LoadCatalog that panics on error.
func MustLoadCatalog(p ResourceProvider, opts ...Option) *Catalog {
	return Must(LoadCatalog(p, opts...))
}

// Bucket returns the locale bucket. Callers must not modify it.
func (c *Catalog) Bucket() LocaleBucket {
	return c.bucket
}

// Locales returns the available locales, "" included when neutral resources
// exist.
func (c *Catalog) Locales() []string {
	return append([]string(nil), c.locales...)
}

// Parsed returns the parsed form of the resource with the given id.
func (c *Catalog) Parsed(id string) (*ParsedResource, error) {
	r, ok := c.bucket.Lookup(id)
	if !ok {
		return nil, errors.Wrapf(ErrResourceNotFound, "%q", id)
	}
	return c.parse(r)
}

func (c *Catalog) parse(r Resource) (*ParsedResource, error) {
	if v, ok := c.parsedCache.Load(r.ID); ok {
		e := v.(*parseEntry)
		return e.res, e.err
	}

	res, err := Parse(r)
	c.parses.Add(1)
	if err != nil {
		c.logger.Debug("resource parse failed", zap.String("resource", r.ID), zap.Error(err))
	} else {
		c.logger.Debug("resource parsed",
			zap.String("resource", r.ID),
			zap.Int("templates", len(res.Templates)),
			zap.Int("imports", len(res.Imports)))
	}

	v, _ := c.parsedCache.LoadOrStore(r.ID, &parseEntry{res: res, err: err})
	e := v.(*parseEntry)
	return e.res, e.err
}

func (c *Catalog) selectVariation(n int) int {
	i := c.selector(n)
	if i < 0 || i >= n {
		return 0
	}
	return i
}

func (c *Catalog) size() int {
	n := 0
	for _, resources := range c.bucket {
		n += len(resources)
	}
	return n
}
