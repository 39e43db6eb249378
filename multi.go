package lg

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// MultiLocaleGenerator dispatches to one generator per configured locale.
// Bindings may change while Generate runs on other goroutines.
type MultiLocaleGenerator struct {
	mu       sync.RWMutex
	bindings map[string]TemplateGenerator
}

// NewMultiLocaleGenerator copies bindings; later changes to the map are not
// observed. Keys are normalized like locales.
func NewMultiLocaleGenerator(bindings map[string]TemplateGenerator) *MultiLocaleGenerator {
	m := &MultiLocaleGenerator{bindings: make(map[string]TemplateGenerator, len(bindings))}
	for l, g := range bindings {
		m.bindings[NormalizeLocale(l)] = g
	}
	return m
}

// Bind adds or replaces the generator for locale.
func (m *MultiLocaleGenerator) Bind(locale string, g TemplateGenerator) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bindings[NormalizeLocale(locale)] = g
}

// Unbind removes the generator for locale.
func (m *MultiLocaleGenerator) Unbind(locale string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.bindings, NormalizeLocale(locale))
}

// Replace swaps the whole binding table.
func (m *MultiLocaleGenerator) Replace(bindings map[string]TemplateGenerator) {
	next := make(map[string]TemplateGenerator, len(bindings))
	for l, g := range bindings {
		next[NormalizeLocale(l)] = g
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bindings = next
}

// Locales returns the bound locales in sorted order.
func (m *MultiLocaleGenerator) Locales() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	locales := make([]string, 0, len(m.bindings))
	for l := range m.bindings {
		locales = append(locales, l)
	}
	sort.Strings(locales)
	return locales
}

// Generate renders ref with the first generator on locale's fallback chain.
func (m *MultiLocaleGenerator) Generate(ref string, data map[string]any, locale string) (string, error) {
	g, err := m.pick(locale)
	if err != nil {
		return "", err
	}
	return g.Generate(ref, data)
}

func (m *MultiLocaleGenerator) pick(locale string) (TemplateGenerator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	available := make([]string, 0, len(m.bindings))
	for l := range m.bindings {
		available = append(available, l)
	}
	for _, l := range ResolveFallback(locale, available) {
		if g, ok := m.bindings[l]; ok && g != nil {
			return g, nil
		}
	}
	return nil, errors.Wrapf(ErrNoGeneratorForLocale, "%q", locale)
}
