package lg

// Locale binds a ResourceGenerator to one requested locale.
type Locale struct {
	gen    *ResourceGenerator
	locale string
}

// Locale returns a view rendering in locale, e.g. "zh-CN" or "en".
func (rg *ResourceGenerator) Locale(locale string) *Locale {
	return &Locale{gen: rg, locale: locale}
}

// Generate renders ref in the bound locale.
func (l *Locale) Generate(ref string, data map[string]any) (string, error) {
	return l.gen.Generate(ref, data, l.locale)
}

// T renders ref and falls back to ref itself when rendering fails.
func (l *Locale) T(ref string, data map[string]any) string {
	if l.gen == nil {
		return ref
	}
	s, err := l.Generate(ref, data)
	if err != nil {
		return ref
	}
	return s
}

var _ TemplateGenerator = (*Locale)(nil)
