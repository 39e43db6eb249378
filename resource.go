package lg

import (
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

// Resource is one named text resource. Locale and BaseName are derived from
// ID once, when the resource is created, and never change afterwards.
type Resource struct {
	ID       string
	BaseName string
	// Locale is the lower-cased locale segment of ID, "" for neutral resources.
	Locale string
	// LocaleTag keeps the locale segment as it was written in ID.
	LocaleTag string
	Content   string
}

// NewResource builds a Resource, deriving BaseName and Locale from id.
func NewResource(id, content string) Resource {
	id = normalizeID(id)
	base, tag := ParseResourceID(id)
	return Resource{
		ID:        id,
		BaseName:  base,
		Locale:    strings.ToLower(tag),
		LocaleTag: tag,
		Content:   content,
	}
}

// IsNeutral reports whether the resource carries no locale segment.
func (r Resource) IsNeutral() bool {
	return r.Locale == ""
}

var localeShape = regexp.MustCompile(`^[A-Za-z]{2,3}(-[A-Za-z0-9]{1,8})*$`)

// segments that look like a language subtag but are file name conventions
var nonLocaleSegments = map[string]struct{}{
	"lg":   {},
	"min":  {},
	"bak":  {},
	"tmpl": {},
	"tpl":  {},
	"old":  {},
	"new":  {},
}

// ParseResourceID splits id following the <base>[.<locale>].<ext> convention.
// The returned locale keeps its original casing and is empty for neutral
// resources. An id without an extension is neutral with base equal to the id.
func ParseResourceID(id string) (base, locale string) {
	id = normalizeID(id)
	dir, file := path.Split(id)

	dot := strings.LastIndexByte(file, '.')
	if dot <= 0 {
		return id, ""
	}
	stem := file[:dot]

	dot = strings.LastIndexByte(stem, '.')
	if dot <= 0 {
		return dir + stem, ""
	}
	if segment := stem[dot+1:]; isLocaleSegment(segment) {
		return dir + stem[:dot], segment
	}
	return dir + stem, ""
}

func isLocaleSegment(s string) bool {
	if len(s) < 2 || !localeShape.MatchString(s) {
		return false
	}
	if _, ok := nonLocaleSegments[strings.ToLower(s)]; ok {
		return false
	}
	_, err := language.Parse(s)
	return err == nil
}

func normalizeID(id string) string {
	return strings.ReplaceAll(strings.TrimSpace(id), "\\", "/")
}
