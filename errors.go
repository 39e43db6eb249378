package lg

import "github.com/pkg/errors"

// Error kinds. Every error returned by this package wraps exactly one of
// them, so callers can branch with errors.Is.
var (
	ErrDuplicateTemplate         = errors.New("duplicate template")
	ErrMalformedTemplate         = errors.New("malformed template")
	ErrTemplateNotFound          = errors.New("template not found")
	ErrImportNotFound            = errors.New("import not found")
	ErrCircularTemplateReference = errors.New("circular template reference")
	ErrNoGeneratorForLocale      = errors.New("no generator for locale")
	ErrResourceNotFound          = errors.New("resource not found")
	ErrExpression                = errors.New("expression error")
)

// Must panics when err is not nil, otherwise it returns v.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
