package lg

import (
	"context"
	"fmt"
	"strings"
	"text/scanner"

	"github.com/PaesslerAG/gval"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// TemplateInvoker renders the named template with positional arguments. The
// evaluator hands one to every expression through its context.
type TemplateInvoker func(name string, args []any) (string, error)

type invokerKey struct{}

// WithInvoker returns a context whose expressions call templates through inv.
func WithInvoker(ctx context.Context, inv TemplateInvoker) context.Context {
	return context.WithValue(ctx, invokerKey{}, inv)
}

type expression struct {
	eval gval.Evaluable
}

// languageFunctions are the functions gval.Full defines itself.
var languageFunctions = map[string]struct{}{
	"date": {},
}

// compileExpression compiles src with the gval full language, the registered
// helper functions, and one template call per remaining call identifier.
func compileExpression(src string) (*expression, error) {
	langs := []gval.Language{helperLanguage()}
	for _, name := range callNames(src) {
		if _, ok := languageFunctions[name]; ok || hasFunction(name) {
			continue
		}
		langs = append(langs, gval.Function(name, templateCall(name)))
	}

	eval, err := gval.NewLanguage(langs...).NewEvaluable(src)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedTemplate, "expression %q: %v", src, err)
	}
	return &expression{eval: eval}, nil
}

func (e *expression) Eval(ctx context.Context, scope map[string]any) (any, error) {
	return e.eval(ctx, scope)
}

func templateCall(name string) func(ctx context.Context, args ...interface{}) (interface{}, error) {
	return func(ctx context.Context, args ...interface{}) (interface{}, error) {
		inv, ok := ctx.Value(invokerKey{}).(TemplateInvoker)
		if !ok || inv == nil {
			return nil, errors.Wrapf(ErrTemplateNotFound, "%q: no template scope", name)
		}
		return inv(name, args)
	}
}

// callNames lists identifiers directly followed by '(' and not preceded by
// '.', in order of first appearance.
func callNames(src string) []string {
	var s scanner.Scanner
	s.Init(strings.NewReader(src))
	s.Error = func(*scanner.Scanner, string) {}

	var names []string
	var prev, prev2 rune
	var ident string
	seen := make(map[string]struct{})
	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		if tok == '(' && prev == scanner.Ident && prev2 != '.' {
			if _, ok := seen[ident]; !ok {
				seen[ident] = struct{}{}
				names = append(names, ident)
			}
		}
		if tok == scanner.Ident {
			ident = s.TokenText()
		}
		prev2, prev = prev, tok
	}
	return names
}

// toText coerces an expression result to its rendered form.
func toText(v any) string {
	if v == nil {
		return ""
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}
