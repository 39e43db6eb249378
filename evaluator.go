package lg

import (
	"context"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// evaluation is the state of one generate call. It is never shared between
// calls.
type evaluation struct {
	catalog *Catalog
	chain   []string
	data    map[string]any
}

// frame is one template activation: the resource lookups start from and the
// templates currently on the call path.
type frame struct {
	ev    *evaluation
	res   *ParsedResource
	stack []string
}

// Evaluate renders templateName from res with the given arguments. Template
// lookups and imports resolve against chain.
func (c *Catalog) Evaluate(res *ParsedResource, templateName string, args []any, data map[string]any, chain []string) (string, error) {
	ev := &evaluation{catalog: c, chain: chain, data: data}
	root := &frame{ev: ev, res: res}
	return root.invoke(templateName, args)
}

func (f *frame) invoke(name string, args []any) (string, error) {
	owner, tpl, err := f.ev.catalog.findTemplate(f.res, name, f.ev.chain)
	if err != nil {
		return "", err
	}

	key := owner.ID + "#" + tpl.Name
	for _, k := range f.stack {
		if k == key {
			path := append(append([]string(nil), f.stack...), key)
			return "", errors.Wrapf(ErrCircularTemplateReference, "%s", strings.Join(path, " -> "))
		}
	}

	child := &frame{
		ev:    f.ev,
		res:   owner,
		stack: append(f.stack[:len(f.stack):len(f.stack)], key),
	}
	body := tpl.compiled[f.ev.catalog.selectVariation(len(tpl.compiled))]
	return child.render(body, bindArguments(f.ev.data, tpl.Parameters, args))
}

// render evaluates body left to right and concatenates the pieces.
func (f *frame) render(body compiledBody, scope map[string]any) (string, error) {
	ctx := WithInvoker(context.Background(), f.invoke)

	var buf strings.Builder
	for _, seg := range body {
		if seg.expr == nil {
			buf.WriteString(seg.text)
			continue
		}
		v, err := seg.expr.Eval(ctx, scope)
		if err != nil {
			if isResolutionError(err) {
				return "", err
			}
			return "", errors.Wrapf(ErrExpression, "%s: ${%s}: %v", f.res.ID, seg.text, err)
		}
		buf.WriteString(toText(v))
	}
	return buf.String(), nil
}

// isResolutionError reports whether err already carries one of the error
// kinds that must reach the caller unchanged.
func isResolutionError(err error) bool {
	for _, kind := range []error{
		ErrTemplateNotFound,
		ErrImportNotFound,
		ErrCircularTemplateReference,
		ErrMalformedTemplate,
		ErrDuplicateTemplate,
		ErrExpression,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// bindArguments layers positional arguments over data. Missing arguments are
// bound to nil; extra ones are dropped.
func bindArguments(data map[string]any, params []string, args []any) map[string]any {
	scope := make(map[string]any, len(data)+len(params))
	for k, v := range data {
		scope[k] = v
	}
	for i, p := range params {
		if i < len(args) {
			scope[p] = args[i]
		} else {
			scope[p] = nil
		}
	}
	return scope
}

var templateRefPattern = regexp.MustCompile(`^\s*[A-Za-z_][A-Za-z0-9_]*\s*$`)

// evaluateRef renders ref from res. A bare identifier names a template;
// anything else is an inline body such as "${greeting()}!".
func (c *Catalog) evaluateRef(res *ParsedResource, ref string, data map[string]any, chain []string) (string, error) {
	if templateRefPattern.MatchString(ref) {
		return c.Evaluate(res, strings.TrimSpace(ref), nil, data, chain)
	}

	body, err := c.compileInline(ref)
	if err != nil {
		return "", err
	}
	ev := &evaluation{catalog: c, chain: chain, data: data}
	root := &frame{ev: ev, res: res}
	return root.render(body, bindArguments(data, nil, nil))
}

func (c *Catalog) compileInline(ref string) (compiledBody, error) {
	if v, err := c.inline.Get(ref); err == nil {
		return v.(compiledBody), nil
	}
	body, err := parseBody(ref)
	if err != nil {
		return nil, errors.Wrapf(err, "template reference %q", ref)
	}
	_ = c.inline.Set(ref, body)
	return body, nil
}
