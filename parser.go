package lg

import (
	"bufio"
	"path"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

///////////////////////////////////////////////////////////////////////////////
// PARSED RESOURCE
///////////////////////////////////////////////////////////////////////////////

// Template is one named definition inside a resource.
type Template struct {
	Name       string
	Parameters []string
	// Body is the raw template source, variations included.
	Body string
	// Variations holds the alternative bodies, "- " prefixes stripped.
	Variations []string
	Source     string
	Line       int

	compiled []compiledBody
}

// Import is an [import](path) declaration.
type Import struct {
	Path     string
	BaseName string
	// Locale is the explicit locale hint carried by Path, "" when the import
	// follows the caller's fallback chain.
	Locale string
	Line   int
}

// Chain returns the locales imp resolves against when the importing
// template runs under chain: its explicit locale alone if it names one.
func (imp Import) Chain(chain []string) []string {
	if imp.Locale != "" {
		return []string{imp.Locale}
	}
	return chain
}

// ParsedResource is a Resource together with its templates and imports.
type ParsedResource struct {
	Resource
	Templates map[string]*Template
	// Order lists template names in declaration order.
	Order   []string
	Imports []Import
}

///////////////////////////////////////////////////////////////////////////////
// RESOURCE PARSER
///////////////////////////////////////////////////////////////////////////////

var (
	identPattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	importPattern = regexp.MustCompile(`^\[import\]\((.*)\)$`)
)

// Parse splits a resource into templates and import declarations. Template
// bodies are segmented and their expressions compiled, but nothing is
// evaluated.
func Parse(r Resource) (*ParsedResource, error) {
	p := &ParsedResource{
		Resource:  r,
		Templates: make(map[string]*Template),
	}

	var (
		cur     *Template
		raw     []string
		lineNum int
	)
	finish := func() error {
		if cur == nil {
			return nil
		}
		if len(cur.Variations) == 0 {
			return errors.Wrapf(ErrMalformedTemplate, "%s:%d: template %q has an empty body", r.ID, cur.Line, cur.Name)
		}
		cur.Body = strings.Join(raw, "\n")
		for i, v := range cur.Variations {
			body, err := parseBody(v)
			if err != nil {
				return errors.Wrapf(err, "%s:%d: template %q variation %d", r.ID, cur.Line, cur.Name, i+1)
			}
			cur.compiled = append(cur.compiled, body)
		}
		cur, raw = nil, nil
		return nil
	}

	sc := bufio.NewScanner(strings.NewReader(r.Content))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), " \t\r")
		trimmed := strings.TrimLeft(line, " \t")

		switch {
		case trimmed == "", strings.HasPrefix(trimmed, ">"):
			continue

		case strings.HasPrefix(trimmed, "#"):
			if err := finish(); err != nil {
				return nil, err
			}
			name, params, err := parseHeader(trimmed)
			if err != nil {
				return nil, errors.Wrapf(err, "%s:%d", r.ID, lineNum)
			}
			if prev, ok := p.Templates[name]; ok {
				return nil, errors.Wrapf(ErrDuplicateTemplate, "%s:%d: %q already declared at line %d", r.ID, lineNum, name, prev.Line)
			}
			cur = &Template{Name: name, Parameters: params, Source: r.ID, Line: lineNum}
			p.Templates[name] = cur
			p.Order = append(p.Order, name)

		case importPattern.MatchString(trimmed):
			if err := finish(); err != nil {
				return nil, err
			}
			imp, err := parseImport(r, trimmed, lineNum)
			if err != nil {
				return nil, err
			}
			p.Imports = append(p.Imports, imp)

		case cur == nil:
			return nil, errors.Wrapf(ErrMalformedTemplate, "%s:%d: body line outside of a template", r.ID, lineNum)

		case strings.HasPrefix(trimmed, "-"):
			raw = append(raw, line)
			cur.Variations = append(cur.Variations, strings.TrimPrefix(trimmed[1:], " "))

		default:
			raw = append(raw, line)
			if n := len(cur.Variations); n > 0 {
				cur.Variations[n-1] += "\n" + line
			} else {
				cur.Variations = append(cur.Variations, line)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(ErrMalformedTemplate, "%s: %v", r.ID, err)
	}
	if err := finish(); err != nil {
		return nil, err
	}
	return p, nil
}

// parseHeader parses "# name" or "# name(a, b)".
func parseHeader(line string) (name string, params []string, err error) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "#"))
	open := strings.IndexByte(rest, '(')
	if open < 0 {
		name = rest
	} else {
		name = strings.TrimSpace(rest[:open])
		closing := strings.IndexByte(rest, ')')
		if closing < open {
			return "", nil, errors.Wrapf(ErrMalformedTemplate, "unterminated parameter list in %q", line)
		}
		if tail := strings.TrimSpace(rest[closing+1:]); tail != "" {
			return "", nil, errors.Wrapf(ErrMalformedTemplate, "unexpected %q after parameter list", tail)
		}
		if inner := strings.TrimSpace(rest[open+1 : closing]); inner != "" {
			seen := make(map[string]struct{})
			for _, p := range strings.Split(inner, ",") {
				p = strings.TrimSpace(p)
				if !identPattern.MatchString(p) {
					return "", nil, errors.Wrapf(ErrMalformedTemplate, "invalid parameter name %q", p)
				}
				if _, ok := seen[p]; ok {
					return "", nil, errors.Wrapf(ErrMalformedTemplate, "parameter %q declared twice", p)
				}
				seen[p] = struct{}{}
				params = append(params, p)
			}
		}
	}
	if !identPattern.MatchString(name) {
		return "", nil, errors.Wrapf(ErrMalformedTemplate, "invalid template name %q", name)
	}
	return name, params, nil
}

// parseImport resolves the declared path against the importing resource's
// directory and derives the target base name and locale hint from it.
func parseImport(r Resource, line string, lineNum int) (Import, error) {
	m := importPattern.FindStringSubmatch(line)
	target := strings.TrimSpace(m[1])
	if target == "" {
		return Import{}, errors.Wrapf(ErrMalformedTemplate, "%s:%d: empty import path", r.ID, lineNum)
	}
	target = path.Join(path.Dir(r.ID), normalizeID(target))
	base, locale := ParseResourceID(target)
	return Import{
		Path:     target,
		BaseName: base,
		Locale:   strings.ToLower(locale),
		Line:     lineNum,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// BODY PARSER
///////////////////////////////////////////////////////////////////////////////

// segment is either literal text or a compiled ${...} expression.
type segment struct {
	text string
	expr *expression
}

type compiledBody []segment

// parseBody splits src into literal and ${...} segments. Braces inside an
// expression nest, and braces inside quoted strings are ignored. "\${" is a
// literal "${".
func parseBody(src string) (compiledBody, error) {
	runes := []rune(src)
	n := len(runes)

	var body compiledBody
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			body = append(body, segment{text: buf.String()})
			buf.Reset()
		}
	}

	for i := 0; i < n; {
		if runes[i] == '\\' && i+2 < n && runes[i+1] == '$' && runes[i+2] == '{' {
			buf.WriteString("${")
			i += 3
			continue
		}
		if runes[i] != '$' || i+1 >= n || runes[i+1] != '{' {
			buf.WriteRune(runes[i])
			i++
			continue
		}

		end, err := matchBrace(runes, i+1)
		if err != nil {
			return nil, err
		}
		raw := strings.TrimSpace(string(runes[i+2 : end]))
		if raw == "" {
			return nil, errors.Wrapf(ErrMalformedTemplate, "empty expression at position %d", i)
		}
		expr, err := compileExpression(raw)
		if err != nil {
			return nil, err
		}
		flush()
		body = append(body, segment{text: raw, expr: expr})
		i = end + 1
	}
	flush()
	return body, nil
}

// matchBrace returns the index of the '}' closing the '{' at open.
func matchBrace(runes []rune, open int) (int, error) {
	depth := 0
	var quote rune
	for j := open; j < len(runes); j++ {
		r := runes[j]
		if quote != 0 {
			switch {
			case r == '\\' && quote != '`':
				j++
			case r == quote:
				quote = 0
			}
			continue
		}
		switch r {
		case '"', '\'', '`':
			quote = r
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return j, nil
			}
		}
	}
	return 0, errors.Wrapf(ErrMalformedTemplate, "unterminated expression starting at position %d", open-1)
}
