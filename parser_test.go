package lg

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("Parse_Success", func(t *testing.T) {
		content := `> comment
[import](common.lg)
[import](../shared/names.fr.lg)

# greeting
- Hello
- Hi

# welcome(name, count)
- ${greeting()} ${name},
  you have ${count} messages
`
		p, err := Parse(NewResource("dir/main.lg", content))
		require.NoError(t, err)

		assert.Equal(t, []string{"greeting", "welcome"}, p.Order)
		require.Len(t, p.Imports, 2)
		assert.Equal(t, Import{Path: "dir/common.lg", BaseName: "dir/common", Line: 2}, p.Imports[0])
		assert.Equal(t, Import{Path: "shared/names.fr.lg", BaseName: "shared/names", Locale: "fr", Line: 3}, p.Imports[1])

		greeting := p.Templates["greeting"]
		assert.Empty(t, greeting.Parameters)
		assert.Equal(t, []string{"Hello", "Hi"}, greeting.Variations)
		assert.Equal(t, "- Hello\n- Hi", greeting.Body)
		assert.Equal(t, 5, greeting.Line)

		welcome := p.Templates["welcome"]
		assert.Equal(t, []string{"name", "count"}, welcome.Parameters)
		assert.Equal(t, []string{"${greeting()} ${name},\n  you have ${count} messages"}, welcome.Variations)
		assert.Equal(t, "dir/main.lg", welcome.Source)
	})

	t.Run("Parse_DuplicateTemplate", func(t *testing.T) {
		_, err := Parse(NewResource("a.lg", "# x\n- 1\n# x\n- 2"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDuplicateTemplate))
		assert.Contains(t, err.Error(), "a.lg:3")
	})

	malformed := map[string]string{
		"unterminated params": "# x(a, b\n- body",
		"empty body":          "# x\n# y\n- body",
		"empty body at end":   "# x\n- body\n# y",
		"bad name":            "# 1x\n- body",
		"bad parameter":       "# x(a b)\n- body",
		"duplicate parameter": "# x(a, a)\n- body",
		"trailing text":       "# x(a) extra\n- body",
		"orphan body":         "- body",
		"unterminated expr":   "# x\n- ${name",
		"empty expr":          "# x\n- ${ }",
		"bad expr":            "# x\n- ${1 +}",
		"empty import":        "[import]()",
	}
	for name, content := range malformed {
		t.Run("Parse_Malformed_"+name, func(t *testing.T) {
			_, err := Parse(NewResource("a.lg", content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedTemplate), "got %v", err)
		})
	}
}

func TestImport_Chain(t *testing.T) {
	chain := []string{"en-us", "en", ""}

	plain := Import{Path: "common.lg", BaseName: "common"}
	assert.Equal(t, chain, plain.Chain(chain))

	hinted := Import{Path: "common.fr.lg", BaseName: "common", Locale: "fr"}
	assert.Equal(t, []string{"fr"}, hinted.Chain(chain))
	assert.Equal(t, []string{"en-us", "en", ""}, chain)
}

func TestParseBody(t *testing.T) {
	t.Run("ParseBody_Segments", func(t *testing.T) {
		body, err := parseBody(`Hi ${name}, ${join(items, "}")} \${literal}`)
		require.NoError(t, err)
		require.Len(t, body, 5)
		assert.Equal(t, "Hi ", body[0].text)
		assert.Equal(t, "name", body[1].text)
		assert.NotNil(t, body[1].expr)
		assert.Equal(t, ", ", body[2].text)
		assert.Equal(t, `join(items, "}")`, body[3].text)
		assert.Equal(t, " ${literal}", body[4].text)
		assert.Nil(t, body[4].expr)
	})
	t.Run("ParseBody_NestedBraces", func(t *testing.T) {
		body, err := parseBody(`${ {"a": 1} }`)
		require.NoError(t, err)
		require.Len(t, body, 1)
		assert.Equal(t, `{"a": 1}`, body[0].text)
	})
	t.Run("ParseBody_PlainDollar", func(t *testing.T) {
		body, err := parseBody("costs $5 {not an expr}")
		require.NoError(t, err)
		require.Len(t, body, 1)
		assert.Equal(t, "costs $5 {not an expr}", body[0].text)
	})
}

func TestCallNames(t *testing.T) {
	assert.Equal(t, []string{"a", "upper", "b"}, callNames(`a() + upper(b(x)) + a(1) + m.c() + "d()"`))
	assert.Empty(t, callNames("name + 1"))
}
