package lg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctions(t *testing.T) {
	RegisterFunction("exclaim", func(args ...any) (any, error) {
		return toText(arg(args, 0)) + "!", nil
	})
	c := newTestCatalog(t, map[string]string{
		"a.lg": "# upper\n- shadowed",
	})
	g := c.MustNewGenerator("a.lg")

	data := map[string]any{
		"name":    "tom",
		"price":   12345.678,
		"created": time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
		"items":   []string{"a", "b"},
	}
	cases := []struct {
		name string
		ref  string
		want string
	}{
		{"Upper", "${upper(name)}", "TOM"},
		{"Lower", `${lower("ABC")}`, "abc"},
		{"Title", `${title("hello world")}`, "Hello World"},
		{"Number", "${number(price, 2)}", "12,345.68"},
		{"NumberDefault", "${number(price)}", "12,346"},
		{"Currency", `${currency(price, "¥")}`, "¥12,345.68"},
		{"CurrencyString", `${currency("$1,000")}`, "$1,000.00"},
		{"Date", `${dateFormat(created, "2006/01/02")}`, "2024/03/09"},
		{"Join", `${join(items, " & ")}`, "a & b"},
		{"JoinDefault", `${join(items)}`, "a, b"},
		{"Registered", `${exclaim(name)}`, "tom!"},
	}
	for _, tc := range cases {
		t.Run("Functions_"+tc.name, func(t *testing.T) {
			out, err := g.Generate(tc.ref, data)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestAddThousandsSep(t *testing.T) {
	assert.Equal(t, "1", addThousandsSep("1"))
	assert.Equal(t, "1,000", addThousandsSep("1000"))
	assert.Equal(t, "-1,234,567.5", addThousandsSep("-1234567.5"))
}

func TestToText(t *testing.T) {
	assert.Equal(t, "", toText(nil))
	assert.Equal(t, "3", toText(3.0))
	assert.Equal(t, "true", toText(true))
	assert.Equal(t, "[1 2]", toText([]int{1, 2}))
}
