package lg

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystemProvider_ListResources(t *testing.T) {
	t.Run("ListResources_Success", func(t *testing.T) {
		p := NewFileSystemProvider("./testdata/resources")
		res, err := p.ListResources()
		require.NoError(t, err)

		ids := make([]string, 0, len(res))
		for _, r := range res {
			ids = append(ids, r.ID)
		}
		assert.ElementsMatch(t, []string{
			"common.lg", "common.en-US.lg", "common.fr.lg", "main.lg", "main.en-US.lg",
		}, ids)
	})
	t.Run("ListResources_Fail", func(t *testing.T) {
		_, err := NewFileSystemProvider("./testdata/does-not-exist").ListResources()
		assert.Error(t, err)
	})
	t.Run("ListResources_Extensions", func(t *testing.T) {
		res, err := NewFileSystemProvider("./testdata/resources", ".txt").ListResources()
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "notes.txt", res[0].ID)
	})
}

func TestFileSystemProvider_GetResource(t *testing.T) {
	p := NewFileSystemProvider("./testdata/resources")

	r, err := p.GetResource("common.fr.lg")
	require.NoError(t, err)
	assert.Contains(t, r.Content, "Bonjour")

	_, err = p.GetResource("nope.lg")
	assert.True(t, errors.Is(err, ErrResourceNotFound), "got %v", err)

	_, err = p.GetResource("../config.yaml")
	assert.True(t, errors.Is(err, ErrResourceNotFound), "got %v", err)
}

func TestMemoryProvider(t *testing.T) {
	p := MemoryProvider{"b.lg": "B", "a.lg": "A"}
	res, err := p.ListResources()
	require.NoError(t, err)
	assert.Equal(t, []RawResource{{ID: "a.lg", Content: "A"}, {ID: "b.lg", Content: "B"}}, res)

	r, err := p.GetResource("b.lg")
	require.NoError(t, err)
	assert.Equal(t, "B", r.Content)

	_, err = p.GetResource("c.lg")
	assert.True(t, errors.Is(err, ErrResourceNotFound))
}

func TestLoadCatalog_Directory(t *testing.T) {
	c := MustLoadCatalog(NewFileSystemProvider("./testdata/resources"))
	assert.Equal(t, []string{"", "en-us", "fr"}, c.Locales())

	rg := c.NewResourceGenerator("main")
	cases := map[string]string{
		"en-US": "Howdy, Tom! Welcome aboard.",
		"fr":    "Bonjour, Tom!",
		"de":    "Hello, Tom!",
	}
	for locale, want := range cases {
		t.Run("Directory_"+locale, func(t *testing.T) {
			out, err := rg.Generate(`${welcome(name)}`, map[string]any{"name": "Tom"}, locale)
			require.NoError(t, err)
			assert.Equal(t, want, out)
		})
	}

	out, err := c.MustNewGenerator("main.lg").Generate(`${welcome("Tom")}`, nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello, Tom!", out)
}
