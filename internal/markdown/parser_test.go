package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_DecodesFrontmatter(t *testing.T) {
	source := []byte("---\ntitle: Respira\norder: 2\n---\n# Respira hondo\n\nCuenta hasta **cuatro**.\n")

	var meta struct {
		Title string `yaml:"title"`
		Order int    `yaml:"order"`
	}
	html, err := NewParser().Render(source, &meta)
	require.NoError(t, err)

	assert.Equal(t, "Respira", meta.Title)
	assert.Equal(t, 2, meta.Order)
	assert.Contains(t, string(html), `<h1 id="respira-hondo">Respira hondo</h1>`)
	assert.Contains(t, string(html), "<strong>cuatro</strong>")
	assert.NotContains(t, string(html), "title:")
}

func TestRender_WithoutFrontmatter(t *testing.T) {
	var meta struct{ Title string }
	html, err := NewParser().Render([]byte("hola"), &meta)
	require.NoError(t, err)
	assert.Empty(t, meta.Title)
	assert.Contains(t, string(html), "<p>hola</p>")
}
