package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	assert.Contains(t, Render("hello **world**"), "<strong>world</strong>")
	assert.Contains(t, Render("- one\n- two"), "<li>one</li>")
	// GFM strikethrough.
	assert.Contains(t, Render("~~gone~~"), "<del>gone</del>")
}
