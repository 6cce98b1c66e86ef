package fetch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser(""))
	assert.True(t, ShouldUseBrowser("   Loading...   "))
	assert.True(t, ShouldUseBrowser(strings.Repeat("a", MinContentLength-1)))
	assert.False(t, ShouldUseBrowser(strings.Repeat("a", MinContentLength)))
}

func TestBrowserRenderer_NotNil(t *testing.T) {
	assert.NotNil(t, BrowserRenderer(0, nil))
}
