package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderPath_SubstitutesInTemplateOrder(t *testing.T) {
	got := renderPath("/a/{x}/b/{y}", []string{"x", "y"}, []string{"1", "2"})
	assert.Equal(t, "/a/1/b/2", got)
}

func TestRenderPath_EncodesSlashAndUnicodeBoundary(t *testing.T) {
	got := renderPath("/a/{x}/b/{y}", []string{"x", "y"}, []string{"1/2", "é"})
	assert.Contains(t, got, "/a/1%2F2/b/%C3%A9")
}

func TestRenderPath_MissingPositionalLeavesEmptySegment(t *testing.T) {
	got := renderPath("/items/{id}", []string{"id"}, nil)
	assert.Equal(t, "/items/", got)
}

func TestEncodePathSegment_EscapesReservedCharacters(t *testing.T) {
	assert.Equal(t, "a%2Fb", encodePathSegment("a/b"))
	assert.Equal(t, "%C3%A9", encodePathSegment("é"))
}
