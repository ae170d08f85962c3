package imagemeta

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimensions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 12, 8))))

	w, h := Dimensions(&buf)
	assert.Equal(t, 12, w)
	assert.Equal(t, 8, h)
}

func TestDimensionsUndecodable(t *testing.T) {
	w, h := Dimensions(strings.NewReader("not an image"))
	assert.Zero(t, w)
	assert.Zero(t, h)
}
