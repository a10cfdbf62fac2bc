package helper

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xwebp "golang.org/x/image/webp"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestConvertToWebPDownscales(t *testing.T) {
	out, err := ConvertToWebP(bytes.NewReader(pngOf(t, 400, 200)), "slip.png", WebPOptions{MaxW: 100, MaxH: 100, Quality: 70})
	require.NoError(t, err)

	img, err := xwebp.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestConvertToWebPKeepsSmallImages(t *testing.T) {
	out, err := ConvertToWebP(bytes.NewReader(pngOf(t, 40, 30)), "a.png", WebPOptions{MaxW: 100})
	require.NoError(t, err)

	img, err := xwebp.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}

func TestConvertToWebPRejectsOtherFiles(t *testing.T) {
	_, err := ConvertToWebP(strings.NewReader("%PDF-1.4 not an image"), "slip.pdf", WebPOptions{})
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = ConvertToWebP(bytes.NewReader(nil), "empty.png", WebPOptions{})
	assert.Error(t, err)
}
