package user

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"strings"
	"testing"
)

func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func decodeThumb(t *testing.T, thumb string) image.Image {
	t.Helper()
	idx := strings.Index(thumb, ";base64,")
	if idx < 0 {
		t.Fatalf("thumbnail is not a data URL: %.40s", thumb)
	}
	raw, err := base64.StdEncoding.DecodeString(thumb[idx+len(";base64,"):])
	if err != nil {
		t.Fatalf("failed to decode thumbnail payload: %v", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("failed to decode thumbnail image: %v", err)
	}
	return img
}

func TestThumbnailDownscalesLargeImage(t *testing.T) {
	thumb, err := Thumbnail(pngDataURL(t, 400, 200))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	img := decodeThumb(t, thumb)
	bounds := img.Bounds()
	if bounds.Dx() != thumbMaxDim {
		t.Errorf("expected width %d, got %d", thumbMaxDim, bounds.Dx())
	}
	if bounds.Dy() != thumbMaxDim/2 {
		t.Errorf("expected height %d, got %d", thumbMaxDim/2, bounds.Dy())
	}
}

func TestThumbnailKeepsSmallImage(t *testing.T) {
	small := pngDataURL(t, 48, 48)
	thumb, err := Thumbnail(small)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if thumb != small {
		t.Error("images within the bound should pass through unchanged")
	}
}

func TestThumbnailPassesThroughNonDataURLs(t *testing.T) {
	for _, avatar := range []string{"https://example.com/a.png", "AB", ""} {
		thumb, err := Thumbnail(avatar)
		if err != nil {
			t.Errorf("unexpected error for %q: %v", avatar, err)
		}
		if thumb != avatar {
			t.Errorf("expected passthrough for %q, got %q", avatar, thumb)
		}
	}
}

func TestThumbnailRejectsGarbage(t *testing.T) {
	if _, err := Thumbnail("data:image/png;base64,!!!not-base64!!!"); err == nil {
		t.Error("expected error for invalid base64 payload")
	}
}
