package user

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"

	"golang.org/x/image/draw"
)

// thumbMaxDim bounds the longest side of a generated avatar thumbnail.
const thumbMaxDim = 96

// Thumbnail derives a small avatar from a base64 data-URL image. Inputs
// that are not data URLs (plain http URLs, initials placeholders) pass
// through unchanged, as do images already within the size bound.
func Thumbnail(avatar string) (string, error) {
	payload, ok := strings.CutPrefix(avatar, "data:")
	if !ok {
		return avatar, nil
	}
	semi := strings.Index(payload, ";base64,")
	if semi < 0 {
		return avatar, nil
	}

	raw, err := base64.StdEncoding.DecodeString(payload[semi+len(";base64,"):])
	if err != nil {
		return "", fmt.Errorf("failed to decode avatar data: %w", err)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to decode avatar image: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= thumbMaxDim && h <= thumbMaxDim {
		return avatar, nil
	}

	if w >= h {
		h = h * thumbMaxDim / w
		w = thumbMaxDim
	} else {
		w = w * thumbMaxDim / h
		h = thumbMaxDim
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
