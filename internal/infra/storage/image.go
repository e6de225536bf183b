package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"path"
	"strings"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	MaxImageSide = 1600
	webpQuality  = 80
)

var ErrUnsupportedType = errors.New("storage: unsupported certificate type")

// NormalizeCertificate re-encodes JPEG and PNG certificates as WebP,
// downscaled so the longest side is at most MaxImageSide. PDFs are kept.
func NormalizeCertificate(data []byte, contentType string) ([]byte, string, error) {
	switch strings.ToLower(contentType) {
	case "application/pdf":
		return data, "application/pdf", nil
	case "image/jpeg", "image/jpg", "image/png":
	default:
		return nil, "", ErrUnsupportedType
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	img := downscale(src, MaxImageSide)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, "", fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), "image/webp", nil
}

func downscale(src image.Image, maxSide int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSide && h <= maxSide {
		return src
	}

	if w >= h {
		h = h * maxSide / w
		w = maxSide
	} else {
		w = w * maxSide / h
		h = maxSide
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// CertificateKey is the object key for a mechanic certificate.
func CertificateKey(mechanicID uint, contentType string) string {
	ext := ".bin"
	switch contentType {
	case "image/webp":
		ext = ".webp"
	case "application/pdf":
		ext = ".pdf"
	}
	return path.Join("certificates", fmt.Sprint(mechanicID), uuid.NewString()+ext)
}
