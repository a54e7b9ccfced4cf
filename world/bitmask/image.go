// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package bitmask

import (
	"fmt"
	"golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
)

// FromAlpha creates a Bitmask the size of img where a bit is set iff its pixel
// isn't fully transparent. Opaque true color formats set every bit. Paletted
// and gray images return ErrUnsupportedFormat.
func FromAlpha(img image.Image) (*Bitmask, error) {
	bounds := img.Bounds()
	m, err := New(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < m.h; y++ {
			row := src.Pix[y*src.Stride:]
			for x := 0; x < m.w; x++ {
				if row[x*4+3] != 0 {
					m.Set(x, y)
				}
			}
		}
	case *image.RGBA:
		for y := 0; y < m.h; y++ {
			row := src.Pix[y*src.Stride:]
			for x := 0; x < m.w; x++ {
				if row[x*4+3] != 0 {
					m.Set(x, y)
				}
			}
		}
	case *image.NRGBA64, *image.RGBA64:
		for y := 0; y < m.h; y++ {
			for x := 0; x < m.w; x++ {
				if _, _, _, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA(); a != 0 {
					m.Set(x, y)
				}
			}
		}
	case *image.YCbCr, *image.CMYK:
		// No alpha channel
		m.Fill()
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedFormat, img)
	}

	return m, nil
}

// Decode reads an image (png, gif, jpeg, bmp or webp) and converts it with FromAlpha.
func Decode(r io.Reader) (*Bitmask, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode mask: %w", err)
	}
	m, err := FromAlpha(img)
	if err != nil {
		return nil, fmt.Errorf("decode %s mask: %w", format, err)
	}
	return m, nil
}

// EncodeBMP writes m as a black and white bmp, set bits are white.
func (m *Bitmask) EncodeBMP(w io.Writer) error {
	img := image.NewNRGBA(image.Rect(0, 0, m.w, m.h))
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i+3] = 255
			if m.Get(x, y) {
				img.Pix[i], img.Pix[i+1], img.Pix[i+2] = 255, 255, 255
			}
		}
	}
	return bmp.Encode(w, img)
}
