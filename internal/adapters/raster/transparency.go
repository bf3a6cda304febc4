package raster

import "image"

// opaquer is implemented by every image type in the standard library
type opaquer interface {
	Opaque() bool
}

// HasTransparency reports whether any pixel of img is not fully opaque.
//
// Paletted images count only palette entries that some pixel actually
// indexes, so a PNG that declares a transparent entry but never uses it is
// opaque. Models without an alpha channel (YCbCr, Gray, CMYK) are always
// opaque.
func HasTransparency(img image.Image) bool {
	switch m := img.(type) {
	case *image.Paletted:
		return palettedHasTransparency(m)
	case *image.YCbCr, *image.Gray, *image.Gray16, *image.CMYK:
		return false
	case opaquer:
		return !m.Opaque()
	}
	return false
}

func palettedHasTransparency(m *image.Paletted) bool {
	translucent := make([]bool, len(m.Palette))
	found := false
	for i, c := range m.Palette {
		if _, _, _, a := c.RGBA(); a < 0xffff {
			translucent[i] = true
			found = true
		}
	}
	if !found {
		return false
	}

	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := m.Pix[(y-b.Min.Y)*m.Stride : (y-b.Min.Y)*m.Stride+b.Dx()]
		for _, idx := range row {
			if int(idx) < len(translucent) && translucent[idx] {
				return true
			}
		}
	}
	return false
}
