package rtfdoc

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
)

// probeImage fills in width/height/bits-per-pixel for the accumulated
// bytes of a \pict destination by decoding just the image header, mirroring
// how golang.org/x/image's sibling codecs (bmp.DecodeConfig,
// tiff.DecodeConfig) are used for metadata-only decode rather than full
// pixel decode. WMF/EMF and anything DecodeConfig can't parse fall back to
// whatever the RTF \picwN/\pichN control words already supplied.
func probeImage(format ImageFormat, data []byte) (width, height, bpp int, ok bool) {
	r := bytes.NewReader(data)
	var cfg image.Config
	var err error

	switch format {
	case ImagePNG:
		cfg, err = png.DecodeConfig(r)
	case ImageJPEG:
		cfg, err = jpeg.DecodeConfig(r)
	case ImageBMP:
		cfg, err = bmp.DecodeConfig(r)
	default:
		return 0, 0, 0, false
	}
	if err != nil {
		return 0, 0, 0, false
	}
	return cfg.Width, cfg.Height, bitsPerPixel(cfg.ColorModel), true
}

func bitsPerPixel(model image.Model) int {
	switch model {
	case image.GrayModel:
		return 8
	case image.Gray16Model:
		return 16
	case image.CMYKModel:
		return 32
	case image.NRGBAModel, image.RGBAModel, image.NYCbCrAModel:
		return 32
	default:
		return 24
	}
}
