package pngcore

// Pack converts the row-major pixel store into a tightly packed
// width*height*bytesPerPixel buffer suitable for handing to a GPU staging
// buffer, with channels in R, G, B, (A) order. Grounded on
// Image::PixelDataToBuffer in the original C++ implementation.
func (img *Image) Pack() []byte {
	channels := img.Format.channels()
	channelBytes := img.Format.channelBytes()
	pixelBytes := channels * channelBytes
	buf := make([]byte, img.Width*img.Height*pixelBytes)

	for i, px := range img.Pixels {
		base := i * pixelBytes
		writeChannel(buf, base, 0, channelBytes, px.R)
		writeChannel(buf, base, channelBytes, channelBytes, px.G)
		writeChannel(buf, base, 2*channelBytes, channelBytes, px.B)
		if channels == 4 {
			writeChannel(buf, base, 3*channelBytes, channelBytes, px.A)
		}
	}
	return buf
}

func writeChannel(buf []byte, base, offset, channelBytes int, v uint16) {
	if channelBytes == 2 {
		buf[base+offset] = byte(v)
		buf[base+offset+1] = byte(v >> 8)
		return
	}
	buf[base+offset] = byte(v)
}

// WithAlpha returns a copy of img promoted to the alpha-carrying variant of
// its format (RGB8->RGBA8, RGB16->RGBA16), with every pixel's alpha set to
// the channel's maximum value. It is the add_alpha_channel() collaborator
// helper of spec.md §6, for GPU platforms lacking a native 3-channel
// texture format; images already carrying alpha are returned unchanged.
// Grounded on Image::AddAlphaChannel in the original C++ implementation.
func (img *Image) WithAlpha() *Image {
	var newFormat PixelFormat
	var maxVal uint16
	switch img.Format {
	case RGB8:
		newFormat, maxVal = RGBA8, 0xFF
	case RGB16:
		newFormat, maxVal = RGBA16, 0xFFFF
	default:
		out := *img
		out.Pixels = append([]Pixel(nil), img.Pixels...)
		return &out
	}

	out := &Image{Width: img.Width, Height: img.Height, Format: newFormat, Pixels: make([]Pixel, len(img.Pixels))}
	for i, px := range img.Pixels {
		px.A = maxVal
		out.Pixels[i] = px
	}
	return out
}
