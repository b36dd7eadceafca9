package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"
)

const iconSize = 32

var (
	iconOnce sync.Once
	iconPNG  []byte
)

// pngIcon renders the tray glyph: two overlapping speech cards, blue over grey.
func pngIcon() []byte {
	iconOnce.Do(func() {
		img := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))
		back := color.NRGBA{R: 0x70, G: 0x70, B: 0x70, A: 0xff}
		front := color.NRGBA{R: 0x00, G: 0x78, B: 0xd4, A: 0xff}
		white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

		fill(img, image.Rect(2, 2, 20, 18), back)
		fill(img, image.Rect(12, 12, 30, 28), front)
		// text lines on the front card
		fill(img, image.Rect(15, 16, 27, 18), white)
		fill(img, image.Rect(15, 20, 27, 22), white)
		fill(img, image.Rect(15, 24, 23, 26), white)

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err == nil {
			iconPNG = buf.Bytes()
		}
	})
	return iconPNG
}

func fill(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// wrapICO embeds a PNG image in a single-entry ICO container.
func wrapICO(pngData []byte, size int) []byte {
	var b bytes.Buffer
	le16 := func(v uint16) { b.WriteByte(byte(v)); b.WriteByte(byte(v >> 8)) }
	le32 := func(v uint32) { le16(uint16(v)); le16(uint16(v >> 16)) }

	le16(0) // reserved
	le16(1) // type: icon
	le16(1) // image count

	dim := byte(size)
	if size >= 256 {
		dim = 0
	}
	b.WriteByte(dim)
	b.WriteByte(dim)
	b.WriteByte(0) // palette
	b.WriteByte(0) // reserved
	le16(1)        // color planes
	le16(32)       // bits per pixel
	le32(uint32(len(pngData)))
	le32(6 + 16) // image offset
	b.Write(pngData)
	return b.Bytes()
}
