package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func encodeJPEG(w, h int) []byte {
	var buf bytes.Buffer
	jpeg.Encode(&buf, solid(w, h, color.RGBA{200, 120, 0, 255}), &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func encodePNG(w, h int) []byte {
	var buf bytes.Buffer
	png.Encode(&buf, solid(w, h, color.RGBA{0, 80, 200, 255}))
	return buf.Bytes()
}

func TestProcessFormats(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"jpeg", encodeJPEG(120, 80)},
		{"png", encodePNG(80, 120)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			photo, err := Process(bytes.NewReader(tt.data))
			if err != nil {
				t.Fatalf("Process: %v", err)
			}
			if photo.MIME != "image/jpeg" {
				t.Errorf("expected image/jpeg output, got %s", photo.MIME)
			}
			if len(photo.Data) == 0 {
				t.Error("expected non-empty data")
			}
			if photo.ETag != ETag(photo.Data) {
				t.Errorf("etag %s does not match data", photo.ETag)
			}
		})
	}
}

func TestProcessFitsLargePhoto(t *testing.T) {
	photo, err := Process(bytes.NewReader(encodeJPEG(2048, 1024)))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if photo.Width != MaxDimension || photo.Height != MaxDimension/2 {
		t.Errorf("expected %dx%d, got %dx%d", MaxDimension, MaxDimension/2, photo.Width, photo.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(photo.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if b := img.Bounds(); b.Dx() != photo.Width || b.Dy() != photo.Height {
		t.Errorf("encoded size %dx%d differs from reported %dx%d", b.Dx(), b.Dy(), photo.Width, photo.Height)
	}
}

func TestProcessKeepsSmallPhoto(t *testing.T) {
	photo, err := Process(bytes.NewReader(encodePNG(40, 30)))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if photo.Width != 40 || photo.Height != 30 {
		t.Errorf("small photo should not be resized: got %dx%d", photo.Width, photo.Height)
	}
}

func TestProcessRejectsOtherFormats(t *testing.T) {
	for _, data := range [][]byte{[]byte("not an image"), []byte("GIF89a......")} {
		_, err := Process(bytes.NewReader(data))
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Process(%q) error = %v, want ErrUnsupportedFormat", data, err)
		}
	}
}

func TestETagStable(t *testing.T) {
	a := ETag([]byte("cargo"))
	b := ETag([]byte("cargo"))
	c := ETag([]byte("cargo!"))
	if a != b {
		t.Errorf("same input gave different etags: %s vs %s", a, b)
	}
	if a == c {
		t.Error("different input gave the same etag")
	}
	if len(a) != 34 {
		t.Errorf("expected quoted 32-char hex etag, got %s", a)
	}
}
