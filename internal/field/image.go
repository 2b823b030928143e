package field

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"
)

// Raster image formats accepted as signature/image payloads.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
)

var ErrBadImagePayload = errors.New("bad image payload")

// ImageData is a decoded signature/image payload: the raw raster bytes plus
// the intrinsic pixel dimensions needed for aspect fitting.
type ImageData struct {
	Format string
	Data   []byte
	Width  int
	Height int
}

// DecodeImage parses a base64 image value, either a full data URI
// ("data:image/png;base64,...") or bare base64. The format is detected from
// the data-URI prefix; anything that is not PNG is treated as JPEG, matching
// the editor which only ever produces those two. maxBytes bounds the decoded
// size; zero means unbounded.
func DecodeImage(v Value, maxBytes int) (*ImageData, error) {
	s := string(v)
	format := FormatJPEG
	if strings.HasPrefix(s, "data:image/png") {
		format = FormatPNG
	}
	if i := strings.Index(s, "base64,"); i >= 0 {
		s = s[i+len("base64,"):]
	}

	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImagePayload, err)
	}
	if maxBytes > 0 && len(raw) > maxBytes {
		return nil, fmt.Errorf("%w: image is %d bytes, limit is %d", ErrBadImagePayload, len(raw), maxBytes)
	}

	cfg, name, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImagePayload, err)
	}
	// trust the actual bytes over the data-URI prefix
	switch name {
	case "png":
		format = FormatPNG
	case "jpeg":
		format = FormatJPEG
	default:
		return nil, fmt.Errorf("%w: unsupported raster format %q", ErrBadImagePayload, name)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: degenerate image %dx%d", ErrBadImagePayload, cfg.Width, cfg.Height)
	}

	return &ImageData{Format: format, Data: raw, Width: cfg.Width, Height: cfg.Height}, nil
}
