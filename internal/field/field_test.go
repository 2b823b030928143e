package field

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueUnmarshal(t *testing.T) {
	var f Field

	require.NoError(t, json.Unmarshal([]byte(`{"type":"text","value":"Alice"}`), &f))
	require.Equal(t, Value("Alice"), f.Value)
	require.False(t, f.Value.IsEmpty())

	require.NoError(t, json.Unmarshal([]byte(`{"type":"radio","value":true}`), &f))
	require.True(t, f.Value.IsTrue())

	require.NoError(t, json.Unmarshal([]byte(`{"type":"radio","value":false}`), &f))
	require.True(t, f.Value.IsEmpty())
	require.False(t, f.Value.IsTrue())

	require.NoError(t, json.Unmarshal([]byte(`{"type":"text","value":null}`), &f))
	require.True(t, f.Value.IsEmpty())

	require.Error(t, json.Unmarshal([]byte(`{"type":"text","value":[1]}`), &f))
}

func TestFieldValidate(t *testing.T) {
	good := Field{ID: "f1", Type: TypeText, Width: 10, Height: 10, Page: 1}
	require.NoError(t, good.Validate())

	bad := good
	bad.Type = "checkbox"
	require.Error(t, bad.Validate())

	bad = good
	bad.Width = 0
	require.Error(t, bad.Validate())

	bad = good
	bad.Page = 0
	require.Error(t, bad.Validate())
}

func pngDataURI(t *testing.T, w, h int) Value {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.Black)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return Value("data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()))
}

func TestDecodeImagePNG(t *testing.T) {
	img, err := DecodeImage(pngDataURI(t, 400, 200), 0)
	require.NoError(t, err)
	require.Equal(t, FormatPNG, img.Format)
	require.Equal(t, 400, img.Width)
	require.Equal(t, 200, img.Height)
}

func TestDecodeImageJPEG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, src, nil))

	// bare base64, no data-URI prefix
	img, err := DecodeImage(Value(base64.StdEncoding.EncodeToString(buf.Bytes())), 0)
	require.NoError(t, err)
	require.Equal(t, FormatJPEG, img.Format)
	require.Equal(t, 8, img.Width)
	require.Equal(t, 4, img.Height)
}

func TestDecodeImageErrors(t *testing.T) {
	_, err := DecodeImage("data:image/png;base64,!!!not-base64!!!", 0)
	require.ErrorIs(t, err, ErrBadImagePayload)

	// valid base64, not an image
	_, err = DecodeImage(Value(base64.StdEncoding.EncodeToString([]byte("hello"))), 0)
	require.ErrorIs(t, err, ErrBadImagePayload)

	// over the configured ceiling
	_, err = DecodeImage(pngDataURI(t, 64, 64), 16)
	require.ErrorIs(t, err, ErrBadImagePayload)
}
