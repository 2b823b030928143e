package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func relErr(a, b float64) float64 {
	if b == 0 {
		return math.Abs(a)
	}
	return math.Abs(a-b) / math.Abs(b)
}

func TestPixelPointRoundTrip(t *testing.T) {
	scales := []float64{0.5, 1, 1.25, 2, 3.7}
	values := []float64{0, 1, 12.5, 100, 612, 10000.25}
	for _, s := range scales {
		for _, v := range values {
			got := PointsToPixels(PixelsToPoints(v, s), s)
			require.LessOrEqual(t, relErr(got, v), 1e-9, "scale=%v value=%v", s, v)
		}
	}
}

func TestBoxRoundTrip(t *testing.T) {
	const pageHeight = 792.0
	boxes := []Box{
		{X: 0, Y: 0, Width: 40, Height: 30},
		{X: 100, Y: 100, Width: 200, Height: 40},
		{X: 13.5, Y: 700.25, Width: 1, Height: 1},
	}
	for _, scale := range []float64{0.75, 1, 1.5} {
		for _, b := range boxes {
			doc := ToDocumentSpace(b, scale, pageHeight)
			back := FromDocumentSpace(doc, scale, pageHeight)
			require.LessOrEqual(t, relErr(back.X, b.X), 1e-9)
			require.LessOrEqual(t, math.Abs(back.Y-b.Y), 1e-9*math.Max(1, math.Abs(b.Y)))
			require.LessOrEqual(t, relErr(back.Width, b.Width), 1e-9)
			require.LessOrEqual(t, relErr(back.Height, b.Height), 1e-9)
		}
	}
}

func TestTopToBottom(t *testing.T) {
	// the scenario from the field compositor: a 200x40 box at (100,100) on a
	// 612x792 page lands at y = 792-100-40 = 652
	require.InDelta(t, 652.0, TopToBottom(100, 40, 792), 1e-12)
}

func TestFitWideImage(t *testing.T) {
	// 400x200 image into a 150x150 box: fitted 150x75, centered vertically
	got, err := Fit(400, 200, Box{X: 10, Y: 20, Width: 150, Height: 150})
	require.NoError(t, err)
	require.InDelta(t, 150.0, got.Width, 1e-12)
	require.InDelta(t, 75.0, got.Height, 1e-12)
	require.InDelta(t, 10.0, got.X, 1e-12)
	require.InDelta(t, 20.0+37.5, got.Y, 1e-12)
}

func TestFitTallImage(t *testing.T) {
	got, err := Fit(100, 400, Box{X: 0, Y: 0, Width: 200, Height: 100})
	require.NoError(t, err)
	require.InDelta(t, 100.0, got.Height, 1e-12)
	require.InDelta(t, 25.0, got.Width, 1e-12)
	require.InDelta(t, 87.5, got.X, 1e-12)
	require.InDelta(t, 0.0, got.Y, 1e-12)
}

func TestFitContainmentAndRatio(t *testing.T) {
	cases := []struct {
		iw, ih float64
		box    Box
	}{
		{400, 200, Box{0, 0, 150, 150}},
		{200, 400, Box{5, 5, 150, 150}},
		{1, 1, Box{0, 0, 612, 792}},
		{1920, 1080, Box{50, 60, 70, 80}},
		{33, 47, Box{0, 0, 33, 47}},
	}
	for _, c := range cases {
		got, err := Fit(c.iw, c.ih, c.box)
		require.NoError(t, err)

		// containment
		require.GreaterOrEqual(t, got.X, c.box.X-1e-9)
		require.GreaterOrEqual(t, got.Y, c.box.Y-1e-9)
		require.LessOrEqual(t, got.X+got.Width, c.box.X+c.box.Width+1e-9)
		require.LessOrEqual(t, got.Y+got.Height, c.box.Y+c.box.Height+1e-9)

		// aspect ratio preserved
		require.LessOrEqual(t, relErr(got.Width/got.Height, c.iw/c.ih), 1e-9)

		// centered: margins on the slack axis are equal
		mx1 := got.X - c.box.X
		mx2 := c.box.X + c.box.Width - (got.X + got.Width)
		my1 := got.Y - c.box.Y
		my2 := c.box.Y + c.box.Height - (got.Y + got.Height)
		require.InDelta(t, mx1, mx2, 1e-9)
		require.InDelta(t, my1, my2, 1e-9)
	}
}

func TestFitDegenerate(t *testing.T) {
	_, err := Fit(100, 0, Box{0, 0, 10, 10})
	require.ErrorIs(t, err, ErrInvalidGeometry)
	_, err = Fit(100, 50, Box{0, 0, 10, 0})
	require.ErrorIs(t, err, ErrInvalidGeometry)
	_, err = Fit(0, 50, Box{0, 0, 10, 10})
	require.ErrorIs(t, err, ErrInvalidGeometry)
}
