package render

import "testing"

func approxEqualColorF(a, b ColorF, eps float64) bool {
	d := func(x, y float64) float64 {
		if x > y {
			return x - y
		}
		return y - x
	}
	return d(a.R, b.R) < eps && d(a.G, b.G) < eps && d(a.B, b.B) < eps
}

func TestResolveMSAAAveragesSamples(t *testing.T) {
	src := NewRenderBuffer[ColorF](1, 1, 4)
	*src.Sample(0, 0, 0) = ColorF{R: 1}
	*src.Sample(0, 0, 1) = ColorF{R: 0}
	*src.Sample(0, 0, 2) = ColorF{R: 1}
	*src.Sample(0, 0, 3) = ColorF{R: 0}

	out := NewRenderBuffer[ColorF](1, 1, 1)
	ResolveMSAA(src, out, Rect{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1})

	got := *out.Sample(0, 0, 0)
	if !approxEqualColorF(got, ColorF{R: 0.5}, 1e-9) {
		t.Errorf("resolved = %+v, want R=0.5", got)
	}
}

func TestResolveMSAAOnlyTouchesStrip(t *testing.T) {
	src := NewRenderBuffer[ColorF](2, 2, 4)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			for s := 0; s < 4; s++ {
				*src.Sample(x, y, s) = ColorF{R: 1, G: 1, B: 1}
			}
		}
	}
	out := NewRenderBuffer[ColorF](2, 2, 1)
	out.Fill(ColorF{}) // pre-cleared to black

	ResolveMSAA(src, out, Rect{MinX: 0, MinY: 0, MaxX: 2, MaxY: 1})

	if got := *out.Sample(0, 0, 0); got.R != 1 {
		t.Errorf("row 0 should be resolved to white, got %+v", got)
	}
	if got := *out.Sample(0, 1, 0); got.R != 0 {
		t.Errorf("row 1 is outside the strip and should remain untouched (black), got %+v", got)
	}
}

func TestResolveSSAABoxAverages(t *testing.T) {
	// A 2x2 render-resolution block feeding one output pixel.
	src := NewRenderBuffer[ColorF](2, 2, 1)
	*src.Sample(0, 0, 0) = ColorF{R: 1}
	*src.Sample(1, 0, 0) = ColorF{R: 1}
	*src.Sample(0, 1, 0) = ColorF{R: 0}
	*src.Sample(1, 1, 0) = ColorF{R: 0}

	out := NewRenderBuffer[ColorF](1, 1, 1)
	ResolveSSAA(src, out, Rect{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}, 2)

	got := *out.Sample(0, 0, 0)
	if !approxEqualColorF(got, ColorF{R: 0.5}, 1e-9) {
		t.Errorf("resolved = %+v, want R=0.5", got)
	}
}

func TestResolveSSAA4xFactor(t *testing.T) {
	src := NewRenderBuffer[ColorF](4, 4, 1)
	for i := range src.Raw() {
		src.Raw()[i] = ColorF{R: 1, G: 1, B: 1, A: 1}
	}
	out := NewRenderBuffer[ColorF](1, 1, 1)
	ResolveSSAA(src, out, Rect{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}, 4)

	got := *out.Sample(0, 0, 0)
	if !approxEqualColorF(got, ColorF{R: 1, G: 1, B: 1, A: 1}, 1e-9) {
		t.Errorf("uniform source should resolve to the same uniform color, got %+v", got)
	}
}
