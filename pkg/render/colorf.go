package render

import "math"

// ColorF is a floating-point RGBA color used for the shading pipeline,
// where light contributions accumulate additively before a final clamp to
// 8-bit channels. Quantizing to Color (uint8) after every light would lose
// precision across several accumulated lights.
type ColorF struct {
	R, G, B, A float64
}

// ToColorF widens an 8-bit Color to [0,1]-normalized floats.
func ToColorF(c Color) ColorF {
	return ColorF{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

// ToColor narrows back to 8-bit, clamping each channel to [0,255].
func (c ColorF) ToColor() Color {
	clamp := func(v float64) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(math.Round(v * 255))
	}
	return Color{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}

// Add returns the component-wise sum (light accumulation).
func (c ColorF) Add(o ColorF) ColorF {
	return ColorF{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A}
}

// Scale returns the color scaled by a scalar intensity.
func (c ColorF) Scale(s float64) ColorF {
	return ColorF{c.R * s, c.G * s, c.B * s, c.A * s}
}

// Mul returns the component-wise product (texel * accumulated light).
func (c ColorF) Mul(o ColorF) ColorF {
	return ColorF{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}
