package render

import "math"

// sampleMipLevel fetches from a specific mip level: a nearest-texel fetch
// when FilterMode is FilterNearest, otherwise a bilinear four-tap
// interpolation (Bilinear, and each of Trilinear's two level fetches).
func (t *Texture) sampleMipLevel(u, v float64, level int) Color {
	if level < 0 {
		level = 0
	}
	if level >= len(t.mips) {
		level = len(t.mips) - 1
	}
	mm := t.mips[level]
	if t.FilterMode == FilterNearest {
		x := int(u * float64(mm.width))
		y := int(v * float64(mm.height))
		x = clampInt(x, 0, mm.width-1)
		y = clampInt(y, 0, mm.height-1)
		return mm.pixels[y*mm.width+x]
	}

	fx := u*float64(mm.width) - 0.5
	fy := v*float64(mm.height) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)
	x0c := clampInt(x0, 0, mm.width-1)
	x1c := clampInt(x0+1, 0, mm.width-1)
	y0c := clampInt(y0, 0, mm.height-1)
	y1c := clampInt(y0+1, 0, mm.height-1)

	c00 := mm.pixels[y0c*mm.width+x0c]
	c10 := mm.pixels[y0c*mm.width+x1c]
	c01 := mm.pixels[y1c*mm.width+x0c]
	c11 := mm.pixels[y1c*mm.width+x1c]

	top := lerpColor(c00, c10, tx)
	bot := lerpColor(c01, c11, tx)
	return lerpColor(top, bot, ty)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CalcMipLevel returns the analytic mip level for a fragment given the UV
// derivatives with respect to screen-space x and y (already divided through
// by the perspective 1/w, i.e. true texture-space derivatives), and the
// texture's pixel dimensions: level = 0.5*log2(max(|duv/dx|^2 scaled to
// texels, |duv/dy|^2 scaled to texels)).
func CalcMipLevel(duvdx, duvdy [2]float64, texWidth, texHeight int) float64 {
	dx0 := duvdx[0] * float64(texWidth)
	dx1 := duvdx[1] * float64(texHeight)
	dy0 := duvdy[0] * float64(texWidth)
	dy1 := duvdy[1] * float64(texHeight)

	d2x := dx0*dx0 + dx1*dx1
	d2y := dy0*dy0 + dy1*dy1
	maxD2 := math.Max(d2x, d2y)
	if maxD2 <= 0 {
		return 0
	}
	return 0.5 * math.Log2(maxD2)
}
