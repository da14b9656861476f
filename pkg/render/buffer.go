package render

// RenderBuffer is a contiguous sample buffer of width*height*samples
// elements. Samples for a given pixel are stored contiguously (tile-local),
// so a resolve pass can walk one pixel's samples without striding across
// the whole buffer.
type RenderBuffer[T any] struct {
	Width, Height int
	Samples       int // samples per pixel: 4 for MSAA, otherwise 1 (SSAA renders into a 1-sample buffer at 2x or 4x the output resolution, not per-pixel sub-samples)
	data          []T
}

// NewRenderBuffer allocates a buffer sized for width*height pixels at the
// given sample count.
func NewRenderBuffer[T any](width, height, samples int) *RenderBuffer[T] {
	if samples < 1 {
		samples = 1
	}
	return &RenderBuffer[T]{
		Width:   width,
		Height:  height,
		Samples: samples,
		data:    make([]T, width*height*samples),
	}
}

// Resize reallocates the buffer for new dimensions, discarding contents.
func (b *RenderBuffer[T]) Resize(width, height, samples int) {
	if samples < 1 {
		samples = 1
	}
	b.Width, b.Height, b.Samples = width, height, samples
	n := width * height * samples
	if cap(b.data) >= n {
		b.data = b.data[:n]
	} else {
		b.data = make([]T, n)
	}
}

// Fill sets every sample to v.
func (b *RenderBuffer[T]) Fill(v T) {
	for i := range b.data {
		b.data[i] = v
	}
}

// offset returns the base offset of pixel (x, y)'s sample block.
func (b *RenderBuffer[T]) offset(x, y int) int {
	return (y*b.Width + x) * b.Samples
}

// Sample returns a pointer to sample index i of pixel (x, y). In a
// 4-sample MSAA buffer, index i holds the sample taken at msaaOffsets[i]
// (a rotated grid); none of those samples lies at the pixel center.
func (b *RenderBuffer[T]) Sample(x, y, i int) *T {
	return &b.data[b.offset(x, y)+i]
}

// Get returns all samples for pixel (x, y) as a slice view (no copy).
func (b *RenderBuffer[T]) Get(x, y int) []T {
	o := b.offset(x, y)
	return b.data[o : o+b.Samples]
}

// Raw exposes the backing slice, e.g. for a bulk Fill-via-copy-doubling clear.
func (b *RenderBuffer[T]) Raw() []T {
	return b.data
}

// superSampleReciprocal returns the (0x10000+X-1)/X constant with which
// (n*recip)>>16 equals n/X for small non-negative n and X in {2, 4}, a
// multiply-and-shift stand-in for an integer division by X.
func superSampleReciprocal(x int) int {
	return (0x10000 + x - 1) / x
}

// SuperSampleOffset returns the linear sample index for sub-sample (sx, sy)
// within an X-by-X super-sample grid (X in {2, 4}), in row-major order:
// sy*X + sx, so the X*X sub-samples of one pixel map to 0..X*X-1.
func SuperSampleOffset(x, sx, sy int) int {
	return sy*x + sx
}
