package render

// ResolveMSAA averages the 4 MSAA samples of each pixel in the strip into
// out, which must be at output resolution (Samples == 1). Uncovered
// samples retain whatever the clear pass left them at, so a pixel grazed
// by a thin triangle blends toward the clear color rather than an
// arbitrary previous frame's content. Running this twice over an
// already-resolved (Samples==1) source is a no-op by construction since
// it only ever reads the Samples==4 buffer.
func ResolveMSAA(src *RenderBuffer[ColorF], out *RenderBuffer[ColorF], strip Rect) {
	for y := strip.MinY; y < strip.MaxY; y++ {
		for x := strip.MinX; x < strip.MaxX; x++ {
			samples := src.Get(x, y)
			var sum ColorF
			for _, s := range samples {
				sum = sum.Add(s)
			}
			*out.Sample(x, y, 0) = sum.Scale(1.0 / float64(len(samples)))
		}
	}
}

// ResolveSSAA box-averages an N-by-N block of real render-resolution
// pixels down to each output pixel, where N = factor (2 or 4). src must be
// factor*width by factor*height; out is at output resolution. strip is
// expressed in OUTPUT pixel rows, matching the worker partitioning scheme:
// the AA buffer is at render resolution, the final color buffer is at
// output resolution.
func ResolveSSAA(src *RenderBuffer[ColorF], out *RenderBuffer[ColorF], strip Rect, factor int) {
	n := float64(factor * factor)
	for y := strip.MinY; y < strip.MaxY; y++ {
		for x := strip.MinX; x < strip.MaxX; x++ {
			var sum ColorF
			baseX, baseY := x*factor, y*factor
			for sy := 0; sy < factor; sy++ {
				for sx := 0; sx < factor; sx++ {
					sum = sum.Add(*src.Sample(baseX+sx, baseY+sy, 0))
				}
			}
			*out.Sample(x, y, 0) = sum.Scale(1.0 / n)
		}
	}
}
