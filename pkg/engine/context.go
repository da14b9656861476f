// Package engine ties together scene traversal, shading, clipping, and the
// worker pool into the per-frame RenderingContext façade.
package engine

import (
	"github.com/taigrr/trophy/pkg/math3d"
	"github.com/taigrr/trophy/pkg/render"
	"github.com/taigrr/trophy/pkg/scene"
	"github.com/taigrr/trophy/pkg/shader"
)

const stripHeight = 16

// drawCall is one object's post-clip triangles plus the resolved
// per-triangle fragment function, collapsed into an explicit triangle
// slice since Go slices already give contiguous, shareable ranges
// without a separate start/end index pair into a shared buffer.
type drawCall struct {
	triangles  [][3]render.Vertex
	shade      render.FragmentFunc
	cull       render.CullMode
	texW, texH int
}

// RenderingContext is the per-frame façade: Clear, Draw(scene), Present.
// Internally it owns the color/depth/AA buffers, the worker pool, and the
// per-frame shader arena.
type RenderingContext struct {
	Width, Height             int
	renderWidth, renderHeight int
	ssaaFactor                int

	RasterMode     render.RasterMode
	AAMode         render.AAMode
	MipmapsEnabled bool
	ClearColor     render.ColorF

	colorBuffer *render.RenderBuffer[render.ColorF] // output resolution, 1 sample
	aaBuffer    *render.RenderBuffer[render.ColorF] // render resolution, 1 or 4 samples
	depthBuffer *render.RenderBuffer[float64]       // same shape as aaBuffer

	drawCalls []drawCall
	arena     *shader.Arena
	pool      *WorkerPool
	strips    []render.Rect
}

// NewRenderingContext allocates a context at the given output resolution
// backed by threadCount worker goroutines.
func NewRenderingContext(width, height, threadCount int) *RenderingContext {
	c := &RenderingContext{
		Width:          width,
		Height:         height,
		RasterMode:     render.RasterHalfspace,
		AAMode:         render.AAOff,
		MipmapsEnabled: true,
		arena:          &shader.Arena{},
		pool:           NewWorkerPool(threadCount),
	}
	c.rebuildBuffers()
	return c
}

// SetRasterizationMode selects scanline or half-space rasterization.
func (c *RenderingContext) SetRasterizationMode(m render.RasterMode) {
	c.RasterMode = m
	c.reconcileAAMode()
}

// SetAntiAliasingMode selects the anti-aliasing strategy. MSAA is only
// valid with half-space rasterization; pairing it with scanline falls
// back to AAOff. The fallback is applied by reconcileAAMode, which this
// setter calls and which also reallocates the buffers for the new mode.
func (c *RenderingContext) SetAntiAliasingMode(m render.AAMode) {
	c.AAMode = m
	c.reconcileAAMode()
}

func (c *RenderingContext) reconcileAAMode() {
	if c.AAMode == render.AAMSAA4x && c.RasterMode != render.RasterHalfspace {
		c.AAMode = render.AAOff
	}
	c.rebuildBuffers()
}

// SetMipmapsEnabled toggles analytic mip-level sampling globally; when
// false, every shader samples mip level 0 regardless of derivative math.
func (c *RenderingContext) SetMipmapsEnabled(enabled bool) {
	c.MipmapsEnabled = enabled
}

func (c *RenderingContext) rebuildBuffers() {
	samples := 1
	factor := 1
	switch c.AAMode {
	case render.AAMSAA4x:
		samples = 4
	case render.AASSAA2x:
		factor = 2
	case render.AASSAA4x:
		factor = 4
	}
	c.ssaaFactor = factor
	c.renderWidth = c.Width * factor
	c.renderHeight = c.Height * factor

	c.colorBuffer = render.NewRenderBuffer[render.ColorF](c.Width, c.Height, 1)
	c.aaBuffer = render.NewRenderBuffer[render.ColorF](c.renderWidth, c.renderHeight, samples)
	c.depthBuffer = render.NewRenderBuffer[float64](c.renderWidth, c.renderHeight, samples)

	c.strips = c.strips[:0]
	for y := 0; y < c.renderHeight; y += stripHeight {
		end := y + stripHeight
		if end > c.renderHeight {
			end = c.renderHeight
		}
		c.strips = append(c.strips, render.Rect{MinX: 0, MinY: y, MaxX: c.renderWidth, MaxY: end})
	}
}

// Clear resets the color and/or depth buffers. Depth clears to 0 so that
// the "larger 1/w wins" depth convention treats an empty pixel as
// infinitely far away.
func (c *RenderingContext) Clear(colorBuffer, depthBuffer bool) {
	if colorBuffer {
		c.aaBuffer.Fill(c.ClearColor)
	}
	if depthBuffer {
		c.depthBuffer.Fill(0)
	}
}

// Draw culls scene objects against the camera frustum, transforms and
// clips each surviving object's triangles, and rasterizes every draw call
// across the worker pool strip by strip.
func (c *RenderingContext) Draw(sc *scene.Scene) {
	c.arena.Reset()
	c.drawCalls = c.drawCalls[:0]

	cam := sc.Camera
	frustum := cam.GetFrustum()
	vp := cam.ViewProjectionMatrix()

	for _, obj := range sc.Objects {
		sphere := obj.WorldBoundingSphere()
		if sphere.Radius > 0 && !frustum.IntersectsSphere(sphere.Center, sphere.Radius) {
			continue
		}
		if obj.Mesh == nil || obj.Shader == nil {
			continue
		}

		modelMatrix := obj.Transform.Matrix()
		normalMatrix := obj.Transform.InverseMatrix().Transpose()

		sh := obj.Shader.CloneInto(c.arena)
		sh.Prepare(shader.PrepareContext{
			ModelMatrix:    modelMatrix,
			ViewProjMatrix: vp,
			NormalMatrix:   normalMatrix,
			EyePos:         cam.Position,
			EyeDir:         cam.Forward(),
			Texture:        obj.Texture,
			Lights:         sc.Lights,
		})

		cull := render.CullNone
		if obj.BackfaceCullingEnabled {
			cull = render.CullBack
		}

		dc := drawCall{cull: cull, shade: makeFragmentFunc(sh, c.MipmapsEnabled)}
		if obj.Texture != nil {
			dc.texW, dc.texH = obj.Texture.Width, obj.Texture.Height
		}

		for _, face := range obj.Mesh.Faces {
			var tri [3]render.Vertex
			for i, vi := range face.V {
				mv := obj.Mesh.Vertices[vi]
				in := render.Vertex{
					Position: math3d.V4FromV3(mv.Position, 1),
					Normal:   mv.Normal,
					UV:       mv.UV,
					WorldPos: mv.Position,
				}
				tri[i] = sh.Vertex(in)
			}

			clipped := render.ClipNearFar(tri)
			if len(clipped) < 3 {
				continue
			}
			render.PerspectiveDivideAndViewport(clipped, c.renderWidth, c.renderHeight)
			clipped = render.ClipScreen(clipped, c.renderWidth, c.renderHeight)
			dc.triangles = render.FanTriangulate(clipped, dc.triangles)
		}

		if len(dc.triangles) > 0 {
			c.drawCalls = append(c.drawCalls, dc)
		}
	}

	tasks := make([]func(), len(c.strips))
	for i, strip := range c.strips {
		strip := strip
		tasks[i] = func() { c.rasterizeStrip(strip) }
	}
	c.pool.Run(tasks)
}

func (c *RenderingContext) rasterizeStrip(strip render.Rect) {
	for _, dc := range c.drawCalls {
		for _, tri := range dc.triangles {
			if c.AAMode == render.AAMSAA4x {
				render.RasterizeHalfspaceMSAA(c.aaBuffer, c.depthBuffer, strip, dc.cull, tri, dc.texW, dc.texH, dc.shade)
				continue
			}
			if c.RasterMode == render.RasterScanline {
				render.RasterizeScanline(c.aaBuffer, c.depthBuffer, strip, dc.cull, tri, dc.texW, dc.texH, dc.shade)
			} else {
				render.RasterizeHalfspace(c.aaBuffer, c.depthBuffer, strip, dc.cull, tri, dc.texW, dc.texH, dc.shade)
			}
		}
	}

	switch c.AAMode {
	case render.AAMSAA4x:
		render.ResolveMSAA(c.aaBuffer, c.colorBuffer, outputStrip(strip, 1))
	case render.AASSAA2x, render.AASSAA4x:
		render.ResolveSSAA(c.aaBuffer, c.colorBuffer, outputStrip(strip, c.ssaaFactor), c.ssaaFactor)
	default:
		copyStrip(c.aaBuffer, c.colorBuffer, strip)
	}
}

func outputStrip(renderStrip render.Rect, factor int) render.Rect {
	return render.Rect{
		MinX: renderStrip.MinX / factor,
		MinY: renderStrip.MinY / factor,
		MaxX: renderStrip.MaxX / factor,
		MaxY: renderStrip.MaxY / factor,
	}
}

func copyStrip(src, dst *render.RenderBuffer[render.ColorF], strip render.Rect) {
	for y := strip.MinY; y < strip.MaxY; y++ {
		for x := strip.MinX; x < strip.MaxX; x++ {
			*dst.Sample(x, y, 0) = *src.Sample(x, y, 0)
		}
	}
}

// makeFragmentFunc resolves a shader's Fragment method into the
// render.FragmentFunc the rasterizer kernels expect, looked up once per
// draw call rather than dispatched virtually per pixel. mipmapsEnabled
// forces mip level 0 when the engine-wide toggle is off.
func makeFragmentFunc(sh shader.Shader, mipmapsEnabled bool) render.FragmentFunc {
	return func(v render.Vertex, mipLevel float64) (render.ColorF, bool) {
		if !mipmapsEnabled {
			mipLevel = 0
		}
		return sh.Fragment(v, mipLevel)
	}
}

// Present returns the resolved output-resolution color buffer as 8-bit
// colors, row-major, ready to blit to a terminal framebuffer (see
// pkg/render/terminal.go).
func (c *RenderingContext) Present() []render.Color {
	out := make([]render.Color, c.Width*c.Height)
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			out[y*c.Width+x] = c.colorBuffer.Get(x, y)[0].ToColor()
		}
	}
	return out
}

// Close stops the worker pool. Must be called once the context is no
// longer in use.
func (c *RenderingContext) Close() {
	c.pool.Close()
}
