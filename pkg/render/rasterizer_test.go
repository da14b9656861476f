package render

import (
	"testing"

	"github.com/taigrr/trophy/pkg/math3d"
)

// wireMesh implements MeshRenderer (and optionally BoundedMeshRenderer) for
// wireframe-overlay tests.
type wireMesh struct {
	vertices []math3d.Vec3
	faces    [][3]int
	bounded  bool
	min, max math3d.Vec3
}

func (m *wireMesh) VertexCount() int   { return len(m.vertices) }
func (m *wireMesh) TriangleCount() int { return len(m.faces) }
func (m *wireMesh) GetFace(i int) [3]int {
	return m.faces[i]
}
func (m *wireMesh) GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2) {
	return m.vertices[i], math3d.V3(0, 0, 1), math3d.V2(0, 0)
}

type boundedWireMesh struct{ *wireMesh }

func (m boundedWireMesh) GetBounds() (min, max math3d.Vec3) { return m.min, m.max }

func triangleMesh() *wireMesh {
	return &wireMesh{
		vertices: []math3d.Vec3{
			math3d.V3(-1, -1, 0),
			math3d.V3(1, -1, 0),
			math3d.V3(0, 1, 0),
		},
		faces: [][3]int{{0, 1, 2}},
	}
}

func testRasterizer(w, h int) (*Rasterizer, *Framebuffer) {
	fb := NewFramebuffer(w, h)
	cam := NewCamera()
	cam.SetPosition(math3d.V3(0, 0, 10))
	cam.LookAt(math3d.Zero3())
	cam.SetAspectRatio(float64(w) / float64(h))
	return NewRasterizer(cam, fb), fb
}

func countLitPixels(fb *Framebuffer) int {
	n := 0
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.GetPixel(x, y)
			if c.R > 0 || c.G > 0 || c.B > 0 {
				n++
			}
		}
	}
	return n
}

func TestDrawMeshWireframeDrawsLines(t *testing.T) {
	r, fb := testRasterizer(100, 100)
	fb.Clear(RGB(0, 0, 0))

	r.DrawMeshWireframe(triangleMesh(), math3d.Identity(), RGB(0, 255, 0))

	if countLitPixels(fb) == 0 {
		t.Error("DrawMeshWireframe should draw visible line pixels")
	}
}

func TestDrawMeshWireframeCullsOutOfFrustum(t *testing.T) {
	r, fb := testRasterizer(100, 100)
	fb.Clear(RGB(0, 0, 0))

	mesh := boundedWireMesh{triangleMesh()}
	mesh.min, mesh.max = math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1)

	// Far behind the camera, well outside the frustum.
	transform := math3d.Translate(math3d.V3(0, 0, 1000))
	r.DrawMeshWireframe(mesh, transform, RGB(0, 255, 0))

	if r.CullingStats.MeshesCulled == 0 {
		t.Error("expected the far-away bounded mesh to be culled")
	}
	if countLitPixels(fb) != 0 {
		t.Error("a culled mesh should draw no pixels")
	}
}

func TestDrawMeshWireframeUnboundedNeverCulled(t *testing.T) {
	r, _ := testRasterizer(100, 100)

	transform := math3d.Translate(math3d.V3(0, 0, 1000))
	r.DrawMeshWireframe(triangleMesh(), transform, RGB(0, 255, 0))

	if r.CullingStats.MeshesTested != 0 {
		t.Error("a mesh with no GetBounds should never be tested for culling")
	}
}

func TestRasterizerFrustumCaching(t *testing.T) {
	r, _ := testRasterizer(100, 100)

	f1 := r.GetFrustum()
	f2 := r.GetFrustum()
	if f1.Planes[0] != f2.Planes[0] {
		t.Error("frustum should be cached between calls without invalidation")
	}

	r.InvalidateFrustum()
	r.UpdateFrustum()
}
