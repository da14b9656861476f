package render

import (
	"testing"

	"github.com/taigrr/trophy/pkg/math3d"
)

func vtx(x, y, z, w float64) Vertex {
	return Vertex{Position: math3d.V4(x, y, z, w)}
}

func TestClipNearFarFullyInsideUnchanged(t *testing.T) {
	tri := [3]Vertex{
		vtx(-1, -1, 0, 1),
		vtx(1, -1, 0, 1),
		vtx(0, 1, 0, 1),
	}
	poly := ClipNearFar(tri)
	if len(poly) != 3 {
		t.Fatalf("fully-inside triangle should survive with 3 vertices, got %d", len(poly))
	}
}

func TestClipNearFarFullyBehindNearRejected(t *testing.T) {
	// z = -2w < -w for all three: entirely beyond the near plane.
	tri := [3]Vertex{
		vtx(-1, -1, -2, 1),
		vtx(1, -1, -2, 1),
		vtx(0, 1, -2, 1),
	}
	poly := ClipNearFar(tri)
	if len(poly) != 0 {
		t.Errorf("triangle entirely beyond the near plane should be fully clipped, got %d verts", len(poly))
	}
}

func TestClipNearFarStraddlingNearProducesPolygon(t *testing.T) {
	// One vertex behind the near plane (z < -w), two in front.
	tri := [3]Vertex{
		vtx(0, 0, -2, 1), // behind (z=-2 < -w=-1)
		vtx(1, -1, 0, 1), // in front (z=0 >= -w=-1)
		vtx(-1, -1, 0, 1),
	}
	poly := ClipNearFar(tri)
	if len(poly) < 3 {
		t.Fatalf("clipping one vertex off a triangle should leave a polygon with >= 3 vertices, got %d", len(poly))
	}
	for _, v := range poly {
		if v.Position.Z < -v.Position.W-1e-9 {
			t.Errorf("surviving vertex %+v is still beyond the near plane", v.Position)
		}
	}
}

func TestPerspectiveDivideAndViewportMapsCenterToMid(t *testing.T) {
	poly := []Vertex{vtx(0, 0, 0, 1)}
	PerspectiveDivideAndViewport(poly, 200, 100)

	if diff := poly[0].Position.X - 100; diff < -1e-9 || diff > 1e-9 {
		t.Errorf("NDC (0,0) should map to screen x=width/2=100, got %v", poly[0].Position.X)
	}
	if diff := poly[0].Position.Y - 50; diff < -1e-9 || diff > 1e-9 {
		t.Errorf("NDC (0,0) should map to screen y=height/2=50, got %v", poly[0].Position.Y)
	}
}

func TestPerspectiveDivideAndViewportFlipsY(t *testing.T) {
	poly := []Vertex{vtx(0, 1, 0, 1)} // NDC top
	PerspectiveDivideAndViewport(poly, 100, 100)

	if poly[0].Position.Y > 1 {
		t.Errorf("NDC y=+1 (top) should map near screen row 0, got %v", poly[0].Position.Y)
	}
}

func TestClipScreenClipsOutsideRect(t *testing.T) {
	// A triangle that spans from -10 to 110 in a 0..100 screen: straddles
	// every edge and must come back inside [0,100] on all sides.
	tri := []Vertex{
		vtx(-10, -10, 0, 1),
		vtx(110, -10, 0, 1),
		vtx(50, 110, 0, 1),
	}
	poly := ClipScreen(tri, 100, 100)
	if len(poly) < 3 {
		t.Fatalf("expected a surviving polygon, got %d vertices", len(poly))
	}
	for _, v := range poly {
		if v.Position.X < -1e-9 || v.Position.X > 100+1e-9 {
			t.Errorf("vertex X=%v outside [0,100]", v.Position.X)
		}
		if v.Position.Y < -1e-9 || v.Position.Y > 100+1e-9 {
			t.Errorf("vertex Y=%v outside [0,100]", v.Position.Y)
		}
	}
}

func TestClipScreenFullyOutsideRejected(t *testing.T) {
	tri := []Vertex{
		vtx(200, 200, 0, 1),
		vtx(300, 200, 0, 1),
		vtx(250, 300, 0, 1),
	}
	poly := ClipScreen(tri, 100, 100)
	if len(poly) != 0 {
		t.Errorf("triangle fully outside the screen rect should be fully clipped, got %d verts", len(poly))
	}
}

func TestFanTriangulateVertexCount(t *testing.T) {
	poly := make([]Vertex, 9)
	var tris [][3]Vertex
	tris = FanTriangulate(poly, tris)
	if len(tris) != 7 {
		t.Errorf("a 9-gon fan-triangulates into 7 triangles, got %d", len(tris))
	}
}

func TestFanTriangulateDegenerateInputs(t *testing.T) {
	for n := 0; n <= 2; n++ {
		poly := make([]Vertex, n)
		var tris [][3]Vertex
		tris = FanTriangulate(poly, tris)
		if len(tris) != 0 {
			t.Errorf("a %d-vertex polygon should produce no triangles, got %d", n, len(tris))
		}
	}
}
