package engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/trophy/pkg/models"
	"github.com/taigrr/trophy/pkg/render"
)

// AssetRequest names one mesh/texture pair to load for a scene object.
type AssetRequest struct {
	Name      string
	MeshPath  string
	TexPath   string
	BuildMips bool
}

// AssetResult is the decoded mesh and texture for one AssetRequest.
type AssetResult struct {
	Name    string
	Mesh    *models.Mesh
	Texture *render.Texture
}

// LoadAssetsParallel decodes every request's mesh and texture concurrently
// via errgroup, returning results in the same order as requests. This is
// a startup-only concern — asset decoding, not per-frame rasterization —
// so it uses errgroup rather than the frame worker pool in worker.go,
// which exists specifically for the strip-partitioned render barrier.
func LoadAssetsParallel(ctx context.Context, requests []AssetRequest) ([]AssetResult, error) {
	results := make([]AssetResult, len(requests))

	g, ctx := errgroup.WithContext(ctx)
	for i, req := range requests {
		i, req := i, req
		g.Go(func() error {
			mesh, err := models.LoadGLB(req.MeshPath)
			if err != nil {
				return fmt.Errorf("loading mesh %q for %q: %w", req.MeshPath, req.Name, err)
			}

			tex, err := render.LoadTexture(req.TexPath)
			if err != nil {
				return fmt.Errorf("loading texture %q for %q: %w", req.TexPath, req.Name, err)
			}
			if req.BuildMips {
				tex.BuildMipChain()
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			results[i] = AssetResult{Name: req.Name, Mesh: mesh, Texture: tex}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
