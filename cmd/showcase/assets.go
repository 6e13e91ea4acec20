package main

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/showcase/pkg/config"
	"github.com/taigrr/showcase/pkg/gallery"
	"github.com/taigrr/showcase/pkg/models"
	"github.com/taigrr/showcase/pkg/render"
	"github.com/taigrr/showcase/pkg/scene"
)

// meshLimit caps concurrent GLB decodes; gallery decodes have their own.
const meshLimit = 2

// asset is one finished load handed to the frame loop.
type asset struct {
	model   int // scene.Hero for the background model
	mesh    *models.Mesh
	images  []*render.Texture
	gallery bool
	err     error
}

func (a asset) apply(s *scene.Scene) {
	if a.gallery {
		s.AttachImages(a.model, a.images)
		return
	}
	s.AttachMesh(a.model, a.mesh, a.err)
}

// loadAssets decodes every mesh and gallery of cfg in the background and
// sends each result to out as it finishes. Load failures travel with the
// result; only cancellation stops the loaders early.
func loadAssets(ctx context.Context, cfg *config.Config, log *zap.Logger, out chan<- asset) error {
	meshes, ctx := errgroup.WithContext(ctx)
	meshes.SetLimit(meshLimit)

	send := func(a asset) error {
		select {
		case out <- a:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	loadMesh := func(index int, mc config.ModelConfig) {
		meshes.Go(func() error {
			if mc.File == "" {
				return send(asset{model: index})
			}
			path := cfg.Resolve(mc.File)
			log.Debug("loading model", zap.String("model", mc.Name), zap.String("path", path))
			mesh, err := models.LoadGLB(path)
			return send(asset{model: index, mesh: mesh, err: err})
		})
	}

	// The first model is the one shown first
	for i, mc := range cfg.Models {
		loadMesh(i, mc)
	}
	if cfg.Hero != nil {
		loadMesh(scene.Hero, *cfg.Hero)
	}

	var galleries errgroup.Group
	loader := gallery.NewLoader(log)
	for i, mc := range cfg.Models {
		if len(mc.Images) == 0 {
			continue
		}
		paths := make([]string, len(mc.Images))
		for j, p := range mc.Images {
			paths[j] = cfg.Resolve(p)
		}
		galleries.Go(func() error {
			images, err := loader.Load(ctx, paths)
			if err != nil {
				return err
			}
			return send(asset{model: i, images: images, gallery: true})
		})
	}

	err := meshes.Wait()
	if gerr := galleries.Wait(); err == nil {
		err = gerr
	}
	return err
}
