package imaging

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const maxParallel = 4

// CompressAll compresses images concurrently and returns them in input
// order. Empty entries are dropped.
func CompressAll(ctx context.Context, images []string, p Profile) ([]string, error) {
	inputs := make([]string, 0, len(images))
	for _, img := range images {
		if img != "" {
			inputs = append(inputs, img)
		}
	}

	out := make([]string, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i, img := range inputs {
		g.Go(func() error {
			compressed, err := Compress(gctx, img, p)
			if err != nil {
				return err
			}
			out[i] = compressed
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
