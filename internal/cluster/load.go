package cluster

import (
	"context"
	"fmt"

	"subvec/internal/embedding"
)

// Load opens a trained model for clustering.
func Load(ctx context.Context, path string) (*embedding.Model, error) {
	model, err := embedding.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	return model, nil
}
