package classifier

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ClassifyBatch classifies inputs against one rule set using at most workers
// goroutines. Results keep the order of inputs.
func (c *Classifier) ClassifyBatch(ctx context.Context, setID string, inputs []string, workers int) ([]Result, error) {
	if _, ok := c.sets[setID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRuleSet, setID)
	}
	if workers < 1 {
		workers = 1
	}

	out := make([]Result, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range inputs {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := c.Classify(setID, inputs[i])
			if err != nil {
				return err
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// gctx luôn bị cancel sau Wait, nên kiểm tra ctx gốc
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.log.Debug("batch classified",
		zap.String("set", setID),
		zap.Int("inputs", len(inputs)),
		zap.Int("workers", workers))
	return out, nil
}
