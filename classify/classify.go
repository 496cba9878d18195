package classify

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/obsmatrix/model"
)

// ErrRefusal is returned when a model declines to classify a text.
var ErrRefusal = errors.New("classify: model refused to answer")

// DefaultThreshold is the minimum score for a positive label.
const DefaultThreshold = 0.85

// Prediction is the outcome of classifying one text.
type Prediction struct {
	Label model.Label
	Score float64
}

// Classifier labels a text.
type Classifier interface {
	Classify(ctx context.Context, text string) (Prediction, error)
}

// Func adapts a function to a Classifier.
type Func func(ctx context.Context, text string) (Prediction, error)

// Classify implements Classifier.
func (f Func) Classify(ctx context.Context, text string) (Prediction, error) {
	return f(ctx, text)
}

type threshold struct {
	next Classifier
	min  float64
}

// WithThreshold wraps c so that an observation predicted with a score below
// min is relabeled model.LabelOther. The score is kept.
func WithThreshold(c Classifier, min float64) Classifier {
	return threshold{next: c, min: min}
}

func (t threshold) Classify(ctx context.Context, text string) (Prediction, error) {
	p, err := t.next.Classify(ctx, text)
	if err != nil {
		return p, err
	}
	if p.Label.IsObservation() && p.Score < t.min {
		p.Label = model.LabelOther
	}
	return p, nil
}

// All classifies texts with at most concurrency calls in flight and returns
// predictions in input order. The first error cancels the remaining calls.
func All(ctx context.Context, c Classifier, texts []string, concurrency int) ([]Prediction, error) {
	out := make([]Prediction, len(texts))

	eg, gctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		eg.SetLimit(concurrency)
	}

	for i, text := range texts {
		eg.Go(func() error {
			p, err := c.Classify(gctx, text)
			if err != nil {
				return fmt.Errorf("paragraph %d: %w", i, err)
			}
			out[i] = p
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
