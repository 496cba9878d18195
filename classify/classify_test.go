package classify

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tsawler/obsmatrix/model"
)

func TestWithThreshold(t *testing.T) {
	tests := []struct {
		name string
		in   Prediction
		want model.Label
	}{
		{"above", Prediction{model.LabelObservation, 0.9}, model.LabelObservation},
		{"equal", Prediction{model.LabelObservation, 0.85}, model.LabelObservation},
		{"below", Prediction{model.LabelObservation, 0.84}, model.LabelOther},
		{"other untouched", Prediction{model.LabelOther, 0.1}, model.LabelOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := WithThreshold(Func(func(context.Context, string) (Prediction, error) {
				return tt.in, nil
			}), DefaultThreshold)

			got, err := c.Classify(context.Background(), "x")
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			if got.Label != tt.want || got.Score != tt.in.Score {
				t.Errorf("Classify() = %+v, want label %q score %v", got, tt.want, tt.in.Score)
			}
		})
	}
}

func TestWithThreshold_Error(t *testing.T) {
	boom := errors.New("boom")
	c := WithThreshold(Func(func(context.Context, string) (Prediction, error) {
		return Prediction{}, boom
	}), 0.5)
	if _, err := c.Classify(context.Background(), "x"); !errors.Is(err, boom) {
		t.Errorf("Classify() error = %v, want boom", err)
	}
}

func TestAll_KeepsOrder(t *testing.T) {
	var inFlight, peak atomic.Int32
	c := Func(func(ctx context.Context, s string) (Prediction, error) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		return Prediction{Label: model.Label(s), Score: 1}, nil
	})

	texts := make([]string, 20)
	for i := range texts {
		texts[i] = fmt.Sprintf("t%02d", i)
	}

	got, err := All(context.Background(), c, texts, 3)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	for i, p := range got {
		if string(p.Label) != texts[i] {
			t.Errorf("prediction %d = %q, want %q", i, p.Label, texts[i])
		}
	}
	if peak.Load() > 3 {
		t.Errorf("peak concurrency = %d, want <= 3", peak.Load())
	}
}

func TestAll_Error(t *testing.T) {
	boom := errors.New("quota exceeded")
	c := Func(func(ctx context.Context, s string) (Prediction, error) {
		if s == "bad" {
			return Prediction{}, boom
		}
		return Prediction{Label: model.LabelOther}, nil
	})

	got, err := All(context.Background(), c, []string{"ok", "bad", "ok"}, 1)
	if !errors.Is(err, boom) {
		t.Errorf("All() error = %v, want quota exceeded", err)
	}
	if got != nil {
		t.Errorf("All() = %v, want nil on error", got)
	}
}

func TestAll_Empty(t *testing.T) {
	got, err := All(context.Background(), NewKeyword(nil), nil, 4)
	if err != nil || len(got) != 0 {
		t.Errorf("All(nil) = %v, %v", got, err)
	}
}
