package classify

import (
	"context"
	"math"
	"strings"

	"github.com/tsawler/obsmatrix/model"
	"github.com/tsawler/obsmatrix/text"
)

// DefaultKeywords are phrases that mark a reviewer's request in cleaned
// Spanish review text.
var DefaultKeywords = []string{
	"se solicita",
	"solicita",
	"no cumple",
	"corregir",
	"revisar",
	"aclarar",
	"justificar",
	"complementar",
	"ajustar",
	"incluir",
	"verificar",
	"falta",
	"debe",
}

// Keyword scores texts by the number of distinct keywords they contain.
// One hit scores 0.9, two 0.99, and so on; no hit scores 0.
type Keyword struct {
	keywords []string
	cleaner  *text.Cleaner
}

// NewKeyword creates a keyword classifier. Keywords are cleaned the same way
// texts are; nil selects DefaultKeywords.
func NewKeyword(keywords []string) *Keyword {
	if keywords == nil {
		keywords = DefaultKeywords
	}
	k := &Keyword{cleaner: text.NewCleaner()}
	for _, kw := range keywords {
		if c := k.cleaner.Clean(kw); c != "" {
			k.keywords = append(k.keywords, c)
		}
	}
	return k
}

// Keywords returns the cleaned keywords
func (k *Keyword) Keywords() []string {
	return k.keywords
}

// Classify implements Classifier.
func (k *Keyword) Classify(ctx context.Context, s string) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}

	padded := " " + k.cleaner.Clean(s) + " "
	hits := 0
	for _, kw := range k.keywords {
		if strings.Contains(padded, " "+kw+" ") {
			hits++
		}
	}

	if hits == 0 {
		return Prediction{Label: model.LabelOther}, nil
	}
	return Prediction{
		Label: model.LabelObservation,
		Score: 1 - math.Pow(0.1, float64(hits)),
	}, nil
}
