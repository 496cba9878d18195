// Package classify decides whether a paragraph is an observation.
//
// A [Classifier] maps cleaned paragraph text to a [Prediction]: a label and
// a confidence score in [0, 1]. Implementations include a keyword scorer
// that needs no network access and a Gemini classifier on Vertex AI.
//
// [WithThreshold] demotes positive predictions whose score is below a
// minimum to [model.LabelOther], and [All] classifies a batch with bounded
// concurrency while keeping input order:
//
//	c := classify.WithThreshold(classify.NewKeyword(nil), 0.85)
//	predictions, err := classify.All(ctx, c, texts, 4)
package classify
