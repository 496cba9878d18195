package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"

	"github.com/tsawler/obsmatrix/model"
)

// DefaultVertexModel is the Gemini model used when none is configured.
const DefaultVertexModel = "gemini-1.5-flash"

const vertexSystemPrompt = "You are a reviewer's assistant for engineering design reports. You decide whether a paragraph taken from a technical review document is an observation: a remark that asks the designer to correct, complete, justify or clarify something. You must output your response as a single JSON object."

const vertexUserPrompt = `Classify the paragraph below.

Return a JSON object with exactly two keys:
- "label": "observacion" if the paragraph is an observation, otherwise "No observacion".
- "score": your confidence in the label, a number between 0 and 1.

Paragraph:
`

// Generator produces model content. *genai.GenerativeModel implements it.
type Generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Vertex classifies texts with a Gemini model on Vertex AI.
type Vertex struct {
	model  Generator
	client *genai.Client
}

// NewVertex creates a classifier backed by modelName in projectID/region.
// The classifier should be closed when no longer needed.
func NewVertex(ctx context.Context, projectID, region, modelName string) (*Vertex, error) {
	if projectID == "" || region == "" {
		return nil, fmt.Errorf("NewVertex: projectID and region cannot be empty")
	}
	if modelName == "" {
		modelName = DefaultVertexModel
	}

	client, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	m := client.GenerativeModel(modelName)
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(vertexSystemPrompt)},
	}
	m.GenerationConfig = genai.GenerationConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.0),
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"label": {Type: genai.TypeString, Enum: []string{string(model.LabelObservation), string(model.LabelOther)}},
				"score": {Type: genai.TypeNumber},
			},
			Required: []string{"label", "score"},
		},
	}

	return &Vertex{model: m, client: client}, nil
}

// NewVertexWithGenerator creates a classifier around an existing model.
func NewVertexWithGenerator(g Generator) *Vertex {
	return &Vertex{model: g}
}

// Close releases the underlying client.
func (v *Vertex) Close() error {
	if v.client != nil {
		return v.client.Close()
	}
	return nil
}

// Classify implements Classifier.
func (v *Vertex) Classify(ctx context.Context, s string) (Prediction, error) {
	resp, err := v.model.GenerateContent(ctx, genai.Text(vertexUserPrompt+s))
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to generate classification from gemini: %w", err)
	}
	return parseVerdict(resp)
}

var refusalPhrases = []string{
	"i am unable to",
	"i cannot fulfill",
	"i cannot answer",
	"as a large language model",
}

type verdict struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// parseVerdict extracts the prediction from a model response.
func parseVerdict(resp *genai.GenerateContentResponse) (Prediction, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return Prediction{}, fmt.Errorf("%w: no candidates", ErrRefusal)
	}

	cand := resp.Candidates[0]
	if cand.FinishReason == genai.FinishReasonSafety || cand.FinishReason == genai.FinishReasonRecitation {
		return Prediction{}, fmt.Errorf("%w: finish reason %v", ErrRefusal, cand.FinishReason)
	}
	if cand.Content == nil {
		return Prediction{}, fmt.Errorf("%w: empty content", ErrRefusal)
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	raw := strings.TrimSpace(sb.String())
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSpace(strings.TrimSuffix(raw, "```"))

	lower := strings.ToLower(raw)
	for _, phrase := range refusalPhrases {
		if strings.Contains(lower, phrase) {
			return Prediction{}, fmt.Errorf("%w: %q", ErrRefusal, raw)
		}
	}

	var v verdict
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return Prediction{}, fmt.Errorf("decode classification %q: %w", raw, err)
	}

	label := model.LabelOther
	if model.Label(v.Label).IsObservation() {
		label = model.LabelObservation
	}
	score := min(max(v.Score, 0), 1)
	return Prediction{Label: label, Score: score}, nil
}
