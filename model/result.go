package model

// Result is the wire form of one enriched paragraph
type Result struct {
	Page       int    `json:"page"`
	Text       string `json:"text"`
	Label      Label  `json:"label"`
	Category   string `json:"category,omitempty"`
	SourceRef  string `json:"source_ref"`
	Reconciled bool   `json:"reconciled"`
}

// Response is the payload returned for one document run
type Response struct {
	Results []Result `json:"results"`
}

// NewResponse converts paragraphs into a Response, preserving order.
func NewResponse(paragraphs []Paragraph) *Response {
	resp := &Response{Results: make([]Result, 0, len(paragraphs))}
	for _, p := range paragraphs {
		resp.Results = append(resp.Results, Result{
			Page:       p.Page,
			Text:       p.Text,
			Label:      p.Label,
			Category:   p.Category,
			SourceRef:  p.SourceRef,
			Reconciled: p.Reconciled,
		})
	}
	return resp
}

// Observations returns the results flagged as observations
func (r *Response) Observations() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Label.IsObservation() {
			out = append(out, res)
		}
	}
	return out
}

// ReconciledCount returns how many results were appended to a spreadsheet
func (r *Response) ReconciledCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Reconciled {
			n++
		}
	}
	return n
}
