package types

type Transcript struct {
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

type Word struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Word  string  `json:"word"`
}

// Candidate is a highlight as proposed by a strategy, before truncation.
type Candidate struct {
	Start   float64 `json:"start"`
	Content string  `json:"content"`
	End     float64 `json:"end"`
}

// Result is the highlight handed back to callers, in whole seconds.
// The zero value is the "no highlight selected" outcome of a cancelled
// manual selection.
type Result struct {
	Start   int
	End     int
	Content string
}

func (r Result) Cancelled() bool { return r.Start == 0 && r.End == 0 }

func (r Result) Duration() int { return r.End - r.Start }

type Manifest struct {
	ID         string `json:"id"`
	Input      string `json:"input"`
	Mode       string `json:"mode"`
	Selection  *Clip  `json:"selection,omitempty"`
	Cancelled  bool   `json:"cancelled"`
	Degenerate bool   `json:"degenerate"`
	CreatedAt  string `json:"created_at"`
}

type Clip struct {
	StartSec int    `json:"start_sec"`
	EndSec   int    `json:"end_sec"`
	Duration int    `json:"duration_sec"`
	Content  string `json:"content,omitempty"`
}
