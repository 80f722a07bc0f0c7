package model

// Verdict is the correctness outcome for a question
type Verdict string

const (
	VerdictCorrect   Verdict = "correct"
	VerdictIncorrect Verdict = "incorrect"
	VerdictNA        Verdict = "N/A" // Irrecoverable failure, check not performed
)

// VerificationRecord is the per-question output of the pipeline
type VerificationRecord struct {
	QuestionID string         `json:"question_id"`
	RawAnswer  string         `json:"raw_answer"`          // Model output, verbatim
	Answer     string         `json:"answer"`              // Extracted polarity or entity label, or error text
	Verdict    Verdict        `json:"verdict"`             // Correctness outcome
	Entities   []LinkedEntity `json:"entities,omitempty"`  // Question entities first, then answer entities
	Fact       *Triplet       `json:"fact,omitempty"`      // Candidate fact that was checked
	Empty      bool           `json:"empty,omitempty"`     // Model produced no usable answer
	LinkProbe  []LinkStatus   `json:"link_probe,omitempty"` // Optional entity URL probe results
}

// LinkStatus is the result of probing a linked entity's article URL
type LinkStatus struct {
	URL          string `json:"url"`
	Label        string `json:"label"`
	IsAccessible bool   `json:"is_accessible"`
	StatusCode   int    `json:"status_code,omitempty"`
	LabelFound   bool   `json:"label_found"` // Canonical label appears in article text
	Error        string `json:"error,omitempty"`
}
