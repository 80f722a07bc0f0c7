package model

// Question is a single entry from the input corpus
type Question struct {
	ID   string `json:"id"`   // Identifier, format "question-<n>"
	Text string `json:"text"` // Raw question text
}

// AnswerType is the expected shape of an answer to a question
type AnswerType string

const (
	AnswerTypePolarity AnswerType = "YES/NO" // Expects a yes/no judgment
	AnswerTypeEntity   AnswerType = "ENTITY" // Expects a named entity
)

// Polarity is a yes/no judgment extracted from free text
type Polarity string

const (
	PolarityYes         Polarity = "yes"
	PolarityNo          Polarity = "no"
	PolarityUnparseable Polarity = "unparseable"
)
