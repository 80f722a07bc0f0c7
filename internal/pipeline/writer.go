package pipeline

import (
	"fmt"
	"os"

	"github.com/ppiankov/veritas/internal/model"
)

// RecordWriter appends verification records to the output corpus. The format
// is fixed: per question one R (raw answer), one A (extracted answer), one C
// (correctness) line, then one E line per linked entity. Error records carry
// only R and A lines.
type RecordWriter struct {
	file *os.File
}

// NewRecordWriter opens the output file for appending
func NewRecordWriter(path string) (*RecordWriter, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open output: %w", err)
	}
	return &RecordWriter{file: file}, nil
}

// Write appends one record
func (w *RecordWriter) Write(rec *model.VerificationRecord) error {
	if _, err := fmt.Fprintf(w.file, "%s\tR\"%s\"\n", rec.QuestionID, rec.RawAnswer); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	if _, err := fmt.Fprintf(w.file, "%s\tA\"%s\"\n", rec.QuestionID, rec.Answer); err != nil {
		return fmt.Errorf("write record: %w", err)
	}

	if rec.Empty {
		// Empty-response errors end after the A line
		return nil
	}

	if _, err := fmt.Fprintf(w.file, "%s\tC\"%s\"\n", rec.QuestionID, rec.Verdict); err != nil {
		return fmt.Errorf("write record: %w", err)
	}

	for _, e := range rec.Entities {
		if _, err := fmt.Fprintf(w.file, "%s\tE\"%s\"\t\"%s\"\n", rec.QuestionID, e.Mention, e.URL); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	return nil
}

// Close closes the underlying file
func (w *RecordWriter) Close() error {
	return w.file.Close()
}
