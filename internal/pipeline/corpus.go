package pipeline

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/veritas/internal/model"
)

// questionPrefix marks corpus lines carrying a question
const questionPrefix = "question-"

// ReadQuestions reads the tab-delimited corpus: one `question-<n>\t<text>`
// per line, any other line ignored. Input order is preserved.
func ReadQuestions(path string) ([]model.Question, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer func() { _ = file.Close() }()

	var questions []model.Question

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		if !strings.HasPrefix(line, questionPrefix) {
			continue
		}

		id, text, found := strings.Cut(line, "\t")
		if !found {
			continue
		}

		questions = append(questions, model.Question{
			ID:   id,
			Text: strings.TrimRight(text, "\n"),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan corpus: %w", err)
	}

	return questions, nil
}
