package worker

import (
	"context"
	"sort"

	"github.com/ppiankov/veritas/internal/model"
)

// QuestionProcessor resolves a single question into a verification record.
// One question's failure never blocks the rest of the batch, so Process
// returns a record even on error paths.
type QuestionProcessor interface {
	Process(ctx context.Context, q model.Question) *model.VerificationRecord
}

// QuestionJob is one question scheduled on the pool
type QuestionJob struct {
	Seq       int // Position in the input file, used to restore output order
	Question  model.Question
	Processor QuestionProcessor
}

// Execute runs the full verification flow for the question
func (j *QuestionJob) Execute(ctx context.Context) Result {
	record := j.Processor.Process(ctx, j.Question)
	return &QuestionResult{Seq: j.Seq, Record: record}
}

// QuestionResult is the outcome of one question job
type QuestionResult struct {
	Seq    int
	Record *model.VerificationRecord
	Err    error
}

// GetError returns the job-level error, if any
func (r *QuestionResult) GetError() error {
	return r.Err
}

// BatchProcessor runs questions through a processor, in parallel when
// configured, while keeping records in input order.
type BatchProcessor struct {
	processor   QuestionProcessor
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(processor QuestionProcessor, concurrency int) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// Process resolves all questions and returns their records in input order
func (b *BatchProcessor) Process(ctx context.Context, questions []model.Question) []*model.VerificationRecord {
	if len(questions) == 0 {
		return []*model.VerificationRecord{}
	}

	if b.concurrency == 1 {
		// Sequential baseline: each question fully resolved before the next
		records := make([]*model.VerificationRecord, 0, len(questions))
		for _, q := range questions {
			records = append(records, b.processor.Process(ctx, q))
		}
		return records
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for i, q := range questions {
		pool.Submit(&QuestionJob{Seq: i, Question: q, Processor: b.processor})
	}

	results := pool.Wait()

	ordered := make([]*QuestionResult, 0, len(results))
	for _, r := range results {
		ordered = append(ordered, r.(*QuestionResult))
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Seq < ordered[j].Seq })

	records := make([]*model.VerificationRecord, 0, len(ordered))
	for _, r := range ordered {
		records = append(records, r.Record)
	}
	return records
}
