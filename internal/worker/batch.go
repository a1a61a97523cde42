package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/mythwatch/mythwatch/internal/model"
)

// Classifier is the subset of the claim classifier batch mode needs.
type Classifier interface {
	Classify(ctx context.Context, text string) model.ClassificationResult
}

// BatchResult pairs one input claim with its verdict.
type BatchResult struct {
	Claim  string                     `json:"claim"`
	Result model.ClassificationResult `json:"result"`
}

// BatchProcessor classifies many claims concurrently while preserving
// input order in the output.
type BatchProcessor struct {
	classifier  Classifier
	concurrency int
}

// NewBatchProcessor creates a batch processor. Concurrency below one is
// clamped to one.
func NewBatchProcessor(classifier Classifier, concurrency int) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchProcessor{classifier: classifier, concurrency: concurrency}
}

// ProcessClaims classifies the given claims with bounded concurrency.
func (b *BatchProcessor) ProcessClaims(ctx context.Context, claims []string) []BatchResult {
	results := make([]BatchResult, len(claims))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < b.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = BatchResult{
					Claim:  claims[i],
					Result: b.classifier.Classify(ctx, claims[i]),
				}
			}
		}()
	}

	for i := range claims {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return results
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return results
}

// ReadClaimsFile reads one claim per line, skipping blanks and comments.
func ReadClaimsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open claims file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var claims []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		claims = append(claims, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read claims file: %w", err)
	}
	return claims, nil
}
