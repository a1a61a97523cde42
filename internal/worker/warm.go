package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Vectorizer is the subset of the similarity oracle cache warming needs.
type Vectorizer interface {
	Vector(ctx context.Context, text string) ([]float32, error)
}

// Warm embeds every text with bounded concurrency so the corpus vectors
// are cached before the first request arrives. Individual failures are
// logged and skipped; the affected texts are embedded lazily on first use
// instead.
func Warm(ctx context.Context, v Vectorizer, texts []string, concurrency int) {
	if concurrency <= 0 {
		concurrency = 4
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for text := range jobs {
				if _, err := v.Vector(ctx, text); err != nil {
					log.Warn().Err(err).Str("text", text).Msg("embedding warmup failed")
				}
			}
		}()
	}

	for _, text := range texts {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return
		case jobs <- text:
		}
	}
	close(jobs)
	wg.Wait()
}
