// Package pipeline provides the bounded-concurrency fan-out primitives
// the analysis engine runs its batches on. Results always come back in
// input order regardless of completion order.
package pipeline

import (
	"context"
	"sync"
)

// Result wraps one stage output with its error and original position.
type Result[Out any] struct {
	Value Out
	Err   error
	Index int // position in the input slice
}

// Stage defines a concurrent processing stage.
type Stage[In, Out any] struct {
	Name        string
	Concurrency int // maximum number of concurrent workers
	Process     func(ctx context.Context, input In) (Out, error)
}

// RunStage executes the stage's Process function over all inputs with
// bounded concurrency. Results are returned in input order. Inputs not
// yet started when the context is cancelled carry the context error.
func RunStage[In, Out any](ctx context.Context, stage Stage[In, Out], inputs []In) []Result[Out] {
	if len(inputs) == 0 {
		return nil
	}

	concurrency := stage.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	if concurrency > len(inputs) {
		concurrency = len(inputs)
	}

	results := make([]Result[Out], len(inputs))
	sem := make(chan struct{}, concurrency)

	var wg sync.WaitGroup
	for i, input := range inputs {
		wg.Add(1)
		go func(idx int, in In) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[idx] = Result[Out]{Err: ctx.Err(), Index: idx}
				return
			}

			if ctx.Err() != nil {
				results[idx] = Result[Out]{Err: ctx.Err(), Index: idx}
				return
			}

			out, err := stage.Process(ctx, in)
			results[idx] = Result[Out]{Value: out, Err: err, Index: idx}
		}(i, input)
	}

	wg.Wait()
	return results
}

// Chunk splits items into consecutive slices of at most size elements.
// The returned slices alias the input; they are views, not copies.
func Chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 {
		size = len(items)
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}

// RunChunked runs the stage chunk by chunk so that cancellation takes
// effect on chunk boundaries: a cancelled context stops before the next
// chunk starts, and every remaining input carries the context error.
// Indexes in the returned results are global across all chunks.
func RunChunked[In, Out any](ctx context.Context, stage Stage[In, Out], inputs []In, chunkSize int) []Result[Out] {
	if len(inputs) == 0 {
		return nil
	}

	results := make([]Result[Out], 0, len(inputs))
	offset := 0

	for _, chunk := range Chunk(inputs, chunkSize) {
		if err := ctx.Err(); err != nil {
			for i := offset; i < len(inputs); i++ {
				results = append(results, Result[Out]{Err: err, Index: i})
			}
			return results
		}

		for _, r := range RunStage(ctx, stage, chunk) {
			r.Index += offset
			results = append(results, r)
		}
		offset += len(chunk)
	}

	return results
}
