// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/sassoftware/viya-pdf-content/logger"
	"golang.org/x/sync/semaphore"
)

// Processor defines the contract for parsing a batch of decoded
// content streams.
type Processor interface {
	ParseAll(ctx context.Context, streams [][]byte) ([][]Value, error)
}

// ParserStrategy defines how to parse a single stream. Different
// strategies handle errors differently (strict vs. best-effort).
type ParserStrategy interface {
	ParseStream(ctx context.Context, data []byte) ([]Value, error)
}

// StrictParser enforces strict parsing.
// If any stream fails, the entire batch fails.
type StrictParser struct {
	MaxDepth int
}

func (s *StrictParser) ParseStream(ctx context.Context, data []byte) ([]Value, error) {
	p := NewContentParser(data)
	p.MaxDepth = s.MaxDepth
	var objs []Value
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		obj, err := p.Next()
		if err == io.EOF {
			return objs, nil
		}
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
}

// BestEffortParser tolerates errors.
// If a stream turns malformed partway through, it keeps the objects
// parsed up to that point and drops the rest.
type BestEffortParser struct {
	MaxDepth int
}

func (b *BestEffortParser) ParseStream(ctx context.Context, data []byte) ([]Value, error) {
	p := NewContentParser(data)
	p.MaxDepth = b.MaxDepth
	var objs []Value
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		obj, err := p.Next()
		if err == io.EOF {
			return objs, nil
		}
		if err != nil {
			// In best-effort mode, keep the salvageable prefix.
			logger.Debug("BestEffortParser: stream malformed, keeping parsed prefix", "objects", len(objs), "err", err, true)
			return objs, nil
		}
		objs = append(objs, obj)
	}
}

// processor manages batch parsing with concurrency control and
// delegates stream-level work to the chosen ParserStrategy.
type processor struct {
	cfg    *Config
	sem    *semaphore.Weighted
	parser ParserStrategy
}

// NewProcessor validates the config and creates a new processor.
// Selects the correct ParserStrategy (Strict or BestEffort).
func NewProcessor(cfg *Config) *processor {
	//Select ParserStrategy
	var parser ParserStrategy
	switch cfg.ParsingMode {
	case Strict:
		parser = &StrictParser{MaxDepth: cfg.MaxNestingDepth}
	case BestEffort:
		parser = &BestEffortParser{MaxDepth: cfg.MaxNestingDepth}
	}

	//Validate the config object
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	//Set the logger function
	if cfg.Logger != nil {
		logger.SetLogger(cfg.Logger)
	}

	logger.Debug(fmt.Sprintf("Processor initialized: parsing_mode=%v, max_concurrent_streams=%d, workers_per_batch=%d",
		cfg.ParsingMode, cfg.MaxConcurrentStreams, cfg.WorkersPerBatch), true)

	return &processor{
		cfg:    cfg,
		sem:    semaphore.NewWeighted(int64(cfg.MaxConcurrentStreams)),
		parser: parser,
	}
}

// ParseAll parses every stream in the batch and returns their object
// sequences in batch order.
func (p *processor) ParseAll(ctx context.Context, streams [][]byte) ([][]Value, error) {
	logger.Debug(fmt.Sprintf("Starting batch parse: streams=%d", len(streams)), true)

	if err := p.acquireSlot(ctx); err != nil {
		logger.Debug(fmt.Sprintf("Failed to acquire slot: err=%v", err), true)
		return nil, err
	}
	defer p.sem.Release(1)

	total := len(streams)
	if total == 0 {
		logger.Debug("Empty batch, nothing to parse", true)
		return nil, nil
	}

	numWorkers := p.adjustWorkerCount(p.cfg.WorkersPerBatch)
	logger.Debug(fmt.Sprintf("Starting workers: count=%d", numWorkers), true)

	jobs, results := make(chan int, total), make(chan streamResult, total)

	var wg sync.WaitGroup
	p.startWorkers(ctx, streams, jobs, results, numWorkers, &wg)
	p.feedJobs(ctx, total, jobs)
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([][]Value, total)
	for res := range results {
		if res.err != nil {
			logger.Debug(fmt.Sprintf("Strict mode error — stopping batch: stream=%d err=%v", res.index, res.err))
			return nil, fmt.Errorf("strict mode failed on stream %d: %w", res.index, res.err)
		}
		out[res.index] = res.objs
	}

	logger.Debug(fmt.Sprintf("Batch parse completed: streams=%d", total), true)
	return out, nil
}

// StreamResult carries one parsed stream out of ParseAllAsStream.
type StreamResult struct {
	Index   int
	Objects []Value
	Err     error
}

// ParseAllAsStream parses the batch and delivers results on a channel
// in batch order, emitting each stream as soon as all earlier streams
// have been delivered. In strict mode the first failure is sent and
// the channel is closed.
func (p *processor) ParseAllAsStream(ctx context.Context, streams [][]byte) (<-chan StreamResult, error) {
	logger.Debug(fmt.Sprintf("Starting streaming batch parse: streams=%d", len(streams)), true)

	if err := p.acquireSlot(ctx); err != nil {
		logger.Debug(fmt.Sprintf("Failed to acquire slot for stream: err=%v", err), true)
		return nil, err
	}

	total := len(streams)
	if total == 0 {
		p.sem.Release(1)
		ch := make(chan StreamResult)
		close(ch)
		return ch, nil
	}

	numWorkers := p.adjustWorkerCount(p.cfg.WorkersPerBatch)
	jobs, results := make(chan int, total), make(chan streamResult, total)

	var wg sync.WaitGroup
	p.startWorkers(ctx, streams, jobs, results, numWorkers, &wg)
	p.feedJobs(ctx, total, jobs)
	close(jobs)

	outCh := make(chan StreamResult)

	go func() {
		defer p.sem.Release(1)
		defer close(outCh)
		go func() {
			wg.Wait()
			close(results)
		}()
		p.emitInOrder(results, outCh)
		logger.Debug("Streaming batch parse completed", true)
	}()

	return outCh, nil
}

func (p *processor) emitInOrder(results chan streamResult, outCh chan StreamResult) {
	buffer := make(map[int]streamResult)
	next := 0
	for res := range results {
		if res.err != nil {
			logger.Debug(fmt.Sprintf("Strict mode error — stopping streaming: stream=%d err=%v", res.index, res.err), true)
			outCh <- StreamResult{Index: res.index, Err: res.err}
			return
		}
		buffer[res.index] = res

		// Emit in-order streams immediately
		for {
			r, ok := buffer[next]
			if !ok {
				break
			}
			outCh <- StreamResult{Index: r.index, Objects: r.objs}
			delete(buffer, next)
			next++
		}
	}
}

func (p *processor) acquireSlot(ctx context.Context) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquire slot: %w", err)
	}
	logger.Debug("Slot acquired successfully", true)
	return nil
}

func (p *processor) adjustWorkerCount(maxWorkers int) int {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if maxWorkers > runtime.NumCPU()/2 {
		maxWorkers = runtime.NumCPU()
	}
	logger.Debug(fmt.Sprintf("Adjusted worker count: workers=%d", maxWorkers), true)
	return maxWorkers
}

type streamResult struct {
	index int
	objs  []Value
	err   error
}

func (p *processor) startWorkers(ctx context.Context, streams [][]byte, jobs <-chan int, results chan<- streamResult, numWorkers int, wg *sync.WaitGroup) {
	logger.Debug(fmt.Sprintf("Spawning workers: num_workers=%d", numWorkers), true)
	for w := 1; w <= numWorkers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Debug(fmt.Sprintf("Worker started: id=%d", id), true)
			for i := range jobs {
				objs, err := p.parseStreamWithRetries(ctx, streams[i])
				results <- streamResult{i, objs, err}
				if err != nil {
					logger.Debug(fmt.Sprintf("Worker: stream parse error: worker_id=%d stream=%d err=%v", id, i, err), true)
				} else {
					logger.Debug(fmt.Sprintf("Worker: stream parsed successfully: worker_id=%d stream=%d objects=%d", id, i, len(objs)), true)
				}
			}
			logger.Debug(fmt.Sprintf("Worker finished: id=%d", id), true)
		}(w)
	}
}

func (p *processor) parseStreamWithRetries(ctx context.Context, data []byte) ([]Value, error) {
	var objs []Value
	var err error
	for attempt := 0; attempt <= p.cfg.MaxRetries; attempt++ {
		ctxStream, cancel := context.WithTimeout(ctx, p.cfg.WorkerTimeout)
		objs, err = p.parser.ParseStream(ctxStream, data)
		cancel()
		if err == nil || !errors.Is(err, context.DeadlineExceeded) {
			// syntax errors are deterministic; only timeouts retry
			break
		}
		logger.Debug(fmt.Sprintf("Retrying stream parse: attempt=%d err=%v", attempt, err), true)
	}
	return objs, err
}

func (p *processor) feedJobs(ctx context.Context, total int, jobs chan<- int) error {
	for i := 0; i < total; i++ {
		select {
		case <-ctx.Done():
			logger.Debug("Context cancelled while feeding jobs", true)
			return ctx.Err()
		case jobs <- i:
			logger.Debug(fmt.Sprintf("Job queued: stream=%d", i), true)
		}
	}
	logger.Debug(fmt.Sprintf("All jobs queued: total_streams=%d", total), true)
	return nil
}

// CanonicalizeAll parses every stream in the batch and re-serializes
// each one to its canonical byte form.
func (p *processor) CanonicalizeAll(ctx context.Context, streams [][]byte) ([][]byte, error) {
	parsed, err := p.ParseAll(ctx, streams)
	if err != nil {
		return nil, err
	}
	out := make([][]byte, len(parsed))
	for i, objs := range parsed {
		out[i], err = SerializeAll(objs)
		if err != nil {
			return nil, fmt.Errorf("canonicalize stream %d: %w", i, err)
		}
	}
	return out, nil
}
