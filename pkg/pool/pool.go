// Package pool runs bounded-concurrency fetches over a candidate set.
//
// A fixed number of workers drains a shared jobs channel and appends to a
// results channel; those two channels are the only state crossing worker
// boundaries. Every candidate yields exactly one FetchResult, failed or not.
package pool

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"leadharvest/models"
	"leadharvest/pkg/fetcher"
)

// FetchResult is the outcome of probing one candidate. Consumed once by the
// extractor and then discarded.
type FetchResult struct {
	Candidate  models.CandidateHost
	Body       []byte
	StatusCode int
	Latency    time.Duration
	Err        error
	Reason     string
}

// OK reports whether the fetch produced a payload.
func (r FetchResult) OK() bool { return r.Err == nil }

// Getter issues one fetch. Satisfied by *fetcher.Fetcher.
type Getter interface {
	Get(ctx context.Context, rawURL string) ([]byte, int, error)
}

type Pool struct {
	fetcher Getter
	workers int
	delay   time.Duration
	logger  *slog.Logger
}

// New builds a pool of workers sharing one fetcher. delay is applied between
// a single worker's successive requests, not globally.
func New(logger *slog.Logger, f Getter, workers int, delay time.Duration) *Pool {
	return &Pool{fetcher: f, workers: workers, delay: delay, logger: logger}
}

// Run fetches every candidate and blocks until all results are in. Result
// order does not match submission order. Cancelling ctx stops new fetches;
// unfetched candidates are recorded as failed, never dropped.
func (p *Pool) Run(ctx context.Context, candidates []models.CandidateHost) []FetchResult {
	jobs := make(chan models.CandidateHost, len(candidates))
	results := make(chan FetchResult, len(candidates))

	var wg sync.WaitGroup
	for w := 1; w <= p.workers; w++ {
		wg.Add(1)
		go p.worker(ctx, w, &wg, jobs, results)
	}

	for _, cand := range candidates {
		jobs <- cand
	}
	close(jobs)

	wg.Wait()
	close(results)

	out := make([]FetchResult, 0, len(candidates))
	for result := range results {
		out = append(out, result)
	}
	return out
}

func (p *Pool) worker(ctx context.Context, id int, wg *sync.WaitGroup, jobs <-chan models.CandidateHost, results chan<- FetchResult) {
	defer wg.Done()
	first := true
	for cand := range jobs {
		if !first && p.delay > 0 {
			select {
			case <-time.After(p.delay):
			case <-ctx.Done():
			}
		}
		first = false

		if ctx.Err() != nil {
			results <- FetchResult{Candidate: cand, Err: ctx.Err(), Reason: "cancelled"}
			continue
		}

		result := p.fetchOne(ctx, id, cand)
		results <- result
	}
}

// fetchOne issues the GET, retrying exactly once on a transient failure.
func (p *Pool) fetchOne(ctx context.Context, id int, cand models.CandidateHost) FetchResult {
	start := time.Now()
	p.logger.Info("Worker fetching candidate", "worker_id", id, "hostname", cand.Hostname)

	body, status, err := p.fetcher.Get(ctx, cand.URL())
	if err != nil && fetcher.IsTransient(err) && ctx.Err() == nil {
		p.logger.Warn("Transient fetch error, retrying once", "worker_id", id, "hostname", cand.Hostname, "reason", fetcher.Reason(err))
		body, status, err = p.fetcher.Get(ctx, cand.URL())
	}

	result := FetchResult{
		Candidate:  cand,
		Body:       body,
		StatusCode: status,
		Latency:    time.Since(start),
		Err:        err,
	}
	if err != nil {
		result.Reason = fetcher.Reason(err)
		result.Body = nil
		p.logger.Warn("Candidate fetch failed", "worker_id", id, "hostname", cand.Hostname, "reason", result.Reason)
	}
	return result
}
