package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/accounthub/accounts-api/internal/metrics"
)

const (
	defaultHashWorkers = 4
	hashQueueBuffer    = 64
)

type hashResult struct {
	hash string
	err  error
}

type hashJob struct {
	plaintext string
	done      chan hashResult
}

// BcryptHasher hashes passwords on a fixed set of workers so that a
// burst of registrations cannot monopolize every core. Comparison runs
// on the calling goroutine: each request performs at most one compare,
// and bounding it would only add queueing latency to logins.
type BcryptHasher struct {
	jobs chan hashJob
	cost int
}

// NewBcryptHasher starts numWorkers hashing goroutines. If numWorkers
// <= 0, defaultHashWorkers is used; a cost outside bcrypt's valid range
// falls back to bcrypt.DefaultCost.
func NewBcryptHasher(numWorkers, cost int) *BcryptHasher {
	if numWorkers <= 0 {
		numWorkers = defaultHashWorkers
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	h := &BcryptHasher{
		jobs: make(chan hashJob, hashQueueBuffer),
		cost: cost,
	}
	for i := 0; i < numWorkers; i++ {
		go h.runWorker()
	}
	return h
}

// Hash enqueues plaintext for hashing and waits for the result. The
// wait is interrupted when ctx is cancelled.
func (h *BcryptHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	start := time.Now()
	job := hashJob{plaintext: plaintext, done: make(chan hashResult, 1)}

	metrics.HashQueueDepth.Inc()
	select {
	case h.jobs <- job:
	case <-ctx.Done():
		metrics.HashQueueDepth.Dec()
		return "", ctx.Err()
	}

	select {
	case res := <-job.done:
		metrics.HashDuration.Observe(time.Since(start).Seconds())
		return res.hash, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Compare returns nil iff plaintext matches the hash's origin.
func (h *BcryptHasher) Compare(hash, plaintext string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
}

// Close stops all workers. Hash must not be called after Close.
func (h *BcryptHasher) Close() {
	close(h.jobs)
}

func (h *BcryptHasher) runWorker() {
	for job := range h.jobs {
		metrics.HashQueueDepth.Dec()
		raw, err := bcrypt.GenerateFromPassword([]byte(job.plaintext), h.cost)
		job.done <- hashResult{hash: string(raw), err: err}
	}
}
