package rpc

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrNoHealthyRPC is returned when no healthy RPC endpoint is available.
var ErrNoHealthyRPC = errors.New("no healthy RPC endpoint available")

// Algorithm defines how an RPC endpoint is selected.
type Algorithm string

const (
	AlgorithmFastest    Algorithm = "fastest"
	AlgorithmRoundRobin Algorithm = "round-robin"
	AlgorithmFailover   Algorithm = "failover"

	// Discard nodes more than this many blocks behind the best.
	staleBlockThreshold = 3
	// Cache winner for this duration before re-benchmarking.
	cacheTTL = 5 * time.Minute
)

// ParseAlgorithm validates a configured algorithm name. Empty means fastest.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch a := Algorithm(s); a {
	case "":
		return AlgorithmFastest, nil
	case AlgorithmFastest, AlgorithmRoundRobin, AlgorithmFailover:
		return a, nil
	}
	return "", fmt.Errorf("unknown rpc algorithm %q (want fastest, round-robin or failover)", s)
}

// Endpoint is one RPC URL with its measured attributes.
type Endpoint struct {
	URL         string
	Latency     time.Duration
	BlockNumber uint64
	Healthy     bool // meaningful only when Checked
	Checked     bool
}

// Picker selects an endpoint according to its algorithm. It is safe for
// concurrent use.
type Picker struct {
	algo Algorithm

	mu          sync.Mutex
	rrIndex     int
	cachedURL   string
	cacheExpiry time.Time
	onBenchmark func()
}

// NewPicker creates a Picker for algo.
func NewPicker(algo Algorithm) *Picker {
	return &Picker{algo: algo}
}

// OnBenchmark registers a hook run whenever the fastest algorithm re-scores
// instead of serving its cached winner.
func (p *Picker) OnBenchmark(fn func()) {
	p.mu.Lock()
	p.onBenchmark = fn
	p.mu.Unlock()
}

// Pick selects an endpoint from endpoints.
func (p *Picker) Pick(endpoints []Endpoint) (*Endpoint, error) {
	if len(endpoints) == 0 {
		return nil, ErrNoHealthyRPC
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.algo {
	case AlgorithmRoundRobin:
		return p.nextRoundRobin(endpoints)
	case AlgorithmFailover:
		return firstUsable(endpoints)
	}
	return p.fastest(endpoints)
}

func (p *Picker) fastest(endpoints []Endpoint) (*Endpoint, error) {
	if p.cachedURL != "" && time.Now().Before(p.cacheExpiry) {
		for _, e := range candidates(endpoints) {
			if e.URL == p.cachedURL {
				return e, nil
			}
		}
	}
	if p.onBenchmark != nil {
		p.onBenchmark()
	}

	best := bestBlock(endpoints)
	var (
		winner    *Endpoint
		bestScore float64
	)
	for _, e := range candidates(endpoints) {
		if best > 0 && best-e.BlockNumber > staleBlockThreshold {
			continue
		}
		if s := score(e, best); winner == nil || s > bestScore {
			winner, bestScore = e, s
		}
	}
	if winner == nil {
		return nil, ErrNoHealthyRPC
	}

	p.cachedURL = winner.URL
	p.cacheExpiry = time.Now().Add(cacheTTL)
	return winner, nil
}

func (p *Picker) nextRoundRobin(endpoints []Endpoint) (*Endpoint, error) {
	healthy := candidates(endpoints)
	if len(healthy) == 0 {
		return nil, ErrNoHealthyRPC
	}
	idx := p.rrIndex % len(healthy)
	p.rrIndex = (idx + 1) % len(healthy)
	return healthy[idx], nil
}

// firstUsable walks endpoints in configured order, skipping ones known to be down.
func firstUsable(endpoints []Endpoint) (*Endpoint, error) {
	for i := range endpoints {
		if e := &endpoints[i]; !e.Checked || e.Healthy {
			return e, nil
		}
	}
	return nil, ErrNoHealthyRPC
}

func bestBlock(endpoints []Endpoint) uint64 {
	var best uint64
	for _, e := range endpoints {
		if e.BlockNumber > best {
			best = e.BlockNumber
		}
	}
	return best
}

// score favours low latency and penalises each block of lag.
func score(e *Endpoint, best uint64) float64 {
	var s float64
	if ms := e.Latency.Milliseconds(); ms > 0 {
		s += 1000.0 / float64(ms)
	}
	if best > 0 {
		s += 10 - float64(best-e.BlockNumber)
	}
	return s
}

// candidates returns the endpoints eligible for selection. Without any
// health data every endpoint qualifies; otherwise checked-but-unhealthy
// endpoints are dropped.
func candidates(endpoints []Endpoint) []*Endpoint {
	out := make([]*Endpoint, 0, len(endpoints))
	for i := range endpoints {
		if e := &endpoints[i]; !e.Checked || e.Healthy {
			out = append(out, e)
		}
	}
	return out
}
