package rpc

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Mohsinsiddi/stakeforms/internal/logging"
)

var (
	pickersMu sync.Mutex
	pickers   = map[Algorithm]*Picker{}
)

// PickerFor returns the process-wide picker for algo, so the fastest cache
// and the round-robin position carry over between selections.
func PickerFor(algo Algorithm) *Picker {
	pickersMu.Lock()
	defer pickersMu.Unlock()
	p, ok := pickers[algo]
	if !ok {
		p = NewPicker(algo)
		pickers[algo] = p
	}
	return p
}

// Select picks the RPC URL to use from urls with the named algorithm.
// A single URL is returned without probing. Failover never probes either;
// it returns the first URL and leaves retries to the caller. Round-robin
// rotates over the healthy endpoints on each call within one process.
func Select(ctx context.Context, urls []string, algorithm string) (string, error) {
	return selectWith(ctx, urls, algorithm, logging.WithComponent("rpc"))
}

func selectWith(ctx context.Context, urls []string, algorithm string, log zerolog.Logger) (string, error) {
	if len(urls) == 0 {
		return "", ErrNoHealthyRPC
	}
	algo, err := ParseAlgorithm(algorithm)
	if err != nil {
		return "", err
	}
	if len(urls) == 1 {
		return urls[0], nil
	}

	var endpoints []Endpoint
	if algo == AlgorithmFailover {
		endpoints = make([]Endpoint, len(urls))
		for i, u := range urls {
			endpoints[i] = Endpoint{URL: u}
		}
	} else {
		results := Benchmark(ctx, urls)
		for _, r := range results {
			ev := log.Debug().Str("url", r.URL).Dur("latency", r.Latency).Uint64("block", r.BlockNumber)
			if r.Err != nil {
				ev = ev.Err(r.Err)
			}
			ev.Msg("rpc probe")
		}
		endpoints = ResultsToEndpoints(results)
	}

	winner, err := PickerFor(algo).Pick(endpoints)
	if err != nil {
		log.Warn().Int("endpoints", len(urls)).Msg("no healthy rpc")
		return "", err
	}
	log.Info().Str("url", winner.URL).Str("algorithm", string(algo)).Msg("rpc selected")
	return winner.URL, nil
}
