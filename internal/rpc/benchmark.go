package rpc

import (
	"context"
	"sync"
	"time"
)

// BenchmarkResult holds the result of a single endpoint benchmark.
type BenchmarkResult struct {
	URL         string
	Latency     time.Duration
	BlockNumber uint64
	Err         error
}

// Benchmark probes all urls in parallel. Results keep the input order.
func Benchmark(ctx context.Context, urls []string) []BenchmarkResult {
	results := make([]BenchmarkResult, len(urls))
	var wg sync.WaitGroup
	for i, url := range urls {
		wg.Add(1)
		go func(idx int, u string) {
			defer wg.Done()
			ep, err := HealthCheck(ctx, u, 0)
			results[idx] = BenchmarkResult{
				URL:         u,
				Latency:     ep.Latency,
				BlockNumber: ep.BlockNumber,
				Err:         err,
			}
		}(i, url)
	}
	wg.Wait()
	return results
}

// ResultsToEndpoints converts benchmark results to picker endpoints, all
// marked Checked.
func ResultsToEndpoints(results []BenchmarkResult) []Endpoint {
	endpoints := make([]Endpoint, 0, len(results))
	for _, r := range results {
		endpoints = append(endpoints, Endpoint{
			URL:         r.URL,
			Latency:     r.Latency,
			BlockNumber: r.BlockNumber,
			Healthy:     r.Err == nil,
			Checked:     true,
		})
	}
	return endpoints
}
