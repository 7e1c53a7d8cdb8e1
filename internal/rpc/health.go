package rpc

import (
	"context"
	"time"

	"github.com/Mohsinsiddi/stakeforms/internal/chain"
)

// healthTimeout bounds a single health probe.
const healthTimeout = 5 * time.Second

// HealthCheck probes url. The endpoint is healthy if it answers within
// healthTimeout and, when bestBlock > 0, is no more than staleBlockThreshold
// blocks behind it.
func HealthCheck(ctx context.Context, url string, bestBlock uint64) (Endpoint, error) {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	latency, block, err := chain.Ping(ctx, url)
	ep := Endpoint{
		URL:         url,
		Latency:     latency,
		BlockNumber: block,
		Healthy:     err == nil,
		Checked:     true,
	}
	if err == nil && bestBlock > block && bestBlock-block > staleBlockThreshold {
		ep.Healthy = false
	}
	return ep, err
}
