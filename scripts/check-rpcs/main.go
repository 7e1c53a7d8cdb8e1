// check-rpcs: probes every built-in RPC endpoint of every chain (mainnet +
// testnet) in parallel, verifies the chain id it serves and prints a summary
// table. Use it before changing the default endpoint lists.
//
// Run from the module root:
//
//	go run ./scripts/check-rpcs
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/Mohsinsiddi/stakeforms/internal/chain"
	"github.com/Mohsinsiddi/stakeforms/internal/rpc"
)

const rpcTimeout = 12 * time.Second

type result struct {
	chain   string
	mode    string
	url     string
	latency string
	block   string
	note    string
}

func main() {
	reg := chain.NewRegistry()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results []result
	)

	for _, c := range reg.All() {
		for _, mode := range []string{chain.ModeMainnet, chain.ModeTestnet} {
			urls := c.RPCs(mode)
			if len(urls) == 0 {
				continue
			}
			wg.Add(1)
			go func(c chain.Chain, mode string, urls []string) {
				defer wg.Done()
				rows := probe(&c, mode, urls)
				mu.Lock()
				results = append(results, rows...)
				mu.Unlock()
			}(c, mode, urls)
		}
	}
	wg.Wait()

	printTable(results)
}

// probe benchmarks urls, then checks the chain id of every live endpoint.
func probe(c *chain.Chain, mode string, urls []string) []result {
	ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
	defer cancel()

	var rows []result
	for _, br := range rpc.Benchmark(ctx, urls) {
		r := result{chain: c.Name, mode: mode, url: br.URL, latency: "-", block: "-"}
		switch {
		case br.Err != nil:
			r.note = shortErr(br.Err)
		default:
			r.latency = br.Latency.Round(time.Millisecond).String()
			r.block = fmt.Sprintf("%d", br.BlockNumber)
			client, err := chain.Connect(ctx, br.URL, c.ID(mode))
			if err != nil {
				r.note = shortErr(err)
				break
			}
			client.Close()
			r.note = "ok"
		}
		rows = append(rows, r)
	}
	return rows
}

func printTable(results []result) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.chain != b.chain {
			return a.chain < b.chain
		}
		return a.mode < b.mode
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CHAIN\tMODE\tRPC\tLATENCY\tBLOCK\tNOTE")
	fmt.Fprintln(w, strings.Join([]string{
		strings.Repeat("-", 10), strings.Repeat("-", 8), strings.Repeat("-", 40),
		strings.Repeat("-", 8), strings.Repeat("-", 10), strings.Repeat("-", 12),
	}, "\t"))

	lastChain := ""
	for _, r := range results {
		if r.chain != lastChain {
			if lastChain != "" {
				fmt.Fprintln(w, "\t\t\t\t\t")
			}
			lastChain = r.chain
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", r.chain, r.mode, r.url, r.latency, r.block, r.note)
	}
	w.Flush()
}

func shortErr(err error) string {
	s := err.Error()
	if len(s) > 40 {
		return s[:40] + "…"
	}
	return s
}
