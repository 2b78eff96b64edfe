/*
Package passage determines the travel documents and visas a traveler needs for an
international trip.

Given an origin country, a destination country, a trip duration in days and a trip
purpose, it derives an ordered, explainable list of required and optional documents,
including the visa determination, and summarizes it. The same Service answers the
MCP tool, the HTTP API and the CLI.

# Concept

The decision logic is a pure function over read-only data: a directional bilateral
visa table and two destination rule sets. The Service adds the ambient concerns around
it (report caching, structured logging and observability hooks) without changing the
answer. The policy catalog is loaded once at startup and never mutated, so a Service can
be shared freely between goroutines.

# Key Features

  - Deterministic: the same trip always yields the same report, in the same order.
  - Conservative Defaults: unknown country pairs require a visa rather than erroring.
  - Single Failure Shape: callers receive a complete report or an {"error": ...} object.
  - Pluggable: swap the policy source or the cache (memory, Redis) through options.

# Usage

	package main

	import (
		"context"
		"encoding/json"
		"os"

		"github.com/aretw0/passage"
	)

	func main() {
		svc, err := passage.New()
		if err != nil {
			panic(err)
		}

		res := svc.GetRequirements(context.Background(), "Canada", "Japan", 10, "tourism")
		_ = json.NewEncoder(os.Stdout).Encode(res)
	}
*/
package passage
