// Package main implements a multichecker with the project's custom analyzers:
//
//   - noglobalregistry forbids the default Prometheus registry outside tests
//   - noosexitmain forbids direct calls to os.Exit in main.main
//
// Usage:
//
//	go run ./cmd/staticlint ./...
package main

import (
	"golang.org/x/tools/go/analysis/multichecker"

	"github.com/sbilibin2017/demoapp/cmd/staticlint/analyzers"
)

func main() {
	multichecker.Main(
		analyzers.NoGlobalRegistryAnalyzer,
		analyzers.NoOsExitMainAnalyzer,
	)
}
