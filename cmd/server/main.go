// Command server runs the DevOps demo HTTP service.
//
//	@title			DevOps Demo App API
//	@version		1.0.0
//	@description	Demo service exposing health probes, sample data and Prometheus metrics.
//	@BasePath		/
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	_ "github.com/sbilibin2017/demoapp/docs"
)

// Build information variables.
// These are set during build time via ldflags.
var (
	buildVersion string = "N/A"
	buildDate    string = "N/A"
	buildCommit  string = "N/A"
)

// Application entry point.
func main() {
	printBuildInfo()

	if err := run(context.Background(), os.Args[1:], os.Getenv); err != nil {
		log.Fatal(err)
	}
}

// printBuildInfo prints the build version, date, and commit hash to stdout.
func printBuildInfo() {
	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
