package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/pflag"

	"github.com/sbilibin2017/demoapp/internal/configs/address"
	httpClient "github.com/sbilibin2017/demoapp/internal/configs/transport/http"
)

type probeFlags struct {
	addr    string
	path    string
	timeout time.Duration
	retries int
	wait    time.Duration
}

// run parses args, performs the probe and prints "ok" on success.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	var f probeFlags
	fs := pflag.NewFlagSet("probe", pflag.ContinueOnError)
	fs.StringVarP(&f.addr, "address", "a", ":5000", "server address")
	fs.StringVarP(&f.path, "path", "p", "/health", "path to request")
	fs.DurationVarP(&f.timeout, "timeout", "t", 2*time.Second, "per attempt timeout")
	fs.IntVarP(&f.retries, "retries", "r", 2, "retry attempts after the first request")
	fs.DurationVar(&f.wait, "retry-wait", 200*time.Millisecond, "wait between attempts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := probe(ctx, f); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "ok")
	return nil
}

// probe requests f.path on f.addr and fails unless the response is 2xx.
func probe(ctx context.Context, f probeFlags) error {
	addr, err := address.New(f.addr)
	if err != nil {
		return fmt.Errorf("parse address %q: %w", f.addr, err)
	}

	client, err := httpClient.New(addr.URL(),
		httpClient.WithTimeout(f.timeout),
		httpClient.WithRetryPolicy(httpClient.RetryPolicy{Count: f.retries, Wait: f.wait, MaxWait: f.wait}),
	)
	if err != nil {
		return err
	}

	resp, err := client.R().SetContext(ctx).Get(f.path)
	if err != nil {
		return fmt.Errorf("probe %s%s: %w", addr.URL(), f.path, err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("probe %s%s: unexpected status %d", addr.URL(), f.path, resp.StatusCode())
	}
	return nil
}
