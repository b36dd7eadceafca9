package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"translate-tool/src/singleinstance"
)

type stressOptions struct {
	n        int
	port     int
	deadline time.Duration
}

type summary struct {
	launched int
	ok       int32
	failed   int32
	timedOut int32
	noRes    int32
	elapsed  time.Duration
}

func (s summary) String() string {
	return fmt.Sprintf("launched=%d ok=%d failed=%d timeout=%d no-resident=%d elapsed=%s",
		s.launched, s.ok, s.failed, s.timedOut, s.noRes, s.elapsed)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	opts := &stressOptions{}
	cmd := newRootCmd(opts)
	return cmd.Execute()
}

func newRootCmd(opts *stressOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stress-trigger",
		Short:         "Fire concurrent trigger requests at the running resident",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := runWithOptions(cmd.Context(), *opts, func() singleinstance.Client {
				return singleinstance.NewClient(opts.port)
			})
			_, err := fmt.Fprintln(cmd.OutOrStdout(), s)
			return err
		},
	}

	cmd.Flags().IntVar(&opts.n, "n", 10, "number of concurrent triggers")
	cmd.Flags().IntVar(&opts.port, "port", singleinstance.DefaultPort, "resident TCP port")
	cmd.Flags().DurationVar(&opts.deadline, "deadline", 30*time.Second, "per-trigger timeout")

	return cmd
}

// runWithOptions launches every trigger at once. The resident handles them
// one at a time, so later triggers wait for earlier translations.
func runWithOptions(ctx context.Context, opts stressOptions, newClient func() singleinstance.Client) summary {
	var wg sync.WaitGroup
	s := summary{launched: opts.n}

	start := time.Now()
	for i := 0; i < opts.n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cctx, cancel := context.WithTimeout(ctx, opts.deadline)
			defer cancel()
			delegated, _, err := newClient().Trigger(cctx)
			switch {
			case !delegated:
				atomic.AddInt32(&s.noRes, 1)
			case errors.Is(err, context.DeadlineExceeded):
				atomic.AddInt32(&s.timedOut, 1)
			case err != nil:
				atomic.AddInt32(&s.failed, 1)
			default:
				atomic.AddInt32(&s.ok, 1)
			}
		}()
	}
	wg.Wait()
	s.elapsed = time.Since(start)
	return s
}
