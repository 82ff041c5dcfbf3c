// File: cmd/ringstress/cmd.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/momentics/hioload-ring/control"
	"github.com/momentics/hioload-ring/stress"
)

// version is overridden at link time with -X main.version=...
var version = "dev"

type options struct {
	stress.Config
	logLevel   string
	dumpProbes bool
}

func newRootCommand() *cobra.Command {
	opts := options{Config: stress.DefaultConfig()}
	cmd := &cobra.Command{
		Use:          "ringstress",
		Short:        "Stress a single-producer/single-consumer byte ring",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts.logLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer logger.Sync()
			return run(cmd, opts, logger)
		},
	}
	addFlags(cmd.Flags(), &opts)
	cmd.AddCommand(newVersionCommand())
	return cmd
}

func addFlags(fs *pflag.FlagSet, opts *options) {
	fs.IntVar(&opts.Capacity, "capacity", opts.Capacity, "ring storage size in bytes (power of two)")
	fs.DurationVar(&opts.Duration, "duration", opts.Duration, "how long to run")
	fs.IntVar(&opts.MaxChunk, "max-chunk", opts.MaxChunk, "upper bound (exclusive) of a single read or write request")
	fs.Int64Var(&opts.Seed, "seed", opts.Seed, "random seed; the consumer uses seed+1")
	fs.IntVar(&opts.ProducerCPU, "producer-cpu", opts.ProducerCPU, "pin the producer to this CPU (-1 disables)")
	fs.IntVar(&opts.ConsumerCPU, "consumer-cpu", opts.ConsumerCPU, "pin the consumer to this CPU (-1 disables)")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.BoolVar(&opts.dumpProbes, "dump-probes", false, "print all debug probes after the run")
}

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.RFC3339TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}

func run(cmd *cobra.Command, opts options, logger *zap.Logger) error {
	ctrl := control.New()
	rep, err := stress.Run(cmd.Context(), opts.Config,
		stress.WithLogger(logger),
		stress.WithControl(ctrl),
	)
	if rep.Elapsed == 0 {
		// Rejected before any traffic.
		return err
	}
	out := cmd.OutOrStdout()
	printReport(out, rep)
	if opts.dumpProbes {
		state := ctrl.Debug().DumpState()
		for _, name := range ctrl.Debug().Names() {
			fmt.Fprintf(out, "%-24s %v\n", name, state[name])
		}
	}
	return err
}

func printReport(w io.Writer, rep stress.Report) {
	fmt.Fprintf(w, "elapsed      %s\n", rep.Elapsed)
	fmt.Fprintf(w, "produced     %s (%s writes, %s short)\n",
		humanize.Bytes(rep.Produced), humanize.Comma(int64(rep.Writes)), humanize.Comma(int64(rep.ShortWrites)))
	fmt.Fprintf(w, "consumed     %s (%s reads, %s empty)\n",
		humanize.Bytes(rep.Consumed), humanize.Comma(int64(rep.Reads)), humanize.Comma(int64(rep.EmptyReads)))
	fmt.Fprintf(w, "drained      %s\n", humanize.Bytes(rep.Drained))
	fmt.Fprintf(w, "write size   p50=%d p99=%d\n", rep.WriteP50, rep.WriteP99)
	fmt.Fprintf(w, "read size    p50=%d p99=%d\n", rep.ReadP50, rep.ReadP99)
	fmt.Fprintf(w, "throughput   %s/s\n", humanize.Bytes(uint64(rep.Throughput())))
	fmt.Fprintln(w, rep.Final)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show current version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ringstress version %s (%s/%s)\n",
				version, runtime.GOOS, runtime.GOARCH)
		},
	}
}
