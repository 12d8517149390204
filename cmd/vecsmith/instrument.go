package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vecsmith/internal/prof"
	"vecsmith/internal/trace"
)

func errUsage(flag, value, allowed string) error {
	return fmt.Errorf("invalid %s value %q (expected %s)", flag, value, allowed)
}

// instrumented runs fn with tracing and profiling configured from the
// persistent flags. On failure the trace ring, if any, is dumped to stderr.
func instrumented(cmd *cobra.Command, fn func(ctx context.Context) error) error {
	stopProf, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProf()

	session, stopTrace, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	ctx := trace.WithTracer(cmd.Context(), session.Tracer)
	span := trace.Begin(session.Tracer, trace.ScopeDriver, cmd.CommandPath(), 0)
	runErr := fn(trace.WithSpan(ctx, span))
	if runErr != nil {
		span.End(runErr.Error())
		if session.Ring != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "trace: last events before failure:")
			if err := session.Ring.Dump(cmd.ErrOrStderr(), trace.FormatText); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
			}
		}
	} else {
		span.End("")
	}
	stopTrace()
	return runErr
}

// setupTracing inspects trace-related flags and initializes the tracer.
func setupTracing(cmd *cobra.Command) (*trace.Session, func(), error) {
	flags := cmd.Root().PersistentFlags()
	output, _ := flags.GetString("trace")
	levelStr, _ := flags.GetString("trace-level")
	modeStr, _ := flags.GetString("trace-mode")
	formatStr, _ := flags.GetString("trace-format")
	ringSize, _ := flags.GetInt("trace-ring-size")
	heartbeatInterval, _ := flags.GetDuration("trace-heartbeat")

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace without a level means "phase"
	if level == trace.LevelOff && output != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		return &trace.Session{Tracer: trace.Nop}, func() {}, nil
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid trace mode: %w", err)
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid trace format: %w", err)
	}
	if output == "" {
		output = "-"
	}

	session, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: output,
		RingSize:   ringSize,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	heartbeat := trace.StartHeartbeat(session.Tracer, heartbeatInterval)

	cleanup := func() {
		heartbeat.Stop()
		if err := session.Tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return session, cleanup, nil
}

// setupProfiling enables the profilers named by the persistent flags.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()
	cpu, _ := flags.GetString("cpu-profile")
	mem, _ := flags.GetString("mem-profile")
	rt, _ := flags.GetString("runtime-trace")

	session, err := prof.Start(prof.Options{CPU: cpu, Mem: mem, RuntimeTrace: rt})
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "profiling: %v\n", err)
		}
	}, nil
}
