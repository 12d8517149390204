package main

import (
	"fmt"
	"io"
	"time"

	"vecsmith/internal/observ"
)

func printTimings(out io.Writer, timer *observ.Timer) {
	if out == nil || timer == nil {
		return
	}
	if _, err := io.WriteString(out, timer.Summary()); err != nil {
		panic(err)
	}
}

func printBatchSummary(out io.Writer, generated, cached int, elapsed time.Duration) {
	fmt.Fprintf(out, "generated %d, cached %d in %.1f ms\n", generated, cached, toMillis(elapsed))
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
