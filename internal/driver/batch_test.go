package driver

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"vecsmith/internal/gen"
)

func testRequest(t *testing.T, count int) BatchRequest {
	t.Helper()
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	return BatchRequest{
		Options: gen.Options{Seed: 100, Globals: 2, Locals: 2, Statements: 4, Checksum: true},
		Count:   count,
		OutDir:  filepath.Join(t.TempDir(), "out"),
		Jobs:    3,
		Cache:   cache,
	}
}

type recordingSink struct {
	mu     sync.Mutex
	counts map[EventKind]int
}

func (s *recordingSink) Emit(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counts == nil {
		s.counts = map[EventKind]int{}
	}
	s.counts[ev.Kind]++
}

func TestBatchWritesProgramsInSeedOrder(t *testing.T) {
	req := testRequest(t, 6)
	sink := &recordingSink{}
	req.Sink = sink
	res, err := Batch(context.Background(), req)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if res.Generated != 6 || res.Cached != 0 || len(res.Programs) != 6 {
		t.Fatalf("unexpected result %+v", res)
	}
	for i, p := range res.Programs {
		if p.Seed != 100+uint64(i) {
			t.Fatalf("program %d has seed %d", i, p.Seed)
		}
		if filepath.Base(p.Path) != FileName(p.Seed) {
			t.Fatalf("program %d written to %s", i, p.Path)
		}
		data, err := os.ReadFile(p.Path)
		if err != nil {
			t.Fatalf("read %s: %v", p.Path, err)
		}
		want, err := gen.Generate(context.Background(), gen.Options{Seed: p.Seed, Globals: 2, Locals: 2, Statements: 4, Checksum: true})
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != want.Text {
			t.Fatalf("seed %d: file differs from a direct generation", p.Seed)
		}
	}
	if sink.counts[EventStarted] != 6 || sink.counts[EventGenerated] != 6 {
		t.Fatalf("events %v", sink.counts)
	}
}

func TestBatchReusesCache(t *testing.T) {
	req := testRequest(t, 4)
	if _, err := Batch(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	res, err := Batch(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if res.Cached != 4 || res.Generated != 0 {
		t.Fatalf("second run: %+v", res)
	}

	// Touched or missing files are regenerated.
	if err := os.WriteFile(res.Programs[1].Path, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(res.Programs[2].Path); err != nil {
		t.Fatal(err)
	}
	res, err = Batch(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if res.Cached != 2 || res.Generated != 2 {
		t.Fatalf("third run: %+v", res)
	}

	// Different options never hit old entries.
	req.Options.Statements++
	res, err = Batch(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if res.Cached != 0 {
		t.Fatalf("stale cache hit: %+v", res)
	}
}

func TestBatchWithoutCache(t *testing.T) {
	req := testRequest(t, 2)
	req.Cache = nil
	for run := 0; run < 2; run++ {
		res, err := Batch(context.Background(), req)
		if err != nil {
			t.Fatal(err)
		}
		if res.Generated != 2 {
			t.Fatalf("run %d: %+v", run, res)
		}
	}
}

func TestBatchConvertsPanics(t *testing.T) {
	orig := generate
	defer func() { generate = orig }()
	generate = func(ctx context.Context, opts gen.Options) (*gen.Program, error) {
		if opts.Seed == 102 {
			panic(errors.New("broken contract"))
		}
		return orig(ctx, opts)
	}

	req := testRequest(t, 4)
	sink := &recordingSink{}
	req.Sink = sink
	_, err := Batch(context.Background(), req)
	if !errors.Is(err, ErrGeneratorBug) {
		t.Fatalf("got %v, want ErrGeneratorBug", err)
	}
	if sink.counts[EventFailed] == 0 {
		t.Fatalf("events %v", sink.counts)
	}
}

func TestBatchValidatesRequest(t *testing.T) {
	req := testRequest(t, 0)
	if _, err := Batch(context.Background(), req); err == nil {
		t.Fatalf("count 0 accepted")
	}
	req.Count = 3
	req.Options.Seed = math.MaxUint64 - 1
	if _, err := Batch(context.Background(), req); err == nil {
		t.Fatalf("overflowing seed range accepted")
	}
	req.Options.Seed = 1
	req.Options.Prefix = "not valid"
	if _, err := Batch(context.Background(), req); !errors.Is(err, gen.ErrInvalidOptions) {
		t.Fatalf("got %v", err)
	}
}

func TestBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Batch(ctx, testRequest(t, 3)); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
}

func TestSeeds(t *testing.T) {
	seeds, err := Seeds(math.MaxUint64-2, 3)
	if err != nil || seeds[2] != math.MaxUint64 {
		t.Fatalf("seeds %v, %v", seeds, err)
	}
	if _, err := Seeds(0, -1); err == nil {
		t.Fatalf("negative count accepted")
	}
}

func TestChannelSink(t *testing.T) {
	ch := make(chan Event, 1)
	ctx, cancel := context.WithCancel(context.Background())
	sink := NewChannelSink(ctx, ch)
	sink.Emit(Event{Kind: EventCached, Seed: 9})
	if ev := <-ch; ev.Kind != EventCached || ev.Seed != 9 {
		t.Fatalf("got %+v", ev)
	}
	cancel()
	ch <- Event{}
	// Buffer full and context done: Emit must not block.
	sink.Emit(Event{Kind: EventFailed})
	if EventFailed.String() != "failed" {
		t.Fatalf("kind name %q", EventFailed)
	}
}
