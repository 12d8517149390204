package driver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"vecsmith/internal/gen"
	"vecsmith/internal/project"
	"vecsmith/internal/trace"
)

// ErrGeneratorBug wraps a panic raised while generating a program. Such a
// panic means an engine contract was broken, never bad user input.
var ErrGeneratorBug = errors.New("generator bug")

// generate is swapped out by tests.
var generate = gen.Generate

// BatchRequest asks for Count programs with consecutive seeds starting at
// Options.Seed.
type BatchRequest struct {
	Options gen.Options
	Count   int
	OutDir  string
	// Jobs bounds the worker pool; 0 means GOMAXPROCS.
	Jobs  int
	Cache *DiskCache
	Sink  Sink
}

// ProgramResult is the outcome for one seed.
type ProgramResult struct {
	Seed    uint64
	Path    string
	Digest  project.Digest
	Cached  bool
	Vectors int
	Views   int
}

// BatchResult lists the programs in seed order.
type BatchResult struct {
	Programs  []ProgramResult
	Generated int
	Cached    int
}

// FileName is the corpus file name of a seed.
func FileName(seed uint64) string {
	return "prog_" + strconv.FormatUint(seed, 10) + ".c"
}

// Seeds returns the count consecutive seeds starting at first.
func Seeds(first uint64, count int) ([]uint64, error) {
	n, err := safecast.Conv[uint64](count)
	if err != nil {
		return nil, fmt.Errorf("batch count %d: %w", count, err)
	}
	if n > 0 && first > math.MaxUint64-(n-1) {
		return nil, fmt.Errorf("seed range %d+%d overflows", first, count)
	}
	seeds := make([]uint64, count)
	for i := range seeds {
		off, err := safecast.Conv[uint64](i)
		if err != nil {
			return nil, err
		}
		seeds[i] = first + off
	}
	return seeds, nil
}

// Batch generates and writes the requested programs in parallel. The first
// failure cancels the remaining work.
func Batch(ctx context.Context, req BatchRequest) (BatchResult, error) {
	if req.Count < 1 {
		return BatchResult{}, fmt.Errorf("batch count must be >= 1, got %d", req.Count)
	}
	seeds, err := Seeds(req.Options.Seed, req.Count)
	if err != nil {
		return BatchResult{}, err
	}
	if err := os.MkdirAll(req.OutDir, 0o755); err != nil {
		return BatchResult{}, fmt.Errorf("output directory: %w", err)
	}
	sink := req.Sink
	if sink == nil {
		sink = NopSink{}
	}
	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "batch", trace.CurrentSpan(ctx)).
		WithExtra("count", strconv.Itoa(req.Count)).
		WithExtra("jobs", strconv.Itoa(jobs))
	ctx = trace.WithSpan(ctx, span)

	// Индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]ProgramResult, len(seeds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(seeds)))
	for i, seed := range seeds {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			sink.Emit(Event{Kind: EventStarted, Index: i, Seed: seed})
			started := time.Now()
			res, err := runOne(gctx, req, seed)
			if err != nil {
				sink.Emit(Event{Kind: EventFailed, Index: i, Seed: seed, Err: err, Elapsed: time.Since(started)})
				return err
			}
			results[i] = res
			kind := EventGenerated
			if res.Cached {
				kind = EventCached
			}
			sink.Emit(Event{Kind: kind, Index: i, Seed: seed, Path: res.Path, Elapsed: time.Since(started)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.End("failed")
		return BatchResult{}, err
	}

	out := BatchResult{Programs: results}
	for _, r := range results {
		if r.Cached {
			out.Cached++
		} else {
			out.Generated++
		}
	}
	span.WithExtra("cached", strconv.Itoa(out.Cached)).End("")
	return out, nil
}

func runOne(ctx context.Context, req BatchRequest, seed uint64) (ProgramResult, error) {
	opts := req.Options
	opts.Seed = seed
	path := filepath.Join(req.OutDir, FileName(seed))

	key, err := CacheKey(opts)
	if err != nil {
		return ProgramResult{}, err
	}
	if res, ok := lookup(req.Cache, key, path); ok {
		return res, nil
	}

	prog, err := safeGenerate(ctx, opts)
	if err != nil {
		return ProgramResult{}, err
	}
	if err := os.WriteFile(path, []byte(prog.Text), 0o644); err != nil {
		return ProgramResult{}, fmt.Errorf("seed %d: %w", seed, err)
	}
	res := ProgramResult{
		Seed:    seed,
		Path:    path,
		Digest:  prog.Digest,
		Vectors: prog.Vectors,
		Views:   prog.Views,
	}
	if req.Cache != nil {
		payload := &DiskPayload{
			Seed:          seed,
			Path:          path,
			Digest:        prog.Digest,
			Vectors:       prog.Vectors,
			Views:         prog.Views,
			ChecksumLines: prog.ChecksumLines,
		}
		if err := req.Cache.Put(key, payload); err != nil {
			return ProgramResult{}, fmt.Errorf("seed %d: cache: %w", seed, err)
		}
	}
	return res, nil
}

// lookup reports a hit only when the cached file is still on disk with the
// recorded digest.
func lookup(cache *DiskCache, key project.Digest, path string) (ProgramResult, bool) {
	var payload DiskPayload
	if ok, err := cache.Get(key, &payload); err != nil || !ok || payload.Path != path {
		return ProgramResult{}, false
	}
	data, err := os.ReadFile(path)
	if err != nil || project.Sum(data) != payload.Digest {
		return ProgramResult{}, false
	}
	return ProgramResult{
		Seed:    payload.Seed,
		Path:    path,
		Digest:  payload.Digest,
		Cached:  true,
		Vectors: payload.Vectors,
		Views:   payload.Views,
	}, true
}

func safeGenerate(ctx context.Context, opts gen.Options) (prog *gen.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			prog = nil
			err = fmt.Errorf("%w: seed %d: %v", ErrGeneratorBug, opts.Seed, r)
		}
	}()
	return generate(ctx, opts)
}
