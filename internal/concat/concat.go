package concat

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"csclean/internal/driver"
	"csclean/internal/trace"
)

const headerBar = "============"

// Skip records a file left out of the output.
type Skip struct {
	Path   string
	Reason string
}

// Result is the outcome of Run.
type Result struct {
	Text      []byte
	Written   int
	Skipped   []Skip
	CacheHits int
}

// Env carries the collaborators of Run. Both fields are optional.
type Env struct {
	Cache *driver.CleanCache
	Sink  ProgressSink
}

type entry struct {
	text   []byte
	skip   string
	failed bool
}

// Run reads, cleans and concatenates files in parallel. Output keeps the
// order of files; per-file failures become skips.
func Run(ctx context.Context, files []string, opts Options, env Env) (*Result, error) {
	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "concat")
	defer span.End(fmt.Sprintf("%d files", len(files)))

	for _, f := range files {
		emit(env.Sink, Event{File: f, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	entries := make([]entry, len(files))
	var hits atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(files))))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			emit(env.Sink, Event{File: path, Status: StatusWorking})

			e, hit := processFile(gctx, path, opts, env.Cache)
			entries[i] = e
			if hit {
				hits.Add(1)
			}

			evt := Event{File: path, Status: StatusDone, Elapsed: time.Since(start)}
			switch {
			case e.failed:
				evt.Status, evt.Reason = StatusError, e.skip
			case e.skip != "":
				evt.Status, evt.Reason = StatusSkipped, e.skip
			}
			emit(env.Sink, evt)
			trace.Point(trace.FromContext(gctx), trace.ScopeFile, string(evt.Status), filepath.Base(path), span)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{CacheHits: int(hits.Load())}
	var out bytes.Buffer
	for i, e := range entries {
		if e.skip != "" {
			res.Skipped = append(res.Skipped, Skip{Path: files[i], Reason: e.skip})
			continue
		}
		if opts.Headers {
			fmt.Fprintf(&out, "\n%s %s %s\n", headerBar, files[i], headerBar)
		}
		out.Write(e.text)
		if len(e.text) == 0 || e.text[len(e.text)-1] != '\n' {
			out.WriteByte('\n')
		}
		res.Written++
	}
	res.Text = out.Bytes()
	return res, nil
}

// processFile produces the text of one file or the reason to skip it.
func processFile(ctx context.Context, path string, opts Options, cache *driver.CleanCache) (entry, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return entry{skip: "error: " + err.Error(), failed: true}, false
	}
	if limit := opts.maxBytes(); limit > 0 && info.Size() > limit {
		return entry{skip: SizeReason(info.Size(), opts.MaxMB)}, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return entry{skip: "error: " + err.Error(), failed: true}, false
	}
	if opts.IgnoreBinaries && IsBinary(data) {
		return entry{skip: "binary or non UTF-8"}, false
	}

	text := DecodeText(data)
	if opts.NormalizeEOL {
		text = NormalizeEOL(text)
	}
	if !isCSharp(path) {
		return entry{text: text}, false
	}
	eo := opts.EditOptions()
	if !eo.Any() {
		return entry{text: text}, false
	}

	tr := trace.FromContext(ctx)
	key := driver.CacheKey(text, eo)
	cached, ok, err := cache.Get(key, len(text), eo)
	if err != nil {
		trace.Error(tr, "cache get", err)
	}
	if ok {
		return entry{text: cached}, true
	}
	res := driver.Clean(ctx, path, text, driver.CleanOptions{Edit: eo})
	if err := cache.Put(key, len(text), eo, res.Output); err != nil {
		trace.Error(tr, "cache put", err)
	}
	return entry{text: res.Output}, false
}

// SizeReason formats the skip reason for an oversized file.
func SizeReason(size int64, maxMB float64) string {
	return fmt.Sprintf("size %s > %g MiB", humanize.IBytes(uint64(size)), maxMB) //nolint:gosec // size > 0
}

func isCSharp(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".cs")
}
