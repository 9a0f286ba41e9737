package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

// Job is one file to convert.
type Job struct {
	Input string
	// Base is the non-glob prefix of the pattern that matched Input. Output
	// directories mirror the path of Input relative to Base.
	Base   string
	Output string
}

// Expand resolves glob patterns (doublestar syntax, "**" allowed) into a
// sorted, de-duplicated list of jobs. Paths matching any exclude pattern,
// by full path or by base name, are dropped. A pattern without glob
// characters must name an existing file.
func Expand(patterns, excludes []string) ([]Job, error) {
	for _, ex := range excludes {
		if !doublestar.ValidatePattern(ex) {
			return nil, fmt.Errorf("invalid exclude pattern %q", ex)
		}
	}

	seen := map[string]bool{}
	var jobs []Job
	for _, raw := range patterns {
		pattern := strings.TrimSpace(raw)
		if pattern == "" {
			continue
		}
		base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
		base = filepath.FromSlash(base)

		var matches []string
		if hasMeta(pattern) {
			found, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("expand %q: %w", pattern, err)
			}
			matches = found
		} else {
			info, err := os.Stat(pattern)
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", pattern, err)
			}
			if info.IsDir() {
				return nil, fmt.Errorf("%s is a directory (use a pattern such as %s)", pattern, filepath.Join(pattern, "**", "*.txt"))
			}
			matches = []string{pattern}
			base = filepath.Dir(pattern)
		}

		for _, match := range matches {
			clean := filepath.Clean(match)
			if seen[clean] || excluded(clean, excludes) {
				continue
			}
			seen[clean] = true
			jobs = append(jobs, Job{Input: clean, Base: base})
		}
	}

	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Input < jobs[j].Input })
	return jobs, nil
}

// OutputPath maps an input file to its Markdown output. Without outDir the
// output sits next to the input.
func OutputPath(job Job, outDir string) string {
	name := strings.TrimSuffix(job.Input, filepath.Ext(job.Input)) + ".md"
	if strings.TrimSpace(outDir) == "" {
		return name
	}
	rel, err := filepath.Rel(job.Base, name)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(name)
	}
	return filepath.Join(outDir, rel)
}

// Run converts jobs with at most workers conversions in flight and returns
// one result per job in input order. A job whose output path was already
// claimed by an earlier job fails without being converted. Per-file
// failures are carried in the results; the error is non-nil only when ctx
// is cancelled.
func Run(ctx context.Context, jobs []Job, workers int, opts Options) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	owners := make(map[string]string, len(jobs))
	for i, job := range jobs {
		key := pathKey(job.Output)
		if first, ok := owners[key]; ok {
			results[i] = failed(job, fmt.Errorf("output %s collides with %s", job.Output, first))
			continue
		}
		owners[key] = job.Input

		i, job := i, job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = failed(job, err)
				return err
			}
			results[i] = ConvertFile(job, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Failed counts results that did not convert.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Status == StatusFailed {
			n++
		}
	}
	return n
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

func excluded(path string, excludes []string) bool {
	slashed := filepath.ToSlash(path)
	for _, ex := range excludes {
		if ok, _ := doublestar.Match(ex, slashed); ok {
			return true
		}
		if ok, _ := doublestar.Match(ex, filepath.Base(path)); ok {
			return true
		}
	}
	return false
}
