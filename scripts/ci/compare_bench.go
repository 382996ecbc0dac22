// compare_bench compares two `go test -bench` outputs and fails when a
// tracked benchmark regressed past the allowed threshold.
//
//	go test -run '^$' -bench . -benchmem -count 5 ./internal/... > current.txt
//	go run ./scripts/ci/compare_bench.go -baseline base.txt -current current.txt
//
// Repeated runs of the same benchmark (-count) are reduced to their median.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	benchmarkLinePattern = regexp.MustCompile(`^(Benchmark\S+)\s+\d+\s+([\d.]+) ns/op(?:.*?\s(\d+) allocs/op)?`)
	cpuSuffixPattern     = regexp.MustCompile(`-\d+$`)
	trackedBenchmarks    = []string{
		"BenchmarkCommit",
		"BenchmarkCompute/small",
		"BenchmarkCompute/large",
		"BenchmarkFindAndReplace/small",
		"BenchmarkFindAndReplace/large",
	}
)

// sample is the reduced result of one benchmark.
type sample struct {
	nsPerOp     float64
	allocsPerOp float64 // -1 when the run lacked -benchmem
}

type comparisonRow struct {
	name          string
	baseline      sample
	current       sample
	timeDeltaPct  float64
	allocDeltaPct float64
	pass          bool
}

func main() {
	baselinePath := flag.String("baseline", "", "path to baseline benchmark output")
	currentPath := flag.String("current", "", "path to current benchmark output")
	maxTimePct := flag.Float64("max-regression-pct", 25, "maximum allowed ns/op regression percent")
	maxAllocPct := flag.Float64("max-alloc-regression-pct", 10, "maximum allowed allocs/op regression percent")
	flag.Parse()

	if *baselinePath == "" || *currentPath == "" {
		fatalf("both -baseline and -current are required")
	}
	if *maxTimePct < 0 || *maxAllocPct < 0 {
		fatalf("regression thresholds must be non-negative")
	}

	baseline, err := parseFile(*baselinePath)
	if err != nil {
		fatalf("parse baseline: %v", err)
	}
	current, err := parseFile(*currentPath)
	if err != nil {
		fatalf("parse current: %v", err)
	}

	rows, err := compare(baseline, current, *maxTimePct, *maxAllocPct)
	if err != nil {
		fatalf("compare benchmarks: %v", err)
	}

	writeReport(os.Stdout, rows, *maxTimePct, *maxAllocPct)
	if summary := os.Getenv("GITHUB_STEP_SUMMARY"); summary != "" {
		f, err := os.OpenFile(summary, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
		if err != nil {
			fatalf("open step summary: %v", err)
		}
		defer f.Close()
		writeReport(f, rows, *maxTimePct, *maxAllocPct)
	}

	for _, row := range rows {
		if !row.pass {
			os.Exit(1)
		}
	}
}

func parseFile(path string) (map[string]sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()
	return parse(f)
}

// parse collects every run of every benchmark and reduces each to its
// median.
func parse(r io.Reader) (map[string]sample, error) {
	times := map[string][]float64{}
	allocs := map[string][]float64{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		m := benchmarkLinePattern.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if m == nil {
			continue
		}
		name := cpuSuffixPattern.ReplaceAllString(m[1], "")
		ns, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return nil, fmt.Errorf("parse ns/op for %q: %w", name, err)
		}
		times[name] = append(times[name], ns)
		if m[3] != "" {
			a, err := strconv.ParseFloat(m[3], 64)
			if err != nil {
				return nil, fmt.Errorf("parse allocs/op for %q: %w", name, err)
			}
			allocs[name] = append(allocs[name], a)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(times) == 0 {
		return nil, errors.New("no benchmark results found")
	}

	out := make(map[string]sample, len(times))
	for name, ts := range times {
		s := sample{nsPerOp: median(ts), allocsPerOp: -1}
		if as := allocs[name]; len(as) > 0 {
			s.allocsPerOp = median(as)
		}
		out[name] = s
	}
	return out, nil
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func compare(baseline, current map[string]sample, maxTimePct, maxAllocPct float64) ([]comparisonRow, error) {
	rows := make([]comparisonRow, 0, len(trackedBenchmarks))
	for _, name := range trackedBenchmarks {
		curr, ok := current[name]
		if !ok {
			return nil, fmt.Errorf("missing current benchmark %q", name)
		}
		base, ok := baseline[name]
		if !ok {
			// No baseline yet for a new benchmark; it passes this run.
			base = curr
		}
		if base.nsPerOp <= 0 {
			return nil, fmt.Errorf("non-positive baseline ns/op for %q", name)
		}

		row := comparisonRow{
			name:          name,
			baseline:      base,
			current:       curr,
			timeDeltaPct:  deltaPct(base.nsPerOp, curr.nsPerOp),
			allocDeltaPct: math.NaN(),
		}
		row.pass = row.timeDeltaPct <= maxTimePct
		if base.allocsPerOp >= 0 && curr.allocsPerOp >= 0 {
			row.allocDeltaPct = deltaPct(base.allocsPerOp, curr.allocsPerOp)
			row.pass = row.pass && row.allocDeltaPct <= maxAllocPct
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })
	return rows, nil
}

// deltaPct is the relative change in percent. Growth from zero allocations
// counts as a full regression.
func deltaPct(base, curr float64) float64 {
	if base == 0 {
		if curr == 0 {
			return 0
		}
		return 100
	}
	return (curr - base) / base * 100
}

func writeReport(out io.Writer, rows []comparisonRow, maxTimePct, maxAllocPct float64) {
	fmt.Fprintf(out, "## Benchmark comparison\n\n")
	fmt.Fprintf(out, "Allowed regression: %.2f%% ns/op, %.2f%% allocs/op\n\n", maxTimePct, maxAllocPct)
	fmt.Fprintf(out, "| Benchmark | Baseline ns/op | Current ns/op | Delta | Allocs delta | Result |\n")
	fmt.Fprintf(out, "|---|---:|---:|---:|---:|---|\n")
	for _, row := range rows {
		result := "PASS"
		if !row.pass {
			result = "FAIL"
		}
		allocs := "n/a"
		if !math.IsNaN(row.allocDeltaPct) {
			allocs = fmt.Sprintf("%+0.2f%%", row.allocDeltaPct)
		}
		fmt.Fprintf(out, "| %s | %.0f | %.0f | %+0.2f%% | %s | %s |\n",
			row.name, row.baseline.nsPerOp, row.current.nsPerOp, row.timeDeltaPct, allocs, result)
	}
	fmt.Fprintln(out)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
