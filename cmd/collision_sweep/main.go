// collision_sweep measures how forgeable the commitment becomes as the
// digest is truncated: for each (truncation bits, search-space size)
// cell it runs the brute-force second-preimage search against every
// leaf of a fixed trace and records the success rate and cost. Results
// go to a JSON report and an echarts HTML page.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"stark-bridge/attack"
	"stark-bridge/commitment"
	"stark-bridge/measureutil"
	"stark-bridge/prof"
	"stark-bridge/stark"
)

// cell is one sweep measurement.
type cell struct {
	Bits         int     `json:"bits"`
	Space        int64   `json:"space"`
	Leaves       int     `json:"leaves"`
	Successes    int     `json:"successes"`
	SuccessRate  float64 `json:"success_rate"`
	TreesRebuilt uint64  `json:"trees_rebuilt"`
	ElapsedMS    int64   `json:"elapsed_ms"`
}

func main() {
	n := flag.Int("n", 10, "trace length")
	bitsFlag := flag.String("bits", "8,12,16", "comma-separated truncation bits")
	spacesFlag := flag.String("spaces", "256,4096,65536,262144", "comma-separated search-space sizes")
	workers := flag.Int("workers", 0, "attack workers (0 = GOMAXPROCS)")
	outDir := flag.String("out", "sweep_out", "output directory")
	flag.Parse()

	bits, err := parseInts(*bitsFlag)
	if err != nil {
		log.Fatalf("bad -bits: %v", err)
	}
	spaces, err := parseInts(*spacesFlag)
	if err != nil {
		log.Fatalf("bad -spaces: %v", err)
	}

	trace, err := stark.GenTrace(*n)
	if err != nil {
		log.Fatal(err)
	}

	var cells []cell
	for _, b := range bits {
		h := commitment.NewHasher(commitment.Truncated(b))
		root, _ := commitment.Commit(trace, h)
		for _, sp := range spaces {
			measureutil.SnapshotAndReset()
			start := time.Now()
			successes := 0
			for idx := range trace {
				_, err := attack.FindForgeableValue(context.Background(), trace, idx, root, 0, int64(sp), h, *workers)
				if err == nil {
					successes++
					continue
				}
				if !errors.Is(err, attack.ErrSearchExhausted) {
					log.Fatal(err)
				}
			}
			counters := measureutil.SnapshotAndReset()
			c := cell{
				Bits:         b,
				Space:        int64(sp),
				Leaves:       len(trace),
				Successes:    successes,
				SuccessRate:  float64(successes) / float64(len(trace)),
				TreesRebuilt: counters["trees_rebuilt"],
				ElapsedMS:    time.Since(start).Milliseconds(),
			}
			cells = append(cells, c)
			fmt.Printf("bits=%-3d space=%-8d rate=%.2f rebuilds=%d elapsed=%dms\n",
				c.Bits, c.Space, c.SuccessRate, c.TreesRebuilt, c.ElapsedMS)
		}
	}

	for label, dur := range prof.TotalByLabel(prof.SnapshotAndReset()) {
		fmt.Printf("timing %-30s %s\n", label, dur)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal(err)
	}
	if err := writeReport(filepath.Join(*outDir, "sweep.json"), cells); err != nil {
		log.Fatal(err)
	}
	if err := renderCharts(filepath.Join(*outDir, "sweep.html"), bits, spaces, cells); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s and %s\n", filepath.Join(*outDir, "sweep.json"), filepath.Join(*outDir, "sweep.html"))
}

func parseInts(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty list")
	}
	return out, nil
}

func writeReport(path string, cells []cell) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cells); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func renderCharts(path string, bits, spaces []int, cells []cell) error {
	byBits := make(map[int][]cell)
	for _, c := range cells {
		byBits[c.Bits] = append(byBits[c.Bits], c)
	}
	xLabels := make([]string, len(spaces))
	for i, sp := range spaces {
		xLabels[i] = strconv.Itoa(sp)
	}

	rate := charts.NewLine()
	rate.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Forgery success rate vs search space",
			Subtitle: "one search per leaf; truncated digests collapse fast once space exceeds 2^bits",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "search space"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "success rate"}),
	)
	rate.SetXAxis(xLabels)
	for _, b := range bits {
		series := make([]opts.LineData, 0, len(spaces))
		for _, c := range byBits[b] {
			series = append(series, opts.LineData{Value: c.SuccessRate})
		}
		rate.AddSeries(fmt.Sprintf("%d-bit", b), series)
	}

	cost := charts.NewBar()
	cost.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Tree rebuilds per sweep cell"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "search space"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "rebuilds"}),
	)
	cost.SetXAxis(xLabels)
	for _, b := range bits {
		series := make([]opts.BarData, 0, len(spaces))
		for _, c := range byBits[b] {
			series = append(series, opts.BarData{Value: c.TreesRebuilt})
		}
		cost.AddSeries(fmt.Sprintf("%d-bit", b), series)
	}

	page := components.NewPage().SetPageTitle("Collision sweep")
	page.AddCharts(rate, cost)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := page.Render(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
