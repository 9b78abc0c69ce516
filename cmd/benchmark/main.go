package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/delaneyj/eventwire/eventsource"
	"github.com/delaneyj/eventwire/eventvalue"
	"github.com/delaneyj/eventwire/reactive"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
)

var (
	valueCounts = []int{1, 10, 100, 1_000}
	iters       = 1000
)

type counterSource struct {
	*eventsource.Hub
	counter int
}

func main() {
	flag.Parse()

	log.Printf("warming up")
	benchmarkEmit(false)

	benchmarkEmit(true)
	benchmarkSourceSwap(true)
}

// benchmarkEmit measures emit-to-recompute latency with n observed values
// hanging off one source.
func benchmarkEmit(shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("Event fan-out")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, n := range valueCounts {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})

		ctx := reactive.NewContext(func(err error) {
			log.Panic(err)
		})
		src := &counterSource{Hub: eventsource.NewHub()}

		stops := make([]func(), 0, n)
		sink := 0
		for i := 0; i < n; i++ {
			v := eventvalue.New(ctx, src, "tick", func(s *counterSource) int {
				return s.counter
			})
			stops = append(stops, reactive.Effect(ctx, func() error {
				sink += v.Value()
				return nil
			}))
		}

		for i := 0; i < iters; i++ {
			src.counter++
			start := time.Now()
			src.Emit("tick")
			tach.AddTime(time.Since(start))
		}
		for _, stop := range stops {
			stop()
		}
		_ = sink

		calc := tach.Calc()
		tbl.AppendRows([]table.Row{
			{
				fmt.Sprintf("emit: %d values", n),
				calc.Time.Avg,
				calc.Time.Min,
				calc.Time.P75,
				calc.Time.P99,
				calc.Time.Max,
			},
		})
	}

	if shouldRender {
		tbl.Render()
	}
}

// benchmarkSourceSwap measures the unbind/rebind path of SetSource with n
// observed values bouncing between two sources.
func benchmarkSourceSwap(shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("Source swap")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, n := range valueCounts {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})

		ctx := reactive.NewContext(func(err error) {
			log.Panic(err)
		})
		a := &counterSource{Hub: eventsource.NewHub()}
		b := &counterSource{Hub: eventsource.NewHub(), counter: 1}

		values := make([]*eventvalue.Value[*counterSource, int], 0, n)
		stops := make([]func(), 0, n)
		sink := 0
		for i := 0; i < n; i++ {
			v := eventvalue.New(ctx, a, "tick", func(s *counterSource) int {
				return s.counter
			})
			values = append(values, v)
			stops = append(stops, reactive.Effect(ctx, func() error {
				sink += v.Value()
				return nil
			}))
		}

		for i := 0; i < iters; i++ {
			next := a
			if i%2 == 0 {
				next = b
			}
			start := time.Now()
			for _, v := range values {
				v.SetSource(next)
			}
			tach.AddTime(time.Since(start))
		}
		for _, stop := range stops {
			stop()
		}
		_ = sink

		calc := tach.Calc()
		tbl.AppendRows([]table.Row{
			{
				fmt.Sprintf("swap: %d values", n),
				calc.Time.Avg,
				calc.Time.Min,
				calc.Time.P75,
				calc.Time.P99,
				calc.Time.Max,
			},
		})
	}

	if shouldRender {
		tbl.Render()
	}
}
