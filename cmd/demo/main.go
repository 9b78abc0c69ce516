// Command demo simulates a window that resizes and changes visibility while
// observers come and go, showing the event listener appearing with the first
// observer and disappearing with the last one.
package main

import (
	"context"
	"log"
	"os"

	"github.com/delaneyj/eventwire/eventsource"
	"github.com/delaneyj/eventwire/eventvalue"
	"github.com/delaneyj/eventwire/reactive"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

const (
	resizesKey = "resizes"
	verboseKey = "verbose"
)

func main() {
	cmd := &cli.Command{
		Name:  "demo",
		Usage: "Simulate a resizing window observed through event-driven values",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  resizesKey,
				Usage: "Number of resize events to simulate",
				Value: 5,
			},
			&cli.BoolFlag{
				Name:  verboseKey,
				Usage: "Log every observed change",
				Value: true,
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	resizes := int(cmd.Uint(resizesKey))
	verbose := cmd.Bool(verboseKey)

	ctx := reactive.NewContext(func(err error) {
		log.Printf("effect error: %v", err)
	})
	window := eventsource.NewWindow(800, 600)

	width := eventvalue.New(ctx, window, eventsource.EventResize,
		func(w *eventsource.Window) int { return w.Width() })
	visibility := eventvalue.New(ctx, window, eventsource.EventVisibilityChange,
		func(w *eventsource.Window) string { return w.Visibility() })

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{
		"step", "events", "width", "visibility",
		"resize listeners", "visibility listeners",
	})

	events := int64(0)
	snapshot := func(step string) {
		tbl.Append([]string{
			step,
			humanize.Comma(events),
			humanize.Comma(int64(width.Value())),
			visibility.Value(),
			humanize.Comma(int64(window.ListenerCount(eventsource.EventResize))),
			humanize.Comma(int64(window.ListenerCount(eventsource.EventVisibilityChange))),
		})
	}

	snapshot("before observers")

	recomputes := 0
	stopWidth := reactive.Effect(ctx, func() error {
		w := width.Value()
		recomputes++
		if verbose {
			log.Printf("window width: %d", w)
		}
		return nil
	})
	stopVisibility := reactive.Effect(ctx, func() error {
		v := visibility.Value()
		recomputes++
		if verbose {
			log.Printf("document visibility: %s", v)
		}
		return nil
	})

	snapshot("observers attached")

	for i := 0; i < resizes; i++ {
		window.Resize(800+(i+1)*64, 600)
		events++
	}
	window.SetVisibility(eventsource.VisibilityHidden)
	events++

	snapshot("after events")

	stopWidth()
	stopVisibility()
	snapshot("observers detached")

	width.Dispose()
	visibility.Dispose()
	snapshot("disposed")

	tbl.Render()
	log.Printf("%s events drove %s recomputes", humanize.Comma(events), humanize.Comma(int64(recomputes)))
	return nil
}
