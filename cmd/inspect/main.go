package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"thirdcoast.systems/redline/internal/application"
	"thirdcoast.systems/redline/internal/config"
	"thirdcoast.systems/redline/internal/dataset"
	"thirdcoast.systems/redline/internal/labeling"
)

// inspect loads the configured datasets and label store and prints labeling
// progress without starting the web service.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	conf, err := config.LoadConfig(ctx)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	loader := &dataset.Loader{Timeout: conf.FetchTimeout}
	ds, err := loader.Load(ctx, conf.CommentsPath, conf.VideosPath)
	if err != nil {
		slog.Error("failed to load datasets", "error", err)
		os.Exit(1)
	}

	st, closeStore, err := application.OpenStore(ctx, conf)
	if err != nil {
		slog.Error("failed to open label store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	prior, err := st.Load(ctx)
	if err != nil {
		slog.Error("failed to load persisted labels", "error", err)
		os.Exit(1)
	}

	fmt.Printf("comments: %s rows, %d columns (%s)\n",
		humanize.Comma(int64(len(ds.Comments.Rows))), len(ds.Comments.Columns), ds.CommentsSource)
	fmt.Printf("videos:   %s rows, %d distinct ids (%s)\n",
		humanize.Comma(int64(len(ds.Videos.Rows))), len(ds.Videos.IDs()), ds.VideosSource)
	fmt.Printf("labels:   %s persisted (%s store)\n",
		humanize.Comma(int64(len(prior))), st.Kind())

	fmt.Println()
	for _, id := range ds.Videos.IDs() {
		filtered := labeling.Filter(ds.Comments, nil, id, nil)
		view := labeling.Merge(ds.Comments.Columns, filtered, prior)
		stats := view.Summarize()
		fmt.Printf("%-24s %8s comments %8s labeled %6.1f%%\n",
			id,
			humanize.Comma(int64(stats.Total)),
			humanize.Comma(int64(stats.Labeled)),
			stats.Percent)
	}

	if len(prior) > 0 {
		counts := map[labeling.Label]int{}
		for _, label := range prior {
			counts[label]++
		}
		fmt.Println()
		for _, label := range labeling.Labels {
			fmt.Printf("label %s: %s\n", label, humanize.Comma(int64(counts[label])))
		}
	}
}
