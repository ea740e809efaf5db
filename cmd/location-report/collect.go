package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/i474232898/location-report/internal/config"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Fill the local stores for the watchlist",
	Long: `Load the country directory, then fetch weather and news for every place
on the watchlist (WATCHLIST_FILE) or, without one, for every country's capital.
Places already stored are not fetched again.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		keys, err := config.LoadWatchlist(a.cfg.WatchlistFile)
		if err != nil {
			return err
		}

		summary, err := a.pipeline.Run(context.Background(), keys)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Countries: %d\n", summary.Countries)
		fmt.Fprintf(out, "Weather:   %d missing, %d fetched, %d not found, %d failed\n",
			summary.Weather.Missing, summary.Weather.Fetched, summary.Weather.NotFound, summary.Weather.Failed)
		fmt.Fprintf(out, "News:      %d missing, %d fetched, %d not found, %d failed\n",
			summary.News.Missing, summary.News.Fetched, summary.News.NotFound, summary.News.Failed)
		return err
	},
}
