package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/i474232898/location-report/internal/location"
	"github.com/i474232898/location-report/internal/render"
)

var findCmd = &cobra.Command{
	Use:   "find <place>",
	Short: "Print the report for a capital or country",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		renderer := render.New(a.cfg.NewsLimit)
		out := cmd.OutOrStdout()
		ctx := context.Background()

		// Countries first, so the name can be resolved to a key.
		if _, _, err := a.pipeline.Countries.Collect(ctx); err != nil {
			return err
		}
		country, err := a.reader.FindCountry(name)
		if errors.Is(err, location.ErrNotFound) {
			fmt.Fprint(out, renderer.Render(nil))
			return nil
		}
		if err != nil {
			return err
		}

		if _, err := a.pipeline.Run(ctx, []location.Key{country.Key()}); err != nil {
			a.logger.Warn("collection incomplete", "key", country.Key().String(), "error", err)
		}

		report, err := a.reader.Find(name)
		if errors.Is(err, location.ErrNotFound) {
			fmt.Fprint(out, renderer.Render(nil))
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprint(out, renderer.Render(report))
		return nil
	},
}
