package handler

import (
	"fmt"

	"github.com/katiamach/ornl/internal/config"
	"github.com/katiamach/ornl/internal/logger"
	"github.com/katiamach/ornl/internal/model"
	"github.com/katiamach/ornl/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Output formats.
const (
	formatJSON  = "json"
	formatCSV   = "csv"
	formatTable = "table"
)

func (c *WeatherCLI) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
	}

	var baseURL string
	set := &cobra.Command{
		Use:   "set",
		Short: "Set configuration values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if baseURL == "" {
				return &UsageError{Message: "No options provided. Use --base-url"}
			}

			err := c.store.Set(config.KeyBaseURL, baseURL)
			if err != nil {
				return fmt.Errorf("failed to save base url: %w", err)
			}

			c.printSuccess("Base URL set")
			return nil
		},
	}
	set.Flags().StringVar(&baseURL, "base-url", "", "API base URL")

	show := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := c.store.BaseURL()
			if err != nil {
				return err
			}

			fmt.Fprint(c.out, "\nDaymet Weather CLI Configuration\n\n")
			fmt.Fprintf(c.out, "Base URL:  %s\n\n", url)
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Reset configuration to defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := c.store.Clear()
			if err != nil {
				return err
			}

			c.printSuccess("Configuration cleared")
			return nil
		},
	}

	cmd.AddCommand(set, show, clearCmd)

	return cmd
}

func (c *WeatherCLI) getCmd() *cobra.Command {
	var flags struct {
		vars   string
		years  string
		start  string
		end    string
		format string
		json   bool
	}

	cmd := &cobra.Command{
		Use:   "get <lat> <lon>",
		Short: "Get weather data for a location (latitude, longitude)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := model.ParseLocation(args[0], args[1])
			if err != nil {
				return err
			}

			opts := model.QueryOptions{
				Vars:   model.SplitList(flags.vars),
				Years:  model.SplitList(flags.years),
				Start:  flags.start,
				End:    flags.end,
				Format: flags.format,
			}
			// the table is rendered locally from json
			if opts.Format == formatTable {
				opts.Format = formatJSON
			}

			logger.Debug("fetching weather data", logrus.Fields{"location": loc.String(), "format": opts.Format})

			resp, err := c.service.GetWeatherData(cmd.Context(), loc, opts)
			if err != nil {
				return err
			}

			switch {
			case flags.json || flags.format == formatJSON:
				return c.printJSON(resp)
			case flags.format == formatCSV:
				return c.printRaw(resp)
			}

			records, ok := resp.(model.Records)
			if !ok {
				return c.printJSON(resp)
			}

			fmt.Fprintf(c.out, "\nWeather Data — %s\n\n", loc)
			c.printRecords(records)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.vars, "vars", "", "Comma-separated weather variables (e.g., tmin,tmax,prcp)")
	f.StringVar(&flags.years, "years", "", "Comma-separated years (1980-2019)")
	f.StringVar(&flags.start, "start", "", "Start date (YYYY-MM-DD)")
	f.StringVar(&flags.end, "end", "", "End date (YYYY-MM-DD)")
	f.StringVar(&flags.format, "format", formatJSON, "Output format: json, csv or table")
	f.BoolVar(&flags.json, "json", false, "Output as JSON")

	return cmd
}

func (c *WeatherCLI) previewCmd() *cobra.Command {
	var flags struct {
		vars  string
		years string
		json  bool
		text  bool
	}

	cmd := &cobra.Command{
		Use:   "preview <lat> <lon>",
		Short: "Preview weather data in browser format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := model.ParseLocation(args[0], args[1])
			if err != nil {
				return err
			}

			opts := model.QueryOptions{
				Vars:  model.SplitList(flags.vars),
				Years: model.SplitList(flags.years),
			}

			logger.Debug("fetching preview", logrus.Fields{"location": loc.String()})

			resp, err := c.service.PreviewData(cmd.Context(), loc, opts)
			if err != nil {
				return err
			}

			if flags.json {
				return c.printJSON(resp)
			}

			if page, ok := resp.(model.Text); ok && flags.text {
				c.printText(service.PreviewText(string(page)))
				return nil
			}

			return c.printRaw(resp)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.vars, "vars", "", "Comma-separated weather variables")
	f.StringVar(&flags.years, "years", "", "Comma-separated years")
	f.BoolVar(&flags.json, "json", false, "Output as JSON")
	f.BoolVar(&flags.text, "text", false, "Strip HTML markup from the preview page")

	return cmd
}

func (c *WeatherCLI) varsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vars",
		Short: "List available weather variables",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(c.out, "\nAvailable Weather Variables\n\n")

			for _, v := range model.Variables {
				fmt.Fprintf(c.out, "%s - %s (%s)\n", padRight(v.Code, 6), padRight(v.Name, 25), v.Unit)
			}

			fmt.Fprint(c.out, "\nUse: ornl get <lat> <lon> --vars tmin,tmax,prcp\n\n")
		},
	}
}
