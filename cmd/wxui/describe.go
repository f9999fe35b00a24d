package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/wxui/internal/adapter/input"
	"github.com/jmylchreest/wxui/internal/adapter/output"
	"github.com/jmylchreest/wxui/internal/weather"
)

var describeOpts struct {
	set      string // all, primary, small
	series   string // currently, minutely, hourly, daily
	limit    int
	format   string
	template string
	noColor  bool
	noTime   bool
}

var describeCmd = &cobra.Command{
	Use:   "describe [file]",
	Short: "Show the metric strips for a forecast",
	Long: `Read a forecast (JSON or YAML) and print the descriptors of the
enabled metrics for each sample.

The input may be a full forecast with currently/hourly/daily sections, a
single sample, or an array of samples. Use "-" to read standard input.

Examples:
  # Describe the current conditions
  wxui describe forecast.json

  # Small strip of the next 6 hours as JSON
  wxui describe forecast.json --series hourly --limit 6 --set small --format json

  # One line per metric with a template
  wxui describe forecast.json --template '{{.Title}}: {{.Item.Value}}{{"\n"}}'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)

	describeCmd.Flags().StringVar(&describeOpts.set, "set", "all",
		"Metrics to describe (all, primary, small)")
	describeCmd.Flags().StringVar(&describeOpts.series, "series", "currently",
		"Samples to describe (currently, minutely, hourly, daily)")
	describeCmd.Flags().IntVarP(&describeOpts.limit, "limit", "n", 0,
		"Maximum number of samples (0 = all)")
	describeCmd.Flags().StringVarP(&describeOpts.format, "format", "f", "",
		"Output format (plain, line, json, yaml; default from config)")
	describeCmd.Flags().StringVar(&describeOpts.template, "template", "",
		"Go template applied to each descriptor (plain format)")
	describeCmd.Flags().BoolVar(&describeOpts.noColor, "no-color", false,
		"Disable colored values")
	describeCmd.Flags().BoolVar(&describeOpts.noTime, "no-time", false,
		"Hide sample times")
}

func runDescribe(cmd *cobra.Command, args []string) error {
	source := "-"
	if len(args) == 1 {
		source = args[0]
	}

	format := describeOpts.format
	if format == "" {
		format = cfg.Output.Format
	}
	formatType, err := output.ParseFormat(format)
	if err != nil {
		return err
	}

	data, err := importData(cmd.Context(), source)
	if err != nil {
		return err
	}

	samples, err := selectSeries(data, describeOpts.series)
	if err != nil {
		return err
	}
	if describeOpts.limit > 0 && len(samples) > describeOpts.limit {
		samples = samples[:describeOpts.limit]
	}

	p := newPresenter()
	defer p.Close()

	collect := p.AllIconsData
	switch describeOpts.set {
	case "all":
	case "primary":
		collect = p.IconsData
	case "small":
		collect = p.SmallIconsData
	default:
		return fmt.Errorf("unknown set %q (want all, primary or small)", describeOpts.set)
	}

	rows := make([]output.Row, 0, len(samples))
	for i := range samples {
		s := &samples[i]
		rows = append(rows, output.Row{
			Time:  s.Time,
			Label: sampleLabel(s, describeOpts.series),
			Items: collect(s, weather.Options{}),
		})
	}

	opts := output.DefaultFormatterOptions()
	opts.Template = describeOpts.template
	opts.Color = cfg.Output.Color && !describeOpts.noColor
	opts.ShowTime = !describeOpts.noTime

	formatter := output.NewFormatter(formatType, opts)
	return formatter.Format(os.Stdout, rows)
}

func importData(ctx context.Context, source string) (*weather.Data, error) {
	adapter, err := input.NewAdapter(source)
	if err != nil {
		return nil, err
	}
	logger.Debug("importing forecast", "adapter", adapter.Name(), "source", source)
	return adapter.Import(ctx)
}

func selectSeries(data *weather.Data, series string) ([]weather.Sample, error) {
	switch series {
	case "currently":
		if data.Currently == nil {
			return nil, fmt.Errorf("forecast has no current conditions")
		}
		return []weather.Sample{*data.Currently}, nil
	case "minutely":
		return data.Minutely, nil
	case "hourly":
		return data.Hourly, nil
	case "daily":
		return data.Daily, nil
	default:
		return nil, fmt.Errorf("unknown series %q (want currently, minutely, hourly or daily)", series)
	}
}

func sampleLabel(s *weather.Sample, series string) string {
	if s.Time == 0 {
		return series
	}
	t := time.UnixMilli(s.Time)
	if series == "daily" {
		return t.Format("Mon 02 Jan")
	}
	return t.Format("Mon 15:04")
}
