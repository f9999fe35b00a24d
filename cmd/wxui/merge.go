package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/wxui/internal/adapter/output"
	"github.com/jmylchreest/wxui/internal/weather"
)

var mergeOpts struct {
	format string
}

var mergeCmd = &cobra.Command{
	Use:   "merge <main> <added>...",
	Short: "Merge forecasts from several providers",
	Long: `Overlay the values of each added forecast onto the main one and print
the result.

Series samples are matched by time; only the range where the series
overlap is changed, so the main forecast keeps its length. Current
conditions are overlaid field by field.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringVarP(&mergeOpts.format, "format", "f", "json",
		"Output format (json, yaml)")
}

func runMerge(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(mergeOpts.format)
	if err != nil {
		return err
	}

	base, err := importData(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	added := make([]*weather.Data, 0, len(args)-1)
	for _, source := range args[1:] {
		d, err := importData(cmd.Context(), source)
		if err != nil {
			return err
		}
		added = append(added, d)
	}

	weather.Merge(base, added...)
	return output.Encode(os.Stdout, format, base)
}
