package main

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/wxui/internal/weather"
)

var dataOpts struct {
	set string // primary or small
}

// dataCmd represents the data command group.
var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Manage the weather metric strips",
	Long: `Manage which weather metrics are shown under each forecast row.

There are two strips: the primary strip and the small strip. Both are
stored as JSON arrays of metric keys in the settings file.`,
	RunE: runDataList,
}

var dataListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the enabled metrics",
	RunE:  runDataList,
}

var dataAvailableCmd = &cobra.Command{
	Use:   "available",
	Short: "Show the metrics that can be enabled",
	RunE:  runDataAvailable,
}

var dataSetCmd = &cobra.Command{
	Use:   "set [metric...]",
	Short: "Replace a strip",
	Long:  `Replace the primary (or, with --set small, the small) strip. No metrics clears it.`,
	RunE:  runDataSet,
}

var dataEnableCmd = &cobra.Command{
	Use:   "enable <metric>",
	Short: "Add a metric to a strip",
	Args:  cobra.ExactArgs(1),
	RunE:  runDataEnable,
}

var dataDisableCmd = &cobra.Command{
	Use:   "disable <metric>",
	Short: "Remove a metric from both strips",
	Args:  cobra.ExactArgs(1),
	RunE:  runDataDisable,
}

func init() {
	for _, cmd := range []*cobra.Command{dataSetCmd, dataEnableCmd} {
		cmd.Flags().StringVar(&dataOpts.set, "set", "primary", "Strip to change (primary, small)")
	}

	dataCmd.AddCommand(dataListCmd, dataAvailableCmd, dataSetCmd, dataEnableCmd, dataDisableCmd)
	rootCmd.AddCommand(dataCmd)
}

func newPresenter() *weather.Presenter {
	return weather.NewPresenter(weather.PresenterOptions{
		Settings: settingsStore,
		Bus:      bus,
		Logger:   logger,
	})
}

func runDataList(cmd *cobra.Command, args []string) error {
	p := newPresenter()
	defer p.Close()

	var rows [][]string
	for _, k := range p.Primary() {
		rows = append(rows, []string{"primary", string(k), weather.Title(k, nil)})
	}
	for _, k := range p.Small() {
		rows = append(rows, []string{"small", string(k), weather.Title(k, nil)})
	}
	fmt.Println(renderTable([]string{"Strip", "Metric", "Title"}, rows))
	return nil
}

func runDataAvailable(cmd *cobra.Command, args []string) error {
	p := newPresenter()
	defer p.Close()

	rows := make([][]string, 0, len(weather.Available))
	for _, k := range weather.Available {
		mark := ""
		if p.IsEnabled(k) {
			mark = "*"
		}
		rows = append(rows, []string{mark, string(k), weather.Title(k, nil)})
	}
	fmt.Println(renderTable([]string{"", "Metric", "Title"}, rows))
	return nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("238"))).
		Headers(headers...).
		Rows(rows...)
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle.Padding(0, 1)
		}
		return lipgloss.NewStyle().Padding(0, 1)
	})
	return t.Render()
}

func parseProps(args []string) ([]weather.Prop, error) {
	props := make([]weather.Prop, 0, len(args))
	for _, a := range args {
		k := weather.Prop(a)
		if !weather.Known(k) {
			return nil, fmt.Errorf("unknown metric %q", a)
		}
		props = append(props, k)
	}
	return props, nil
}

func runDataSet(cmd *cobra.Command, args []string) error {
	props, err := parseProps(args)
	if err != nil {
		return err
	}

	p := newPresenter()
	defer p.Close()

	switch dataOpts.set {
	case "primary":
		p.Update(props, p.Small(), true)
	case "small":
		p.Update(p.Primary(), props, true)
	default:
		return fmt.Errorf("unknown strip %q (want primary or small)", dataOpts.set)
	}
	return nil
}

func runDataEnable(cmd *cobra.Command, args []string) error {
	props, err := parseProps(args)
	if err != nil {
		return err
	}
	key := props[0]

	p := newPresenter()
	defer p.Close()

	if p.IsEnabled(key) {
		fmt.Printf("%s is already enabled\n", key)
		return nil
	}
	switch dataOpts.set {
	case "primary":
		p.Update(append(p.Primary(), key), p.Small(), true)
	case "small":
		p.Update(p.Primary(), append(p.Small(), key), true)
	default:
		return fmt.Errorf("unknown strip %q (want primary or small)", dataOpts.set)
	}
	return nil
}

func runDataDisable(cmd *cobra.Command, args []string) error {
	key := weather.Prop(args[0])

	p := newPresenter()
	defer p.Close()

	if !p.IsEnabled(key) {
		fmt.Printf("%s is not enabled\n", key)
		return nil
	}
	drop := func(list []weather.Prop) []weather.Prop {
		return slices.DeleteFunc(list, func(k weather.Prop) bool { return k == key })
	}
	p.Update(drop(p.Primary()), drop(p.Small()), true)
	return nil
}
