package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/wxui/internal/provider"
	"github.com/jmylchreest/wxui/internal/tui"
)

var providerOpts struct {
	airQuality bool
}

var providerCmd = &cobra.Command{
	Use:   "provider",
	Short: "Manage the weather and air quality providers",
	RunE:  runProviderGet,
}

var providerGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the selected providers",
	RunE:  runProviderGet,
}

var providerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the known providers",
	RunE:  runProviderList,
}

var providerSetCmd = &cobra.Command{
	Use:   "set <id>",
	Short: "Select a provider",
	Args:  cobra.ExactArgs(1),
	RunE:  runProviderSet,
}

var providerSelectCmd = &cobra.Command{
	Use:   "select",
	Short: "Pick a provider interactively",
	RunE:  runProviderSelect,
}

func init() {
	for _, cmd := range []*cobra.Command{providerSetCmd, providerSelectCmd} {
		cmd.Flags().BoolVar(&providerOpts.airQuality, "aqi", false,
			"Select the air quality provider instead of the weather one")
	}

	providerCmd.AddCommand(providerGetCmd, providerListCmd, providerSetCmd, providerSelectCmd)
	rootCmd.AddCommand(providerCmd)
}

func newSelector() *provider.Selector {
	return provider.NewSelector(provider.Options{
		Settings: settingsStore,
		Bus:      bus,
		Logger:   logger,
	})
}

func runProviderGet(cmd *cobra.Command, args []string) error {
	s := newSelector()
	defer s.Close()

	fmt.Printf("weather:     %s (%s)\n", s.Weather().Name, s.Weather().ID)
	fmt.Printf("air quality: %s (%s)\n", s.AirQuality().Name, s.AirQuality().ID)
	return nil
}

func runProviderList(cmd *cobra.Command, args []string) error {
	s := newSelector()
	defer s.Close()

	var rows [][]string
	add := func(role string, infos []provider.Info, current provider.ID) {
		for _, info := range infos {
			mark, notes := "", ""
			if info.ID == current {
				mark = "*"
			}
			if info.RequiresKey {
				notes = "API key"
			}
			rows = append(rows, []string{mark, string(info.ID), info.Name, role, notes})
		}
	}
	add("weather", provider.Weather(), s.Weather().ID)
	add("air quality", provider.AirQuality(), s.AirQuality().ID)

	fmt.Println(renderTable([]string{"", "ID", "Name", "Role", "Notes"}, rows))
	return nil
}

func runProviderSet(cmd *cobra.Command, args []string) error {
	s := newSelector()
	defer s.Close()

	id := provider.ID(args[0])
	if providerOpts.airQuality {
		return s.SetAirQuality(id)
	}
	return s.SetWeather(id)
}

func runProviderSelect(cmd *cobra.Command, args []string) error {
	s := newSelector()
	defer s.Close()

	infos, current, title := provider.Weather(), s.Weather().ID, "Weather provider"
	if providerOpts.airQuality {
		infos, current, title = provider.AirQuality(), s.AirQuality().ID, "Air quality provider"
	}

	choices := make([]tui.Choice, len(infos))
	for i, info := range infos {
		choices[i] = tui.Choice{Label: info.Name, Description: string(info.ID), Checked: info.ID == current}
	}

	idx, ok, err := tui.Choose(cmd.Context(), title, choices)
	if err != nil || !ok {
		return err
	}
	if providerOpts.airQuality {
		return s.SetAirQuality(infos[idx].ID)
	}
	return s.SetWeather(infos[idx].ID)
}
