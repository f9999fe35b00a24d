package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/wxui/internal/appearance"
	"github.com/jmylchreest/wxui/internal/settings"
	"github.com/jmylchreest/wxui/internal/theme"
	"github.com/jmylchreest/wxui/internal/tui"
)

var themeOpts struct {
	autoDark bool // Toggle from dark goes to auto instead of light
}

// themeCmd represents the theme command group.
var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage the display theme",
	Long: `Manage the display theme preference.

The preference is one of auto, light, dark or black. Auto follows the
desktop light/dark setting and becomes black on a dark desktop when
auto_black is enabled.`,
	RunE: runThemeGet,
}

var themeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the theme preference",
	RunE:  runThemeGet,
}

var themeSetCmd = &cobra.Command{
	Use:       "set <auto|light|dark|black>",
	Short:     "Set the theme preference",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"auto", "light", "dark", "black"},
	RunE:      runThemeSet,
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle between dark and light",
	Long:  `Switch dark to light (or auto with --auto) and anything else to dark.`,
	RunE:  runThemeToggle,
}

var themeSelectCmd = &cobra.Command{
	Use:   "select",
	Short: "Pick the theme interactively",
	RunE:  runThemeSelect,
}

var themeResolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Show the display mode the preference resolves to",
	RunE:  runThemeResolve,
}

var themeAutoBlackCmd = &cobra.Command{
	Use:   "auto-black <on|off>",
	Short: "Use black instead of dark when auto follows a dark desktop",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemeAutoBlack,
}

func init() {
	themeToggleCmd.Flags().BoolVar(&themeOpts.autoDark, "auto", false,
		"Toggle dark to auto instead of light")

	themeCmd.AddCommand(themeGetCmd, themeSetCmd, themeToggleCmd, themeSelectCmd,
		themeResolveCmd, themeAutoBlackCmd)
	rootCmd.AddCommand(themeCmd)
}

func runThemeGet(cmd *cobra.Command, args []string) error {
	c := newController(appearance.NewStatic(appearance.Light))
	fmt.Println(c.Theme())
	return nil
}

func runThemeSet(cmd *cobra.Command, args []string) error {
	m, err := theme.ParseModeStrict(args[0])
	if err != nil {
		return err
	}
	c := newController(appearance.NewStatic(appearance.Light))
	c.Set(m)
	fmt.Printf("Theme: %s\n", theme.DisplayName(m, nil))
	return nil
}

func runThemeToggle(cmd *cobra.Command, args []string) error {
	c := newController(appearance.NewStatic(appearance.Light))
	c.Toggle(themeOpts.autoDark)
	fmt.Printf("Theme: %s\n", theme.DisplayName(theme.ParseMode(settingsStore.GetString(settings.KeyTheme, "")), nil))
	return nil
}

func runThemeSelect(cmd *cobra.Command, args []string) error {
	c := newController(appearance.NewStatic(appearance.Light))

	var failed error
	c.Select(cmd.Context(), tui.ThemePicker{}, func(err error) {
		failed = err
	})
	return failed
}

func runThemeResolve(cmd *cobra.Command, args []string) error {
	src, closer := openAppearance(cmd.Context())
	defer func() { _ = closer.Close() }()

	c := newController(src)
	c.Start(cmd.Context(), false)
	defer c.Stop()

	fmt.Printf("%s (preference: %s, dark: %t)\n", c.Effective(), c.Theme(), c.IsDark())
	return nil
}

func runThemeAutoBlack(cmd *cobra.Command, args []string) error {
	var on bool
	switch args[0] {
	case "on", "true", "yes":
		on = true
	case "off", "false", "no":
	default:
		return fmt.Errorf("expected on or off, got %q", args[0])
	}
	return settingsStore.SetBool(settings.KeyAutoBlack, on)
}
