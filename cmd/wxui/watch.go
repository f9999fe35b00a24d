package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/wxui/internal/adapter/output"
	"github.com/jmylchreest/wxui/internal/events"
	"github.com/jmylchreest/wxui/internal/settings"
	"github.com/jmylchreest/wxui/internal/weather"
)

var watchOpts struct {
	format string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow theme, metric and provider changes",
	Long: `Run the theme controller against the desktop appearance and print every
event it emits, together with metric strip and provider changes made by
other processes.

Press Ctrl+C to stop.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml)")
}

var eventNameStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4FC3F7"))

// watchedEvent is the printed form of a bus event.
type watchedEvent struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Time string `json:"time" yaml:"time"`
	Data any    `json:"data" yaml:"data"`
}

func runWatch(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(watchOpts.format)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src, closer := openAppearance(ctx)
	defer func() { _ = closer.Close() }()

	names := []string{events.NameTheme, events.NameWeatherData, events.NameProvider, events.NameAQIProvider}
	subs := make([]<-chan events.Event, len(names))
	for i, name := range names {
		subs[i] = bus.Subscribe(name)
	}

	controller := newController(src)
	presenter := newPresenter()
	defer presenter.Close()
	selector := newSelector()
	defer selector.Close()

	if cfg.Settings.Watch {
		fw, err := settings.NewFileWatcher(settingsStore, nil)
		if err != nil {
			logger.Warn("failed to create settings watcher", "error", err)
		} else if err := fw.Start(); err != nil {
			logger.Warn("failed to start settings watcher", "error", err)
		} else {
			defer func() { _ = fw.Stop() }()
		}
	}

	// Pick up strip edits from other processes
	reload := func(settings.Change) {
		presenter.Load()
		bus.Notify(events.NameWeatherData, weather.WeatherDataChange{
			Primary: presenter.Primary(),
			Small:   presenter.Small(),
		})
	}
	defer settingsStore.OnKey(settings.KeyCommonData, reload)()
	defer settingsStore.OnKey(settings.KeyCommonSmallData, reload)()

	controller.Start(ctx, false)
	defer controller.Stop()

	fmt.Fprintf(os.Stderr, "watching (theme %s, resolved %s, source %s)\n",
		controller.Theme(), controller.Effective(), src.Name())

	merged := mergeEvents(ctx, subs)
	for ev := range merged {
		if err := printEvent(format, ev); err != nil {
			return err
		}
	}
	return nil
}

func mergeEvents(ctx context.Context, subs []<-chan events.Event) <-chan events.Event {
	out := make(chan events.Event)
	var wg sync.WaitGroup
	for _, sub := range subs {
		wg.Add(1)
		go func(ch <-chan events.Event) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case ev, ok := <-ch:
					if !ok {
						return
					}
					select {
					case out <- ev:
					case <-ctx.Done():
						return
					}
				}
			}
		}(sub)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

func printEvent(format output.FormatType, ev events.Event) error {
	if format == output.FormatJSON || format == output.FormatYAML {
		return output.Encode(os.Stdout, format, watchedEvent{
			ID:   ev.ID,
			Name: ev.Name,
			Time: ev.Time.Format("2006-01-02T15:04:05.000Z07:00"),
			Data: ev.Data,
		})
	}
	_, err := fmt.Printf("%s %s %v\n", ev.Time.Format("15:04:05"), eventNameStyle.Render(ev.Name), ev.Data)
	return err
}
