package appearance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"
)

// XDG desktop portal identifiers.
const (
	PortalBusName   = "org.freedesktop.portal.Desktop"
	PortalPath      = "/org/freedesktop/portal/desktop"
	PortalInterface = "org.freedesktop.portal.Settings"
	PortalNamespace = "org.freedesktop.appearance"
	PortalKey       = "color-scheme"
)

// Portal color-scheme values.
const (
	ColorSchemeNoPreference uint32 = 0
	ColorSchemePreferDark   uint32 = 1
	ColorSchemePreferLight  uint32 = 2
)

// FromColorScheme maps a portal color-scheme value to an Appearance.
func FromColorScheme(v uint32) Appearance {
	if v == ColorSchemePreferDark {
		return Dark
	}
	return Light
}

// Portal reads the appearance from the XDG desktop portal over the session bus.
type Portal struct {
	conn   *dbus.Conn
	logger *slog.Logger
}

// NewPortal connects to the session bus.
func NewPortal(logger *slog.Logger) (*Portal, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	return &Portal{conn: conn, logger: logger}, nil
}

// Name implements Source.
func (p *Portal) Name() string { return "portal" }

// Current implements Source.
func (p *Portal) Current(ctx context.Context) (Appearance, error) {
	if p.conn == nil {
		return Light, ErrUnavailable
	}

	obj := p.conn.Object(PortalBusName, PortalPath)

	var value dbus.Variant
	err := obj.CallWithContext(ctx, PortalInterface+".ReadOne", 0, PortalNamespace, PortalKey).Store(&value)
	if err != nil {
		// Portals before version 2 only implement Read, which wraps the value twice
		p.logger.Debug("ReadOne failed, falling back to Read", "error", err)
		if err := obj.CallWithContext(ctx, PortalInterface+".Read", 0, PortalNamespace, PortalKey).Store(&value); err != nil {
			return Light, fmt.Errorf("failed to read %s %s: %w", PortalNamespace, PortalKey, err)
		}
	}

	scheme, ok := colorSchemeFromVariant(value)
	if !ok {
		return Light, fmt.Errorf("unexpected %s value type %s", PortalKey, value.Signature())
	}
	return FromColorScheme(scheme), nil
}

// Watch implements Source.
func (p *Portal) Watch(ctx context.Context, fn func(Appearance)) error {
	if p.conn == nil {
		return ErrUnavailable
	}

	opts := []dbus.MatchOption{
		dbus.WithMatchObjectPath(PortalPath),
		dbus.WithMatchInterface(PortalInterface),
		dbus.WithMatchMember("SettingChanged"),
		dbus.WithMatchArg(0, PortalNamespace),
	}
	if err := p.conn.AddMatchSignalContext(ctx, opts...); err != nil {
		return fmt.Errorf("failed to add SettingChanged match: %w", err)
	}

	ch := make(chan *dbus.Signal, 10)
	p.conn.Signal(ch)

	go func() {
		defer func() {
			p.conn.RemoveSignal(ch)
			if err := p.conn.RemoveMatchSignal(opts...); err != nil {
				p.logger.Debug("failed to remove SettingChanged match", "error", err)
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case sig, ok := <-ch:
				if !ok {
					return
				}
				if a, ok := parseSettingChanged(sig); ok {
					p.logger.Debug("portal appearance changed", "appearance", a)
					fn(a)
				}
			}
		}
	}()

	p.logger.Info("watching portal color-scheme")
	return nil
}

// Close releases the bus connection.
func (p *Portal) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}

// parseSettingChanged extracts the appearance from a SettingChanged signal.
// Signal body: (namespace string, key string, value variant).
func parseSettingChanged(sig *dbus.Signal) (Appearance, bool) {
	if sig == nil || sig.Name != PortalInterface+".SettingChanged" || len(sig.Body) < 3 {
		return Light, false
	}
	ns, ok := sig.Body[0].(string)
	if !ok || ns != PortalNamespace {
		return Light, false
	}
	key, ok := sig.Body[1].(string)
	if !ok || key != PortalKey {
		return Light, false
	}
	v, ok := sig.Body[2].(dbus.Variant)
	if !ok {
		return Light, false
	}
	scheme, ok := colorSchemeFromVariant(v)
	if !ok {
		return Light, false
	}
	return FromColorScheme(scheme), true
}

// colorSchemeFromVariant unwraps nested variants down to the uint32 value.
func colorSchemeFromVariant(v dbus.Variant) (uint32, bool) {
	for i := 0; i < 3; i++ {
		switch inner := v.Value().(type) {
		case uint32:
			return inner, true
		case dbus.Variant:
			v = inner
		default:
			return 0, false
		}
	}
	return 0, false
}
