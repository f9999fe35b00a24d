package appearance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	assert.Equal(t, Dark, Parse("dark"))
	assert.Equal(t, Light, Parse("light"))
	assert.Equal(t, Light, Parse(""))
	assert.Equal(t, Light, Parse("black"))
}

func TestFromColorScheme(t *testing.T) {
	tests := []struct {
		value    uint32
		expected Appearance
	}{
		{ColorSchemeNoPreference, Light},
		{ColorSchemePreferDark, Dark},
		{ColorSchemePreferLight, Light},
		{42, Light},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FromColorScheme(tt.value), "value %d", tt.value)
	}
}

func TestColorSchemeFromVariant_Nested(t *testing.T) {
	v, ok := colorSchemeFromVariant(dbus.MakeVariant(uint32(1)))
	require.True(t, ok)
	assert.Equal(t, uint32(1), v)

	nested := dbus.MakeVariant(dbus.MakeVariant(uint32(2)))
	v, ok = colorSchemeFromVariant(nested)
	require.True(t, ok)
	assert.Equal(t, uint32(2), v)

	_, ok = colorSchemeFromVariant(dbus.MakeVariant("dark"))
	assert.False(t, ok)
}

func TestParseSettingChanged(t *testing.T) {
	sig := &dbus.Signal{
		Name: PortalInterface + ".SettingChanged",
		Body: []interface{}{PortalNamespace, PortalKey, dbus.MakeVariant(uint32(1))},
	}
	a, ok := parseSettingChanged(sig)
	require.True(t, ok)
	assert.Equal(t, Dark, a)

	other := &dbus.Signal{
		Name: PortalInterface + ".SettingChanged",
		Body: []interface{}{"org.gnome.desktop.interface", "gtk-theme", dbus.MakeVariant("Adwaita")},
	}
	_, ok = parseSettingChanged(other)
	assert.False(t, ok)

	_, ok = parseSettingChanged(&dbus.Signal{Name: "org.example.Other"})
	assert.False(t, ok)

	_, ok = parseSettingChanged(nil)
	assert.False(t, ok)
}

func TestStatic_WatchAndSet(t *testing.T) {
	s := NewStatic(Light)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var got []Appearance
	require.NoError(t, s.Watch(ctx, func(a Appearance) { got = append(got, a) }))

	s.Set(Light)
	s.Set(Dark)
	s.Set(Dark)

	current, err := s.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, Dark, current)
	assert.Equal(t, []Appearance{Dark}, got)
}

func TestStatic_CancelledWatcherSkipped(t *testing.T) {
	s := NewStatic(Light)

	kept := make(chan Appearance, 4)
	require.NoError(t, s.Watch(t.Context(), func(a Appearance) { kept <- a }))

	ctx, cancel := context.WithCancel(t.Context())
	dropped := make(chan Appearance, 4)
	require.NoError(t, s.Watch(ctx, func(a Appearance) { dropped <- a }))

	s.Set(Dark)
	assert.Equal(t, Dark, <-kept)
	assert.Equal(t, Dark, <-dropped)

	cancel()
	assert.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.watchers[1] == nil
	}, time.Second, 10*time.Millisecond)

	s.Set(Light)
	assert.Equal(t, Light, <-kept)
	assert.Empty(t, dropped)
}

func TestTerminal_Current(t *testing.T) {
	term := &Terminal{detect: func() bool { return true }}
	a, err := term.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Dark, a)

	term.detect = func() bool { return false }
	a, err = term.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Light, a)
	assert.NoError(t, term.Watch(context.Background(), nil))
}

type failingSource struct{}

func (failingSource) Name() string { return "failing" }
func (failingSource) Current(context.Context) (Appearance, error) {
	return Light, errors.New("no bus")
}
func (failingSource) Watch(context.Context, func(Appearance)) error { return ErrUnavailable }

func TestFirstAvailable(t *testing.T) {
	dark := NewStatic(Dark)
	src := FirstAvailable(context.Background(), nil, failingSource{}, nil, dark)
	assert.Same(t, dark, src)

	fallback := FirstAvailable(context.Background(), nil, failingSource{})
	a, err := fallback.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Light, a)
}

func TestPortal_NoConnection(t *testing.T) {
	p := &Portal{}
	_, err := p.Current(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, p.Watch(context.Background(), func(Appearance) {}), ErrUnavailable)
	assert.NoError(t, p.Close())
}
