package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileForDebug(t *testing.T) {
	profile := ProfileFor(BuildDebug)

	assert.Equal(t, slog.LevelDebug, profile.Level)
	assert.Contains(t, profile.Filter, "debug")

	filter, err := ParseFilter(profile.Filter)
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, filter.Default)
	assert.Equal(t, slog.LevelWarn, filter.Targets["wgpu_core"])
	assert.Equal(t, slog.LevelWarn, filter.Targets["wgpu_hal"])
}

func TestProfileForRelease(t *testing.T) {
	profile := ProfileFor(BuildRelease)

	assert.Equal(t, slog.LevelInfo, profile.Level)
	assert.True(t, strings.HasPrefix(profile.Filter, "info"))
	assert.NotContains(t, profile.Filter, "debug")

	filter, err := ParseFilter(profile.Filter)
	require.NoError(t, err)

	expected := Filter{
		Default: slog.LevelInfo,
		Targets: map[string]slog.Level{
			"wgpu_core": slog.LevelWarn,
			"wgpu_hal":  slog.LevelWarn,
		},
	}

	if diff := cmp.Diff(expected, filter); diff != "" {
		t.Errorf("ParseFilter() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFilter(t *testing.T) {
	testCases := []struct {
		name    string
		text    string
		want    Filter
		wantErr bool
	}{
		{
			name: "empty",
			text: "",
			want: Filter{Default: slog.LevelInfo, Targets: map[string]slog.Level{}},
		},
		{
			name: "only default",
			text: "warn",
			want: Filter{Default: slog.LevelWarn, Targets: map[string]slog.Level{}},
		},
		{
			name: "targets with spaces",
			text: " error , net = debug ,render.mesh=off",
			want: Filter{
				Default: slog.LevelError,
				Targets: map[string]slog.Level{
					"net":         slog.LevelDebug,
					"render.mesh": LevelOff,
				},
			},
		},
		{
			name:    "unknown level",
			text:    "loud",
			wantErr: true,
		},
		{
			name:    "missing target",
			text:    "=info",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			filter, err := ParseFilter(tc.text)
			if tc.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)

			if diff := cmp.Diff(tc.want, filter); diff != "" {
				t.Errorf("ParseFilter() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterLevelFor(t *testing.T) {
	filter, err := ParseFilter("info,render=debug,render.grid=error")
	require.NoError(t, err)

	assert.Equal(t, slog.LevelInfo, filter.LevelFor(""))
	assert.Equal(t, slog.LevelInfo, filter.LevelFor("renderer"))
	assert.Equal(t, slog.LevelDebug, filter.LevelFor("render"))
	assert.Equal(t, slog.LevelDebug, filter.LevelFor("render.mesh"))
	assert.Equal(t, slog.LevelError, filter.LevelFor("render.grid"))
	assert.Equal(t, slog.LevelDebug, filter.MinLevel())
}

func TestFilterString(t *testing.T) {
	filter, err := ParseFilter("wgpu_hal=warn,debug,wgpu_core=warn")
	require.NoError(t, err)

	assert.Equal(t, "debug,wgpu_core=warn,wgpu_hal=warn", filter.String())
}

func TestHandlerFiltersByTarget(t *testing.T) {
	var buf bytes.Buffer

	handler, err := NewHandler(&buf, ProfileFor(BuildDebug))
	require.NoError(t, err)

	logger := slog.New(handler)

	logger.Debug("game debug")
	Target(logger, "wgpu_core").Info("wgpu info")
	Target(logger, "wgpu_core").Warn("wgpu warn")
	logger.Info("inline target", slog.String(TargetKey, "wgpu_hal"))

	output := buf.String()
	assert.Contains(t, output, "game debug")
	assert.NotContains(t, output, "wgpu info")
	assert.Contains(t, output, "wgpu warn")
	assert.NotContains(t, output, "inline target")
}

func TestHandlerIgnoresGroupedTarget(t *testing.T) {
	var buf bytes.Buffer

	handler, err := NewHandler(&buf, ProfileFor(BuildDebug))
	require.NoError(t, err)

	logger := slog.New(handler)

	// inside a group the attribute is request.target, not the log target
	logger.WithGroup("request").With(slog.String(TargetKey, "wgpu_core")).Info("grouped with")
	logger.WithGroup("request").Info("grouped record", slog.String(TargetKey, "wgpu_core"))

	// a target set before the group still applies
	Target(logger, "wgpu_core").WithGroup("request").Info("targeted group")

	output := buf.String()
	assert.Contains(t, output, "grouped with")
	assert.Contains(t, output, "request.target=wgpu_core")
	assert.Contains(t, output, "grouped record")
	assert.NotContains(t, output, "targeted group")
}

func TestHandlerReleaseDropsDebug(t *testing.T) {
	var buf bytes.Buffer

	handler, err := NewHandler(&buf, ProfileFor(BuildRelease))
	require.NoError(t, err)

	logger := slog.New(handler)
	logger.Debug("hidden")
	logger.Info("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

func TestHandlerWithoutFilterUsesLevel(t *testing.T) {
	var buf bytes.Buffer

	handler, err := NewHandler(&buf, Profile{Level: slog.LevelWarn})
	require.NoError(t, err)

	logger := slog.New(handler)
	logger.Info("hidden")
	logger.WithGroup("group").Warn("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

func TestNewHandlerInvalidFilter(t *testing.T) {
	_, err := NewHandler(&bytes.Buffer{}, Profile{Filter: "very-loud"})
	require.Error(t, err)
}

func TestProfileLevelFor(t *testing.T) {
	debug := ProfileFor(BuildDebug)
	assert.Equal(t, slog.LevelWarn, debug.LevelFor("wgpu_core"))
	assert.Equal(t, slog.LevelDebug, debug.LevelFor("dodgeball"))
	assert.Equal(t, slog.LevelDebug, debug.LevelFor("assets"))

	plain := Profile{Level: slog.LevelError}
	assert.Equal(t, slog.LevelError, plain.LevelFor("wgpu_core"))

	broken := Profile{Level: slog.LevelInfo, Filter: "nope"}
	assert.Equal(t, slog.LevelInfo, broken.LevelFor("wgpu_core"))
}
