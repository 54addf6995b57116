// Package logging selects and installs the log configuration of the game.
package logging

import "log/slog"

//go:generate go tool stringer -type=BuildMode -trimprefix=Build
type BuildMode uint8

const (
	BuildDebug BuildMode = iota
	BuildRelease
)

// Profile is a global log level together with a filter expression
// that can raise or lower the level per target.
type Profile struct {
	Level  slog.Level
	Filter string
}

// ProfileFor returns the fixed profile of the given build mode. Both profiles
// keep the wgpu subsystems quiet, as those are very chatty below warn.
func ProfileFor(mode BuildMode) Profile {
	switch mode {
	case BuildRelease:
		return Profile{
			Level:  slog.LevelInfo,
			Filter: "info,wgpu_core=warn,wgpu_hal=warn",
		}

	default:
		return Profile{
			Level:  slog.LevelDebug,
			Filter: "debug,wgpu_core=warn,wgpu_hal=warn,dodgeball=debug",
		}
	}
}

// DefaultProfile is used by the engine if no profile was selected explicitly
func DefaultProfile() Profile {
	return Profile{Level: slog.LevelInfo}
}

// LevelFor returns the minimum level configured for the given target.
// An invalid filter falls back to the profile's level.
func (p Profile) LevelFor(target string) slog.Level {
	if p.Filter == "" {
		return p.Level
	}

	filter, err := ParseFilter(p.Filter)
	if err != nil {
		return p.Level
	}

	return filter.LevelFor(target)
}
