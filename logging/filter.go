package logging

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Filter holds the minimum level per target. Targets are matched by
// prefix on '.' boundaries, the longest matching target wins.
type Filter struct {
	Default slog.Level
	Targets map[string]slog.Level
}

// ParseFilter parses a comma separated list of directives. A directive is
// either a bare level, which sets the default, or target=level.
func ParseFilter(text string) (Filter, error) {
	filter := Filter{
		Default: slog.LevelInfo,
		Targets: map[string]slog.Level{},
	}

	for directive := range strings.SplitSeq(text, ",") {
		directive = strings.TrimSpace(directive)
		if directive == "" {
			continue
		}

		target, levelText, hasTarget := strings.Cut(directive, "=")
		if !hasTarget {
			level, err := parseLevel(directive)
			if err != nil {
				return Filter{}, err
			}

			filter.Default = level
			continue
		}

		target = strings.TrimSpace(target)
		if target == "" {
			return Filter{}, fmt.Errorf("directive %q has no target", directive)
		}

		level, err := parseLevel(levelText)
		if err != nil {
			return Filter{}, fmt.Errorf("target %q: %w", target, err)
		}

		filter.Targets[target] = level
	}

	return filter, nil
}

// LevelFor returns the minimum level of records logged for the given target
func (f Filter) LevelFor(target string) slog.Level {
	level := f.Default
	matched := -1

	for prefix, targetLevel := range f.Targets {
		if len(prefix) <= matched || !targetMatches(target, prefix) {
			continue
		}

		level = targetLevel
		matched = len(prefix)
	}

	return level
}

// MinLevel returns the lowest level any target is enabled for
func (f Filter) MinLevel() slog.Level {
	level := f.Default
	for _, targetLevel := range f.Targets {
		level = min(level, targetLevel)
	}

	return level
}

func (f Filter) String() string {
	directives := []string{levelName(f.Default)}

	targets := make([]string, 0, len(f.Targets))
	for target := range f.Targets {
		targets = append(targets, target)
	}

	slices.Sort(targets)

	for _, target := range targets {
		directives = append(directives, target+"="+levelName(f.Targets[target]))
	}

	return strings.Join(directives, ",")
}

func targetMatches(target, prefix string) bool {
	if !strings.HasPrefix(target, prefix) {
		return false
	}

	return len(target) == len(prefix) || target[len(prefix)] == '.'
}

func parseLevel(text string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "off":
		return LevelOff, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", text)
	}
}

func levelName(level slog.Level) string {
	switch {
	case level <= LevelTrace:
		return "trace"
	case level >= LevelOff:
		return "off"
	default:
		return strings.ToLower(level.String())
	}
}

const (
	LevelTrace = slog.LevelDebug - 4
	LevelOff   = slog.LevelError + 100
)
