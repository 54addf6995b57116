//go:build release

package logging

// Build is the mode this binary was compiled in
const Build = BuildRelease
