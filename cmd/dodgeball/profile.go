//go:build profile

package main

import "github.com/pkg/profile"

func startProfiling() interface{ Stop() } {
	return profile.Start(profile.CPUProfile, profile.ProfilePath("."))
}
