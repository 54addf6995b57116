//go:build !profile

package main

type noProfiling struct{}

func (noProfiling) Stop() {}

func startProfiling() interface{ Stop() } {
	return noProfiling{}
}
