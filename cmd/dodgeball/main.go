package main

import (
	"log/slog"
	"os"

	"github.com/oliverbestmann/dodgeball/dodgeball"
	"github.com/oliverbestmann/dodgeball/logging"
	"github.com/oliverbestmann/dodgeball/orion"
	"github.com/oliverbestmann/dodgeball/orion/desktop"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Dodgeball failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func run() error {
	prof := startProfiling()
	defer prof.Stop()

	app := orion.NewApp()

	app.AddPlugin(
		desktop.DefaultPlugins().
			Set(desktop.WindowPlugin{Title: "dodgeball"}).
			Set(orion.AssetPlugin{FS: assetsFS()}).
			Set(orion.LogPlugin{Profile: logging.ProfileFor(logging.Build)}),
	)

	app.AddPlugin(dodgeball.Plugin{Variant: dodgeball.VariantDemo})

	slog.Info("Starting dodgeball runtime...")

	return app.Run()
}
