package orion

import (
	"io/fs"
	"log/slog"
	"os"
	"reflect"

	"github.com/oliverbestmann/dodgeball/assets"
	"github.com/oliverbestmann/dodgeball/ecs"
	"github.com/oliverbestmann/dodgeball/logging"
	"github.com/oliverbestmann/dodgeball/scene"
)

// PluginGroup is an ordered set of plugins that is added as one
type PluginGroup struct {
	plugins []Plugin
}

func NewPluginGroup(plugins ...Plugin) PluginGroup {
	return PluginGroup{plugins: plugins}
}

// Set replaces the plugin of the same type within the group, or appends
// the plugin if the group does not contain a plugin of its type.
func (g PluginGroup) Set(plugin Plugin) PluginGroup {
	typ := reflect.TypeOf(plugin)

	plugins := make([]Plugin, 0, len(g.plugins)+1)

	replaced := false
	for _, member := range g.plugins {
		if reflect.TypeOf(member) == typ {
			plugins = append(plugins, plugin)
			replaced = true
			continue
		}

		plugins = append(plugins, member)
	}

	if !replaced {
		plugins = append(plugins, plugin)
	}

	return PluginGroup{plugins: plugins}
}

// Add appends more plugins to the group
func (g PluginGroup) Add(plugins ...Plugin) PluginGroup {
	return PluginGroup{plugins: append(g.plugins[:len(g.plugins):len(g.plugins)], plugins...)}
}

func (g PluginGroup) Plugins() []Plugin {
	return g.plugins
}

// Build adds all plugins of the group. Adding a group directly
// to an App does the same.
func (g PluginGroup) Build(app *App) {
	app.AddPlugin(g.plugins...)
}

// MinimalPlugins contains everything needed to run an App without
// a window, e.g. in tests.
func MinimalPlugins() PluginGroup {
	return NewPluginGroup(
		LogPlugin{},
		TimePlugin{},
		InputPlugin{},
		AssetPlugin{},
		ImagePlugin{},
	)
}

// LogSettings holds the log profile the app was configured with
type LogSettings struct {
	Profile logging.Profile
}

// LogPlugin installs the default slog handler. Without a profile,
// everything from info upwards is logged.
type LogPlugin struct {
	Profile logging.Profile

	// do not touch slog.Default, only record the profile
	SkipInstall bool
}

func (p LogPlugin) Build(app *App) {
	profile := p.Profile
	if profile == (logging.Profile{}) {
		profile = logging.DefaultProfile()
	}

	if !p.SkipInstall {
		if err := logging.Init(profile); err != nil {
			slog.Warn("Failed to install log profile", slog.String("err", err.Error()))
		}
	}

	app.InsertResource(&LogSettings{Profile: profile})
}

// AssetPlugin installs the asset Server. Completed loads are inserted
// into their Assets store during PreUpdate.
type AssetPlugin struct {
	// file system assets are loaded from. Defaults to the "assets" directory
	FS fs.FS

	MaxConcurrentLoads int64
}

func (p AssetPlugin) Build(app *App) {
	fsys := p.FS
	if fsys == nil {
		fsys = os.DirFS("assets")
	}

	server := assets.NewServer(fsys, assets.ServerOptions{
		MaxConcurrentLoads: p.MaxConcurrentLoads,
	})

	app.InsertResource(server)
	app.OnExit(server.Close)

	app.AddSystems(PreUpdate, func(w *ecs.World) {
		server.Apply(w)
	})
}

// AddAssets registers the Assets store for T together with its lifecycle
// events. Pending events are published during Last, so readers see them
// in the next tick.
func AddAssets[T any](app *App) {
	if ecs.HasResource[assets.Assets[T]](app.World()) {
		return
	}

	app.InsertResource(assets.NewAssets[T]())
	AddEvent[assets.Event[T]](app)

	app.AddSystems(Last, func(w *ecs.World) {
		store := ecs.MustResource[assets.Assets[T]](w)
		events := ecs.MustResource[ecs.Events[assets.Event[T]]](w)
		store.FlushEvents(events)
	})
}

// ImagePlugin registers the scene types backed by assets and the image loader.
// Requires the AssetPlugin.
type ImagePlugin struct{}

func (ImagePlugin) Build(app *App) {
	AddAssets[scene.Image](app)
	AddAssets[scene.Mesh](app)
	AddAssets[scene.StandardMaterial](app)

	server := ecs.MustResource[assets.Server](app.World())
	assets.RegisterLoader[scene.Image](server, scene.LoadImage, scene.ImageExtensions...)

	if !ecs.HasResource[scene.ClearColor](app.World()) {
		app.InsertResource(&scene.ClearColor{Color: scene.ColorRGB(0.2, 0.2, 0.2)})
	}
}
