package pulse

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/oliverbestmann/webgpu/wgpu"
)

var forceFallbackAdapter = os.Getenv("WGPU_FORCE_FALLBACK_ADAPTER") == "1"

// log level requested using the environment, overrides SetLogLevel
var envLogLevel, hasEnvLogLevel = parseEnvLogLevel(os.Getenv("WGPU_LOG_LEVEL"))

func init() {
	runtime.LockOSThread()

	if hasEnvLogLevel {
		wgpu.SetLogLevel(envLogLevel)
	}
}

func parseEnvLogLevel(value string) (wgpu.LogLevel, bool) {
	switch strings.ToUpper(value) {
	case "OFF":
		return wgpu.LogLevelOff, true
	case "ERROR":
		return wgpu.LogLevelError, true
	case "WARN":
		return wgpu.LogLevelWarn, true
	case "INFO":
		return wgpu.LogLevelInfo, true
	case "DEBUG":
		return wgpu.LogLevelDebug, true
	case "TRACE":
		return wgpu.LogLevelTrace, true
	default:
		return 0, false
	}
}

// SetLogLevel forwards the given slog level to the native wgpu logger.
// A level set through WGPU_LOG_LEVEL takes precedence.
func SetLogLevel(level slog.Level) {
	if hasEnvLogLevel {
		return
	}

	wgpu.SetLogLevel(LogLevelOf(level))
}

// LogLevelOf maps a slog level to the closest wgpu log level
func LogLevelOf(level slog.Level) wgpu.LogLevel {
	switch {
	case level < slog.LevelDebug:
		return wgpu.LogLevelTrace
	case level < slog.LevelInfo:
		return wgpu.LogLevelDebug
	case level < slog.LevelWarn:
		return wgpu.LogLevelInfo
	case level < slog.LevelError:
		return wgpu.LogLevelWarn
	case level == slog.LevelError:
		return wgpu.LogLevelError
	default:
		return wgpu.LogLevelOff
	}
}

// Context encapsulates the low level state of the webgpu context,
// this includes the Device, Surface and active Adapter
type Context struct {
	*wgpu.Device
	*wgpu.Queue
	Surface *wgpu.Surface
	Adapter *wgpu.Adapter
}

func New(sd *wgpu.SurfaceDescriptor) (st *Context, err error) {
	defer func() {
		if err != nil && st != nil {
			st.Release()
			st = nil
		}
	}()

	st = &Context{}

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	st.Surface = instance.CreateSurface(sd)

	st.Adapter, err = instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    st.Surface,
	})

	if err != nil {
		return st, fmt.Errorf("request adapter: %w", err)
	}

	st.Device, err = st.Adapter.RequestDevice(nil)
	if err != nil {
		return st, fmt.Errorf("request device: %w", err)
	}

	st.Queue = st.Device.GetQueue()

	return st, nil
}

func (d *Context) Release() {
	if d.Queue != nil {
		d.Queue.Release()
		d.Queue = nil
	}

	if d.Device != nil {
		d.Device.Release()
		d.Device = nil
	}

	if d.Adapter != nil {
		d.Adapter.Release()
		d.Adapter = nil
	}

	if d.Surface != nil {
		d.Surface.Release()
		d.Surface = nil
	}
}
