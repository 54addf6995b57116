package dodgeball

import (
	"log/slog"
	"slices"

	"github.com/oliverbestmann/dodgeball/assets"
	"github.com/oliverbestmann/dodgeball/ecs"
	"github.com/oliverbestmann/dodgeball/scene"
)

// TextureFixup switches tracked images to repeat addressing as soon as
// they finished loading, so they tile instead of clamping at the edges.
type TextureFixup struct {
	tracked []assets.Handle[scene.Image]
	reader  ecs.EventReader[assets.Event[scene.Image]]
}

// Track adds handles whose images should repeat
func (f *TextureFixup) Track(handles ...assets.Handle[scene.Image]) {
	for _, handle := range handles {
		if handle.IsZero() || slices.Contains(f.tracked, handle) {
			continue
		}

		f.tracked = append(f.tracked, handle)
	}
}

// Run reads all image events since the previous call. The repeat sampler
// is applied only on creation, the Modified event caused by the update
// is ignored. Events stay unread while there is no image store.
func (f *TextureFixup) Run(w *ecs.World) {
	images, ok := ecs.Resource[assets.Assets[scene.Image]](w)
	if !ok {
		return
	}

	events := f.reader.ReadFrom(w)
	if len(events) == 0 {
		return
	}

	for _, event := range events {
		if event.Kind != assets.EventCreated || !slices.Contains(f.tracked, event.Handle) {
			continue
		}

		image, ok := images.GetMut(event.Handle)
		if !ok {
			slog.Warn("Image of created event is not available", slog.String("handle", event.Handle.String()))
			continue
		}

		image.Sampler = RepeatSampler(image.Sampler)

		slog.Debug("Enabled repeat sampler", slog.String("handle", event.Handle.String()))
	}
}

// RepeatSampler returns the sampler with repeat addressing on all
// three axes. Filtering is kept.
func RepeatSampler(sampler scene.ImageSampler) scene.ImageSampler {
	sampler.AddressModeU = scene.AddressModeRepeat
	sampler.AddressModeV = scene.AddressModeRepeat
	sampler.AddressModeW = scene.AddressModeRepeat
	return sampler
}
