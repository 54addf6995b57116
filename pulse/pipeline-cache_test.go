package pulse

import (
	"errors"
	"testing"

	"github.com/oliverbestmann/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errShader = errors.New("shader does not compile")

type failingPipelineConfig struct {
	Format wgpu.TextureFormat
	calls  *int
}

func (conf failingPipelineConfig) Specialize(dev *wgpu.Device) (*wgpu.RenderPipeline, error) {
	*conf.calls++
	return nil, errShader
}

func TestPipelineCacheReturnsSpecializeError(t *testing.T) {
	cache := NewPipelineCache[failingPipelineConfig](&Context{})

	var calls int
	conf := failingPipelineConfig{Format: wgpu.TextureFormatBGRA8Unorm, calls: &calls}

	_, err := cache.Get(conf)
	require.Error(t, err)
	assert.ErrorIs(t, err, errShader)
	assert.Contains(t, err.Error(), "build pipeline")

	// failures are not cached, the next frame tries again
	_, err = cache.Get(conf)
	assert.ErrorIs(t, err, errShader)
	assert.Equal(t, 2, calls)
}
