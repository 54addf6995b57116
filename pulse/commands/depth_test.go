package commands

import (
	"testing"

	"github.com/oliverbestmann/dodgeball/pulse"
	"github.com/oliverbestmann/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepthStencilState(t *testing.T) {
	assert.Nil(t, depthStencilState(wgpu.TextureFormatUndefined, true))

	opaque := depthStencilState(pulse.DepthFormat, true)
	require.NotNil(t, opaque)
	assert.Equal(t, pulse.DepthFormat, opaque.Format)
	assert.Equal(t, wgpu.OptionalBoolTrue, opaque.DepthWriteEnabled)
	assert.Equal(t, wgpu.CompareFunctionLess, opaque.DepthCompare)

	blended := depthStencilState(pulse.DepthFormat, false)
	require.NotNil(t, blended)
	assert.Equal(t, wgpu.OptionalBoolFalse, blended.DepthWriteEnabled)
}

func TestDepthFormatOf(t *testing.T) {
	assert.Equal(t, wgpu.TextureFormatUndefined, depthFormatOf(pulse.RenderTarget{}))
	assert.Nil(t, depthAttachment(pulse.RenderTarget{}))
}
