package gpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/ribbon.wgsl
var ribbonShaderSource string

// UniformSize is the byte size of the ribbon shader uniform block.
const UniformSize = 112

// Entry points of the ribbon shader.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// ShaderSource returns the WGSL source of the reference ribbon shader. It
// reads the attributes at the locations of ribbon.VertexLayouts.
func ShaderSource() string {
	return ribbonShaderSource
}

// CompileShader compiles the ribbon shader to SPIR-V words.
func CompileShader() ([]uint32, error) {
	spirvBytes, err := naga.Compile(ribbonShaderSource)
	if err != nil {
		return nil, fmt.Errorf("ribbon/gpu: compile shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("ribbon/gpu: SPIR-V length %d is not word aligned", len(spirvBytes))
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return words, nil
}

// ShaderDevice is the subset of hal.Device needed to create the shader
// module.
type ShaderDevice interface {
	CreateShaderModule(desc *hal.ShaderModuleDescriptor) (hal.ShaderModule, error)
}

// NewShaderModule compiles the ribbon shader and creates a module on device.
func NewShaderModule(device ShaderDevice) (hal.ShaderModule, error) {
	spirv, err := CompileShader()
	if err != nil {
		return nil, err
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "ribbon-shader",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("ribbon/gpu: create shader module: %w", err)
	}
	return module, nil
}

// Uniforms mirrors the shader uniform block.
type Uniforms struct {
	// ViewProj is a column-major view-projection matrix.
	ViewProj [16]float32

	// Resolution is the viewport size in pixels.
	Resolution [2]float32

	// LineWidth is the ribbon width in clip space units.
	LineWidth float32

	// SizeAttenuation is 1 to shrink ribbons with distance, 0 for constant
	// screen width.
	SizeAttenuation float32

	// ColorStart and ColorEnd are blended by the counter attribute.
	ColorStart [4]float32
	ColorEnd   [4]float32
}

// Bytes packs u in the uniform buffer layout.
func (u *Uniforms) Bytes() []byte {
	buf := make([]byte, 0, UniformSize)
	put := func(vs ...float32) {
		for _, v := range vs {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
		}
	}
	put(u.ViewProj[:]...)
	put(u.Resolution[:]...)
	put(u.LineWidth, u.SizeAttenuation)
	put(u.ColorStart[:]...)
	put(u.ColorEnd[:]...)
	return buf
}
