package graphics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"spatial-preview/internal/gpu"
)

// maxLights is the number of directional lights the lit shader accepts.
const maxLights = 4

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
#define MAX_LIGHTS 4
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 ambient;
uniform float lightCount;
uniform vec3 lightDirs[MAX_LIGHTS];
uniform vec3 lightColors[MAX_LIGHTS];
uniform float roughness;
uniform float metalness;
uniform float unlit;
uniform vec3 fogColor;
uniform float fogNear;
uniform float fogFar;
out vec4 finalColor;
void main() {
  vec3 base = colDiffuse.rgb;
  vec3 color = base;
  if (unlit < 0.5) {
    vec3 N = normalize(fragNormal);
    if (!gl_FrontFacing) N = -N;
    vec3 V = normalize(viewPos - fragPosition);
    vec3 specTint = mix(vec3(1.0), base, metalness);
    float power = 8.0 + (1.0 - roughness) * 56.0;
    float strength = (1.0 - roughness) * 0.5;
    color = ambient * base;
    for (int i = 0; i < MAX_LIGHTS; i++) {
      if (float(i) >= lightCount) break;
      vec3 L = normalize(lightDirs[i]);
      float NdotL = max(dot(N, L), 0.0);
      vec3 H = normalize(L + V);
      float spec = pow(max(dot(N, H), 0.0), power) * strength * (NdotL > 0.0 ? 1.0 : 0.0);
      color += base * (1.0 - metalness * 0.5) * NdotL * lightColors[i] + specTint * spec * lightColors[i];
    }
    if (fogFar > fogNear) {
      float d = length(viewPos - fragPosition);
      float f = clamp((fogFar - d) / (fogFar - fogNear), 0.0, 1.0);
      color = mix(fogColor, color, f);
    }
  }
  finalColor = vec4(color, colDiffuse.a);
}
`
)

// litShader is the shader shared by every material of a Device, with its uniform locations.
type litShader struct {
	shader rl.Shader

	viewPos, ambient                   int32
	lightCount, lightDirs, lightColors int32
	roughness, metalness, unlit        int32
	fogColor, fogNear, fogFar          int32
}

func loadLitShader() (*litShader, bool) {
	sh := rl.LoadShaderFromMemory(litVS, litFS)
	if !rl.IsShaderValid(sh) {
		return nil, false
	}
	loc := func(name string) int32 { return rl.GetShaderLocation(sh, name) }
	return &litShader{
		shader:      sh,
		viewPos:     loc("viewPos"),
		ambient:     loc("ambient"),
		lightCount:  loc("lightCount"),
		lightDirs:   loc("lightDirs"),
		lightColors: loc("lightColors"),
		roughness:   loc("roughness"),
		metalness:   loc("metalness"),
		unlit:       loc("unlit"),
		fogColor:    loc("fogColor"),
		fogNear:     loc("fogNear"),
		fogFar:      loc("fogFar"),
	}, true
}

func (s *litShader) unload() { rl.UnloadShader(s.shader) }

// setFrame uploads the per-frame uniforms: camera position, lights and fog (cgo-safe: local arrays).
func (s *litShader) setFrame(f gpu.Frame) {
	viewPos := f.View.Position
	var amb [3]float32
	var dirs, colors [maxLights * 3]float32
	n := 0
	for _, l := range f.Lights {
		switch l.Kind {
		case gpu.LightAmbient:
			amb[0] += l.Color.R * l.Intensity
			amb[1] += l.Color.G * l.Intensity
			amb[2] += l.Color.B * l.Intensity
		case gpu.LightDirectional:
			if n == maxLights {
				continue
			}
			d := normalize(l.Position)
			copy(dirs[n*3:], d[:])
			colors[n*3] = l.Color.R * l.Intensity
			colors[n*3+1] = l.Color.G * l.Intensity
			colors[n*3+2] = l.Color.B * l.Intensity
			n++
		}
	}
	var fogColor [3]float32
	var fogNear, fogFar float32
	if f.Fog != nil {
		fogColor = [3]float32{f.Fog.Color.R, f.Fog.Color.G, f.Fog.Color.B}
		fogNear, fogFar = f.Fog.Near, f.Fog.Far
	}

	rl.SetShaderValueV(s.shader, s.viewPos, viewPos[:], rl.ShaderUniformVec3, 1)
	rl.SetShaderValueV(s.shader, s.ambient, amb[:], rl.ShaderUniformVec3, 1)
	rl.SetShaderValue(s.shader, s.lightCount, []float32{float32(n)}, rl.ShaderUniformFloat)
	rl.SetShaderValueV(s.shader, s.lightDirs, dirs[:], rl.ShaderUniformVec3, maxLights)
	rl.SetShaderValueV(s.shader, s.lightColors, colors[:], rl.ShaderUniformVec3, maxLights)
	rl.SetShaderValueV(s.shader, s.fogColor, fogColor[:], rl.ShaderUniformVec3, 1)
	rl.SetShaderValue(s.shader, s.fogNear, []float32{fogNear}, rl.ShaderUniformFloat)
	rl.SetShaderValue(s.shader, s.fogFar, []float32{fogFar}, rl.ShaderUniformFloat)
}

// setMaterial uploads the per-material uniforms.
func (s *litShader) setMaterial(spec gpu.MaterialSpec) {
	unlit := float32(0)
	if spec.Unlit {
		unlit = 1
	}
	rl.SetShaderValue(s.shader, s.roughness, []float32{spec.Roughness}, rl.ShaderUniformFloat)
	rl.SetShaderValue(s.shader, s.metalness, []float32{spec.Metalness}, rl.ShaderUniformFloat)
	rl.SetShaderValue(s.shader, s.unlit, []float32{unlit}, rl.ShaderUniformFloat)
}

func normalize(v [3]float32) [3]float32 {
	l := math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l == 0 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
