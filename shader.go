package riverpass

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Shaders are compiled lazily on first use. The scene runs on one goroutine.

// compiledShader caches one compile attempt, successful or not.
type compiledShader struct {
	shader *ebiten.Shader
	err    error
}

var shaderCache = map[string]compiledShader{}

// compileShader compiles a Kage source once and caches the result under
// name. A failed compile is cached too so the error is reported every call
// without recompiling.
func compileShader(name, src string) (*ebiten.Shader, error) {
	if c, ok := shaderCache[name]; ok {
		return c.shader, c.err
	}
	s, err := ebiten.NewShader([]byte(src))
	if err != nil {
		err = fmt.Errorf("riverpass: compile %s shader: %w", name, err)
	}
	shaderCache[name] = compiledShader{shader: s, err: err}
	return s, err
}
