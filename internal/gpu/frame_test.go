package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewClipPlanes(t *testing.T) {
	tests := []struct {
		name      string
		near, far float32
		wantNear  float64
		wantFar   float64
	}{
		{"camera frustum", 0.1, 100, float64(float32(0.1)), 100},
		{"unset falls back", 0, 0, 0.01, 1000},
		{"negative near falls back", -1, 100, 0.01, 1000},
		{"inverted falls back", 50, 10, 0.01, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			near, far := View{Near: tt.near, Far: tt.far}.ClipPlanes(0.01, 1000)
			assert.Equal(t, tt.wantNear, near)
			assert.Equal(t, tt.wantFar, far)
		})
	}
}
