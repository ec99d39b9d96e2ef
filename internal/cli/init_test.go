package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUnits(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"bare names get the service suffix", "nginx, postgresql", []string{"nginx.service", "postgresql.service"}},
		{"explicit types pass through", "nginx.service, docker.socket", []string{"nginx.service", "docker.socket"}},
		{"empty entries are dropped", "nginx,, ,redis", []string{"nginx.service", "redis.service"}},
		{"blank input yields nothing", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseUnits(tt.in))
		})
	}
}

func TestNormalizeUnits(t *testing.T) {
	got := normalizeUnits([]string{"nginx", " redis.service ", ""})
	assert.Equal(t, []string{"nginx.service", "redis.service"}, got)
}
