package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value kept",
			args:    []string{"-d", "forum.db", "-x", "junk"},
			allowed: []string{"-d"},
			want:    []string{"-d", "forum.db"},
		},
		{
			name:    "equals form kept",
			args:    []string{"--dsn=forum.db", "-l=debug"},
			allowed: []string{"--dsn"},
			want:    []string{"--dsn=forum.db"},
		},
		{
			name:    "flag followed by another flag keeps no value",
			args:    []string{"-d", "-l", "debug"},
			allowed: []string{"-d"},
			want:    []string{"-d"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "b"},
			allowed: nil,
			want:    []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FilterArgs(tc.args, tc.allowed))
		})
	}
}
