package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("DENIALFLOW_TEST_DIR", "/srv/denialflow")

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "empty", path: "", want: ""},
		{name: "plain path untouched", path: "/var/lib/denialflow.db", want: "/var/lib/denialflow.db"},
		{name: "tilde prefix", path: "~/data/denials.db", want: filepath.Join(home, "data", "denials.db")},
		{name: "bare tilde", path: "~", want: home},
		{name: "env var", path: "$DENIALFLOW_TEST_DIR/denials.db", want: "/srv/denialflow/denials.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.path))
		})
	}
}
