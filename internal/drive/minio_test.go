package drive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"studyvault/internal/config"
)

func TestNewMinIOValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MinIOConfig
	}{
		{"missing endpoint", config.MinIOConfig{AccessKey: "a", SecretKey: "s", Bucket: "b", RootPrefix: "resources"}},
		{"missing credentials", config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "b", RootPrefix: "resources"}},
		{"missing bucket", config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s", RootPrefix: "resources"}},
		{"missing root prefix", config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s", Bucket: "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMinIO(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestChildPath(t *testing.T) {
	parent := Folder{ID: "root", Path: "resources"}

	assert.Equal(t, "resources/IIT Delhi", childPath(parent, "IIT Delhi"))
	assert.Equal(t, "resources/a_b", childPath(parent, "a/b"))
	assert.Equal(t, "resources/trimmed", childPath(parent, "  trimmed  "))
}
