package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourceURL(t *testing.T) {
	tt := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "explicit", cfg: Config{ResourceBaseURL: "https://data.example.com", Port: 8080}, want: "https://data.example.com"},
		{name: "asset base is not a resource base", cfg: Config{BaseURL: "https://club.example.com", Port: 8080}, want: "http://localhost:8080"},
		{name: "own server", cfg: Config{Port: 8080}, want: "http://localhost:8080"},
		{name: "default port", cfg: Config{}, want: "http://localhost:1313"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.cfg.ResourceURL())
		})
	}
}
