package sanitize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/godeals/internal/sanitize"
)

func TestRegistryBaseFor(t *testing.T) {
	r := sanitize.DefaultRegistry()

	tests := []struct {
		name     string
		store    string
		expected string
	}{
		{"exact name", "Foot Locker", "https://www.footlocker.com"},
		{"case and spacing ignored", "footlocker", "https://www.footlocker.com"},
		{"containment match", "Nike Outlet", "https://www.nike.com"},
		{"domain style name", "footlocker.com", "https://www.footlocker.com"},
		{"unknown store falls back", "Corner Shoe Shop", sanitize.FallbackBaseURL},
		{"empty store falls back", "", sanitize.FallbackBaseURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.BaseFor(tt.store))
		})
	}
}

func TestRegistryTrimsTrailingSlash(t *testing.T) {
	r := sanitize.NewRegistry(map[string]string{
		"Running Room": "https://www.runningroom.com/",
	})

	assert.Equal(t, "https://www.runningroom.com", r.BaseFor("Running Room"))
}
