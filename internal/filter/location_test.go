package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPassesLocation(t *testing.T) {
	targets := []string{"Adelaide", "Melbourne"}

	cases := []struct {
		name          string
		location      string
		includeRemote bool
		want          bool
	}{
		{"target city", "Adelaide", false, true},
		{"target city case-insensitive", "melbourne", false, true},
		{"australia sentinel passes through", "Australia", false, true},
		{"off-target city", "Sydney Nsw", false, false},
		{"remote excluded by default", "Remote", false, false},
		{"remote included when configured", "Remote", true, true},
		{"hybrid included when configured", "Hybrid", true, true},
		{"empty location", "", false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PassesLocation(tc.location, targets, tc.includeRemote)
			assert.Equal(t, tc.want, got)
		})
	}
}
