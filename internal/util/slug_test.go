package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Our Favourite Venues", "our-favourite-venues"},
		{"  Café   Crème Wedding  ", "cafe-creme-wedding"},
		{"Top 10 Tips: Pre-Wedding Shoots!", "top-10-tips-pre-wedding-shoots"},
		{"Multiple --- hyphens", "multiple-hyphens"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}
