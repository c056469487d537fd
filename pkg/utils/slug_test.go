package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		suffix string
		want   string
	}{
		{"simple latin name", "Noa Levi", "a1b2", "noa-levi-a1b2"},
		{"diacritics stripped", "Zoë Müller", "c3d4", "zoe-muller-c3d4"},
		{"punctuation collapsed", "Dr. Dana O'Connor", "e5f6", "dr-dana-o-connor-e5f6"},
		{"hebrew-only name falls back", "נועה לוי", "1234", "ot-1234"},
		{"no suffix", "Noa Levi", "", "noa-levi"},
		{"leading and trailing separators trimmed", "  --Noa--  ", "x9", "noa-x9"},
		{"uppercase suffix lowered", "Noa", "AB12", "noa-ab12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input, tt.suffix))
		})
	}
}

func TestSlugifyEmptyName(t *testing.T) {
	assert.Equal(t, "ot-9z8y", Slugify("", "9z8y"))
}
