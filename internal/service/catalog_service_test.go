package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Vitamin C 500mg", "vitamin-c-500mg"},
		{"  Fish Oil  ", "fish-oil"},
		{"Omega-3 (EPA/DHA)", "omega-3-epa-dha"},
		{"UPPER case", "upper-case"},
		{"---", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.title), tt.title)
	}
}
