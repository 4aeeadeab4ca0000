package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Avatar", "avatar"},
		{"Avatar: The Way of Water!", "avatar the way of water"},
		{"  Blade\tRunner\n 2049  ", "blade runner 2049"},
		{"Spider-Man", "spider man"},
		{"Amélie", "am lie"},
		{"!!!", ""},
		{"   ", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeQuery(tt.in))
		})
	}
}
