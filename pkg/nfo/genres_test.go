package nfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeGenres(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "split synonym sort dedupe",
			in:   []string{"Sci-Fi, Drama", "sci-fi"},
			want: []string{"Drama", "Sci-Fi"},
		},
		{
			name: "slash separated",
			in:   []string{"Film-Noir/Crime", "science fiction"},
			want: []string{"Crime", "Film Noir", "Sci-Fi"},
		},
		{
			name: "unknown passes through",
			in:   []string{" Mumblecore ", "", " , "},
			want: []string{"Mumblecore"},
		},
		{
			name: "nil",
			in:   nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeGenres(tt.in))
		})
	}
}
