package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogueType_IsValid(t *testing.T) {
	tests := []struct {
		typ  CatalogueType
		want bool
	}{
		{typ: CatalogueTypeMovie, want: true},
		{typ: CatalogueTypeMusic, want: true},
		{typ: CatalogueTypePodcast, want: true},
		{typ: CatalogueType(""), want: false},
		{typ: CatalogueType("Movie"), want: false},
		{typ: CatalogueType("series"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.IsValid())
		})
	}
}
