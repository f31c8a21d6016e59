package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryIsChildOf(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		ancestor int64
		want     bool
	}{
		{
			name:     "direct child",
			category: Category{ID: 42, Path: "|1|3|"},
			ancestor: 3,
			want:     true,
		},
		{
			name:     "deep descendant",
			category: Category{ID: 42, Path: "|1|3|17|"},
			ancestor: 1,
			want:     true,
		},
		{
			name:     "not related",
			category: Category{ID: 42, Path: "|1|3|"},
			ancestor: 5,
			want:     false,
		},
		{
			name:     "own id is not an ancestor",
			category: Category{ID: 42, Path: "|1|3|"},
			ancestor: 42,
			want:     false,
		},
		{
			name:     "partial id does not match",
			category: Category{ID: 42, Path: "|1|31|"},
			ancestor: 3,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.category.IsChildOf(tt.ancestor))
		})
	}
}

func TestValidShopKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{key: "ABCD0815", want: true},
		{key: "80AB18D4BE2654E78244106AD315DC2C", want: true},
		{key: "ABCD", want: false},
		{key: "", want: false},
		{key: "abcd0815", want: false},
		{key: "Findologic ShopKey", want: false},
		{key: "ABCD 0815", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidShopKey(tt.key))
		})
	}
}
