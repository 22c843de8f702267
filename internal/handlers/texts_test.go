package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectKeyword(t *testing.T) {
	keywords := []string{"плохо", "не могу больше", "help"}

	tests := []struct {
		name string
		text string
		want string
		hit  bool
	}{
		{"exact match", "плохо", "плохо", true},
		{"substring", "мне сегодня очень плохо весь день", "плохо", true},
		{"case insensitive", "ПЛОХО мне", "плохо", true},
		{"mixed case latin", "HeLp me", "help", true},
		{"multi-word keyword", "я так не могу больше держаться", "не могу больше", true},
		{"no keyword", "отличный день, спасибо", "", false},
		{"empty text", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kw, ok := detectKeyword(tt.text, keywords)
			assert.Equal(t, tt.hit, ok)
			assert.Equal(t, tt.want, kw)
		})
	}
}

func TestDetectKeywordEmptyList(t *testing.T) {
	_, ok := detectKeyword("мне плохо", nil)
	assert.False(t, ok)
}
