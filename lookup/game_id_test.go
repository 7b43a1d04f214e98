package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractGameId(t *testing.T) {
	tests := []struct {
		raw    string
		wantId string
		wantOk bool
	}{
		{"https://www.roblox.com/games/123456", "123456", true},
		{"https://roblox.com/games/123456/cool-sword-game", "123456", true},
		{"roblox.com/games/99", "99", true},
		{"123456", "123456", true},
		{"https://example.com/games/123456", "", false},
		{"not a game", "", false},
		{"12ab34", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			id, ok := ExtractGameId(tt.raw)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.wantId, id)
		})
	}
}
