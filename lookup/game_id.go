package lookup

import "regexp"

// Game references arrive either as a share link or a bare numeric id.
var gameIdPatterns = []*regexp.Regexp{
	regexp.MustCompile(`roblox\.com/games/(\d+)`),
	regexp.MustCompile(`^(\d+)$`),
}

// ExtractGameId pulls the numeric game id out of a user-supplied reference.
// Returns false for anything that is neither a game link nor a bare id.
func ExtractGameId(raw string) (string, bool) {
	for _, pattern := range gameIdPatterns {
		if match := pattern.FindStringSubmatch(raw); match != nil {
			return match[1], true
		}
	}
	return "", false
}
