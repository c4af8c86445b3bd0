package css

import (
	"regexp"
	"strings"
)

// KeyframesBanner opens the stylesheet produced by ExtractKeyframes.
const KeyframesBanner = "/* Keyframe animations extracted from Ant Design */"

var keyframesStart = regexp.MustCompile(`@keyframes\s+[\w-]+\s*\{`)

// Keyframes returns every complete @keyframes block found in text in source
// order. Block boundaries are found by counting nested braces starting from
// the opening one, so percentage selectors with their own bodies are kept
// whole. Unterminated blocks are ignored.
func Keyframes(text string) []string {
	var blocks []string
	for _, loc := range keyframesStart.FindAllStringIndex(text, -1) {
		depth := 1
		i := loc[1]
		for ; i < len(text) && depth > 0; i++ {
			switch text[i] {
			case '{':
				depth++
			case '}':
				depth--
			}
		}
		if depth == 0 {
			blocks = append(blocks, strings.TrimSpace(text[loc[0]:i]))
		}
	}
	return blocks
}

// ExtractKeyframes produces standalone animation stylesheet out of raw
// (not cleaned) stylesheet text. When dedupe is set identical blocks are
// emitted once. Returns empty string when no complete blocks were found.
func ExtractKeyframes(raw string, dedupe bool) string {
	blocks := Keyframes(raw)
	if dedupe {
		seen := make(map[string]struct{}, len(blocks))
		uniq := blocks[:0]
		for _, b := range blocks {
			if _, ok := seen[b]; ok {
				continue
			}
			seen[b] = struct{}{}
			uniq = append(uniq, b)
		}
		blocks = uniq
	}
	if len(blocks) == 0 {
		return ""
	}
	return KeyframesBanner + "\n\n" + strings.Join(blocks, "\n\n") + "\n"
}
