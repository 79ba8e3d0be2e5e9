package tts

import (
	"fmt"
	"strings"
)

// sentenceDelimiter is the only character text is split on. Abbreviations
// and decimals are not special-cased.
const sentenceDelimiter = "."

// LanguageCode derives the language code from a voice name: its first two
// hyphen-separated segments. "en-US-Wavenet-C" yields "en-US".
func LanguageCode(voiceName string) string {
	parts := strings.Split(voiceName, "-")
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, "-")
}

// SplitSentences splits text on '.' and returns every part in order,
// including blank ones, so that each Segment keeps its original index.
func SplitSentences(text string) []Segment {
	parts := strings.Split(text, sentenceDelimiter)
	segments := make([]Segment, len(parts))
	for i, part := range parts {
		segments[i] = Segment{Index: i, Text: part}
	}
	return segments
}

// FileName returns the output file name for a clip. A positive index gives
// the sentence-mode name "{voice}_{label}_{index}.wav"; zero or less gives
// the single-shot name "{voice}_{label}.wav".
func FileName(voiceName, label string, index int) string {
	if index <= 0 {
		return fmt.Sprintf("%s_%s.wav", voiceName, label)
	}
	return fmt.Sprintf("%s_%s_%d.wav", voiceName, label, index)
}
