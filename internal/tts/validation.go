package tts

import (
	"fmt"

	"golang.org/x/text/language"
)

// ValidateEngineSelection resolves an engine name to an EngineType.
// The CLI argument takes precedence over the configured default, and an
// engine must be chosen explicitly.
func ValidateEngineSelection(cliArg, configured string) (EngineType, error) {
	engineType := cliArg
	if engineType == "" {
		engineType = configured
	}

	if engineType == "" {
		return EngineNone, fmt.Errorf("%w\n\nPlease specify an engine:\n  voiceover synth --engine google VOICE LABEL TEXT\n\nOr set a default in ~/.config/voiceover/voiceover.yml:\n  engine: google  # or \"polly\"", ErrNoEngineConfigured)
	}

	// Normalize aliases
	switch engineType {
	case "google", "gcloud", "gtts":
		return EngineGoogle, nil
	case "polly", "aws":
		return EnginePolly, nil
	case "mock", "dry-run":
		return EngineMock, nil
	default:
		return EngineNone, fmt.Errorf("%w: %s\n\nSupported engines:\n  - google (Google Cloud Text-to-Speech)\n  - polly (AWS Polly)\n  - mock (offline, writes silence)", ErrInvalidEngine, engineType)
	}
}

// ValidateVoice checks that the language code derived from a voice name is
// a well-formed BCP 47 tag. Providers define their own voice names, so a
// failure here is a hint for the caller to log, not a reason to refuse.
func ValidateVoice(voiceName string) error {
	if voiceName == "" {
		return ErrEmptyVoice
	}
	code := LanguageCode(voiceName)
	if _, err := language.Parse(code); err != nil {
		return fmt.Errorf("voice %q does not start with a language code (%q): %w", voiceName, code, err)
	}
	return nil
}
