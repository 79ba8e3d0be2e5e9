package engines

import (
	"context"
	"fmt"
	"time"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/charmbracelet/log"
	"github.com/googleapis/gax-go/v2"
	"github.com/movement-lab/voiceover/internal/tts"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

// speechClient is the part of texttospeech.Client the engine uses.
type speechClient interface {
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error)
	Close() error
}

// GoogleEngine implements tts.Backend using Google Cloud Text-to-Speech.
// LINEAR16 responses already carry a WAV header.
type GoogleEngine struct {
	client speechClient

	// Rate limiting to stay under the per-minute request quota
	rateLimiter *rate.Limiter
}

// GoogleConfig holds configuration for the Google engine.
type GoogleConfig struct {
	// CredentialsFile is a service account key. Empty uses Application
	// Default Credentials (GOOGLE_APPLICATION_CREDENTIALS, gcloud, metadata).
	CredentialsFile string

	// RequestsPerMinute paces requests; 0 disables pacing.
	RequestsPerMinute int
}

// NewGoogleEngine creates a Google Cloud TTS engine with one client for
// the life of the engine.
func NewGoogleEngine(ctx context.Context, config GoogleConfig) (*GoogleEngine, error) {
	var opts []option.ClientOption
	if config.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.CredentialsFile))
	}

	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create text-to-speech client: %w", err)
	}

	return newGoogleEngine(client, config.RequestsPerMinute), nil
}

func newGoogleEngine(client speechClient, requestsPerMinute int) *GoogleEngine {
	e := &GoogleEngine{client: client}
	if requestsPerMinute > 0 {
		e.rateLimiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
	}
	return e
}

// Synthesize sends one SynthesizeSpeech request and returns its audio content.
func (e *GoogleEngine) Synthesize(ctx context.Context, text string, voice tts.VoiceSelection, enc tts.AudioEncoding) ([]byte, error) {
	encoding, err := googleEncoding(enc)
	if err != nil {
		return nil, err
	}

	if e.rateLimiter != nil {
		if err := e.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait cancelled: %w", err)
		}
	}

	log.Debug("google synthesize", "voice", voice.Name, "language", voice.LanguageCode, "chars", len(text))

	resp, err := e.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: voice.LanguageCode,
			Name:         voice.Name,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: encoding,
		},
	})
	if err != nil {
		return nil, err
	}
	return resp.GetAudioContent(), nil
}

// Name returns "google".
func (e *GoogleEngine) Name() string {
	return string(tts.EngineGoogle)
}

// Close closes the underlying client connection.
func (e *GoogleEngine) Close() error {
	return e.client.Close()
}

func googleEncoding(enc tts.AudioEncoding) (texttospeechpb.AudioEncoding, error) {
	switch enc {
	case tts.EncodingLinear16:
		return texttospeechpb.AudioEncoding_LINEAR16, nil
	case tts.EncodingMP3:
		return texttospeechpb.AudioEncoding_MP3, nil
	case tts.EncodingOggOpus:
		return texttospeechpb.AudioEncoding_OGG_OPUS, nil
	default:
		return texttospeechpb.AudioEncoding_AUDIO_ENCODING_UNSPECIFIED, fmt.Errorf("%w: %s", tts.ErrUnsupportedEncoding, enc)
	}
}
