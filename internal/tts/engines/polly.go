package engines

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
	"github.com/charmbracelet/log"
	"github.com/movement-lab/voiceover/internal/pcm"
	"github.com/movement-lab/voiceover/internal/tts"
)

// pollyAPI is the part of polly.Client the engine uses.
type pollyAPI interface {
	SynthesizeSpeech(ctx context.Context, params *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error)
}

// PollyEngine implements tts.Backend using AWS Polly. The voice name is the
// Polly VoiceId ("Joanna"). Polly returns headerless PCM, which the engine
// wraps in a WAV header so clips are playable WAV files.
type PollyEngine struct {
	client     pollyAPI
	engine     types.Engine
	sampleRate int
}

// PollyConfig holds configuration for the Polly engine.
type PollyConfig struct {
	// Region overrides the region from the shared AWS config.
	Region string

	// Engine is "standard", "neural", "long-form" or "generative".
	Engine string

	// SampleRate for PCM output, 8000 or 16000.
	SampleRate int
}

// NewPollyEngine creates a Polly engine from the default AWS credential chain.
func NewPollyEngine(ctx context.Context, config PollyConfig) (*PollyEngine, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if config.Region != "" {
		opts = append(opts, awsconfig.WithRegion(config.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return newPollyEngine(polly.NewFromConfig(awsCfg), config), nil
}

func newPollyEngine(client pollyAPI, config PollyConfig) *PollyEngine {
	if config.SampleRate == 0 {
		config.SampleRate = pcm.DefaultFormat().SampleRate
	}
	return &PollyEngine{
		client:     client,
		engine:     types.Engine(config.Engine),
		sampleRate: config.SampleRate,
	}
}

// Synthesize requests speech from Polly.
func (e *PollyEngine) Synthesize(ctx context.Context, text string, voice tts.VoiceSelection, enc tts.AudioEncoding) ([]byte, error) {
	input := &polly.SynthesizeSpeechInput{
		Text:    aws.String(text),
		VoiceId: types.VoiceId(voice.Name),
	}
	if e.engine != "" {
		input.Engine = e.engine
	}
	if lc, ok := pollyLanguageCode(voice.LanguageCode); ok {
		input.LanguageCode = lc
	}

	switch enc {
	case tts.EncodingLinear16:
		input.OutputFormat = types.OutputFormatPcm
		input.SampleRate = aws.String(strconv.Itoa(e.sampleRate))
	case tts.EncodingMP3:
		input.OutputFormat = types.OutputFormatMp3
	default:
		return nil, fmt.Errorf("%w: %s (polly)", tts.ErrUnsupportedEncoding, enc)
	}

	log.Debug("polly synthesize", "voice", voice.Name, "format", input.OutputFormat, "chars", len(text))

	out, err := e.client.SynthesizeSpeech(ctx, input)
	if err != nil {
		return nil, err
	}
	defer out.AudioStream.Close() //nolint:errcheck

	audio, err := io.ReadAll(out.AudioStream)
	if err != nil {
		return nil, fmt.Errorf("unable to read polly audio stream: %w", err)
	}

	if enc == tts.EncodingLinear16 {
		format := pcm.DefaultFormat()
		format.SampleRate = e.sampleRate
		audio = pcm.EncodeWAV(audio, format)
	}
	return audio, nil
}

// Name returns "polly".
func (e *PollyEngine) Name() string {
	return string(tts.EnginePolly)
}

// CacheKey identifies the engine and the settings that shape its audio.
func (e *PollyEngine) CacheKey() string {
	return fmt.Sprintf("polly|%s|%d", e.engine, e.sampleRate)
}

// Close is a no-op; the AWS client holds no persistent connection.
func (e *PollyEngine) Close() error {
	return nil
}

// pollyLanguageCode returns code as a Polly language code when Polly knows
// it. Voice names like "Joanna" derive no usable code.
func pollyLanguageCode(code string) (types.LanguageCode, bool) {
	lc := types.LanguageCode(code)
	if slices.Contains(lc.Values(), lc) {
		return lc, true
	}
	return "", false
}
