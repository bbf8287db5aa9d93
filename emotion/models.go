package emotion

// Analysis constants shared across the pipeline stages.
const (
	// TargetSampleRate is the rate every clip is resampled to before analysis.
	TargetSampleRate = 22050

	// ClipSeconds caps the analysed portion of a recording.
	ClipSeconds = 3.0

	// FeatureVectorSize is the length of the descriptor fed to the model.
	FeatureVectorSize = 53

	// MinPayloadBytes is the smallest upload accepted as a real recording.
	MinPayloadBytes = 128

	frameSize = 2048
	hopSize   = 512

	silenceRMSThreshold = 0.001
)

// BaseEmotions is the six-class label set used by preprocessing deployments.
var BaseEmotions = []string{"neutral", "happy", "sad", "angry", "fearful", "disgust"}

// ExtendedEmotions adds surprised for models trained on the full corpus.
var ExtendedEmotions = []string{"neutral", "happy", "sad", "angry", "fearful", "disgust", "surprised"}

// PredictionResult is the response payload for a single analysed clip.
type PredictionResult struct {
	Emotion        string             `json:"emotion"`
	Confidence     float64            `json:"confidence"`
	AllPredictions map[string]float64 `json:"all_predictions"`
}

// AudioClip bundles decoded mono PCM together with its sample rate.
type AudioClip struct {
	Samples    []float64
	SampleRate int
	Duration   float64
}

// PipelineConfig selects a deployment variant: which label set the model was
// trained against and whether the band-limiting preprocessing chain runs
// before feature extraction.
type PipelineConfig struct {
	Labels             []string
	ApplyPreprocessing bool
	Preprocessing      PreprocessingConfig
}

// PlainPipelineConfig analyses raw decoded audio with the seven-class model.
func PlainPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Labels:             append([]string(nil), ExtendedEmotions...),
		ApplyPreprocessing: false,
		Preprocessing:      DefaultPreprocessingConfig(),
	}
}

// EnhancedPipelineConfig runs the full preprocessing chain and uses the
// six-class model.
func EnhancedPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Labels:             append([]string(nil), BaseEmotions...),
		ApplyPreprocessing: true,
		Preprocessing:      DefaultPreprocessingConfig(),
	}
}

// ConfigForVariant resolves a named deployment variant. Unknown names fall
// back to the enhanced configuration.
func ConfigForVariant(name string) PipelineConfig {
	if name == "plain" {
		return PlainPipelineConfig()
	}
	return EnhancedPipelineConfig()
}
