package emotion

// Pipeline orchestration.
//
// A Pipeline is assembled once at startup from the model and scaler
// artifacts plus a deployment configuration, and is immutable afterwards:
// every request flows through decode, silence gate, optional preprocessing,
// feature extraction, standardisation, inference and calibration without
// touching shared mutable state.

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sewminijayakody/smart-emergency-app/utils"
)

// Pipeline runs the full analysis chain for uploaded clips.
type Pipeline struct {
	config PipelineConfig
	scaler *FeatureScaler
	model  *Model
	logger *slog.Logger
}

// NewPipeline loads both artifacts and validates them against the
// configured label set.
func NewPipeline(modelPath, scalerPath string, config PipelineConfig) (*Pipeline, error) {
	model, err := NewModelFromFile(modelPath)
	if err != nil {
		return nil, err
	}

	scaler, err := NewScalerFromFile(scalerPath)
	if err != nil {
		return nil, err
	}

	if len(config.Labels) != model.OutputDim() {
		return nil, fmt.Errorf("label set has %d entries but model produces %d classes",
			len(config.Labels), model.OutputDim())
	}

	return &Pipeline{
		config: config,
		scaler: scaler,
		model:  model,
		logger: utils.GetLogger(),
	}, nil
}

// Labels returns the active label set.
func (p *Pipeline) Labels() []string {
	return append([]string(nil), p.config.Labels...)
}

// ModelLoaded reports whether a usable model is present.
func (p *Pipeline) ModelLoaded() bool {
	return p.model.Loaded()
}

// ScalerLoaded reports whether the scaler matches the model's input width.
func (p *Pipeline) ScalerLoaded() bool {
	return p.scaler != nil && p.scaler.Dimensions() == p.model.InputDim()
}

// Analyze classifies an uploaded byte stream.
func (p *Pipeline) Analyze(ctx context.Context, data []byte) (*PredictionResult, error) {
	clip, err := DecodeClip(ctx, data)
	if err != nil {
		return nil, err
	}

	p.logger.DebugContext(ctx, "decoded clip",
		slog.Int("sampleRate", clip.SampleRate),
		slog.Int("frameCount", len(clip.Samples)),
		slog.Float64("duration", clip.Duration),
	)

	// silence is judged on the raw decoded signal, before any cleanup
	if IsSilent(clip.Samples) {
		p.logger.InfoContext(ctx, "silent clip, returning neutral")
		return SilentResult(p.config.Labels), nil
	}

	samples := clip.Samples
	if p.config.ApplyPreprocessing {
		samples = PreprocessAudio(samples, clip.SampleRate, p.config.Preprocessing)
	}

	features, err := ExtractFeatureVector(samples, clip.SampleRate)
	if err != nil {
		return nil, err
	}

	scaled, err := p.scaler.Transform(features)
	if err != nil {
		return nil, err
	}

	logits, err := p.model.Infer(scaled)
	if err != nil {
		return nil, err
	}

	probs := Softmax(logits)
	best, confidence := TopPrediction(probs)

	p.logger.InfoContext(ctx, "classified clip",
		slog.String("emotion", p.config.Labels[best]),
		slog.Float64("confidence", confidence),
	)

	return &PredictionResult{
		Emotion:        p.config.Labels[best],
		Confidence:     confidence,
		AllPredictions: LabelProbabilities(p.config.Labels, probs),
	}, nil
}

// AnalyzeSimple classifies an upload with the rule-based path. The heuristic
// thresholds were tuned against cleaned audio, so preprocessing always runs
// here regardless of the deployment variant.
func (p *Pipeline) AnalyzeSimple(ctx context.Context, data []byte) (*SimplePrediction, error) {
	clip, err := DecodeClip(ctx, data)
	if err != nil {
		return nil, err
	}

	if IsSilent(clip.Samples) {
		return &SimplePrediction{Emotion: "neutral", Confidence: 1.0}, nil
	}

	samples := PreprocessAudio(clip.Samples, clip.SampleRate, p.config.Preprocessing)
	prediction := ClassifyByRules(samples, clip.SampleRate)
	return &prediction, nil
}
