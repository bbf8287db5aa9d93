package main

// Evaluates the pipeline against a directory of labelled recordings. The
// layout is one subdirectory per emotion containing audio files; each file
// is analysed and compared against its directory name.

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sewminijayakody/smart-emergency-app/emotion"
)

type sampleResult struct {
	Filename   string  `json:"filename"`
	Expected   string  `json:"expected"`
	Predicted  string  `json:"predicted"`
	Confidence float64 `json:"confidence"`
	Correct    bool    `json:"correct"`
	LatencyMs  float64 `json:"latency_ms"`
}

type evalReport struct {
	Timestamp    time.Time      `json:"timestamp"`
	DataDir      string         `json:"data_dir"`
	Variant      string         `json:"variant"`
	TotalSamples int            `json:"total_samples"`
	Correct      int            `json:"correct"`
	Accuracy     float64        `json:"accuracy"`
	PerLabel     map[string]int `json:"per_label_correct"`
	Results      []sampleResult `json:"results"`
}

var audioExtensions = map[string]bool{
	".wav": true, ".mp3": true, ".flac": true, ".ogg": true, ".m4a": true, ".webm": true,
}

func main() {
	modelPath := flag.String("model", filepath.Join("artifacts", "model.json"), "Path to the model artifact")
	scalerPath := flag.String("scaler", filepath.Join("artifacts", "scaler.json"), "Path to the scaler artifact")
	variant := flag.String("variant", "enhanced", "Pipeline variant (plain or enhanced)")
	dataDir := flag.String("data", "testdata", "Directory of labelled recordings")
	outputJSON := flag.String("json", "", "Optional path for a JSON report")
	flag.Parse()

	log.SetFlags(log.Ldate | log.Ltime)
	log.Println("=== Pipeline Evaluation ===")
	log.Printf("Model: %s\n", *modelPath)
	log.Printf("Data: %s\n", *dataDir)

	config := emotion.ConfigForVariant(*variant)
	pipeline, err := emotion.NewPipeline(*modelPath, *scalerPath, config)
	if err != nil {
		log.Fatalf("ERROR: Failed to build pipeline: %v", err)
	}
	log.Printf("Labels: %s\n", strings.Join(pipeline.Labels(), ", "))

	report := evalReport{
		Timestamp: time.Now(),
		DataDir:   *dataDir,
		Variant:   *variant,
		PerLabel:  make(map[string]int),
	}

	ctx := context.Background()
	entries, err := os.ReadDir(*dataDir)
	if err != nil {
		log.Fatalf("ERROR: Failed to read data directory: %v", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		expected := entry.Name()
		files, err := os.ReadDir(filepath.Join(*dataDir, expected))
		if err != nil {
			log.Printf("WARNING: skipping %s: %v", expected, err)
			continue
		}

		for _, file := range files {
			ext := strings.ToLower(filepath.Ext(file.Name()))
			if file.IsDir() || !audioExtensions[ext] {
				continue
			}
			path := filepath.Join(*dataDir, expected, file.Name())

			data, err := os.ReadFile(path)
			if err != nil {
				log.Printf("WARNING: failed to read %s: %v", path, err)
				continue
			}

			started := time.Now()
			result, err := pipeline.Analyze(ctx, data)
			latency := time.Since(started).Seconds() * 1000
			if err != nil {
				log.Printf("WARNING: analysis failed for %s: %v", path, err)
				continue
			}

			correct := result.Emotion == expected
			report.TotalSamples++
			if correct {
				report.Correct++
				report.PerLabel[expected]++
			}
			report.Results = append(report.Results, sampleResult{
				Filename:   path,
				Expected:   expected,
				Predicted:  result.Emotion,
				Confidence: result.Confidence,
				Correct:    correct,
				LatencyMs:  latency,
			})
		}
	}

	if report.TotalSamples == 0 {
		log.Fatalf("ERROR: No usable samples found in %s", *dataDir)
	}
	report.Accuracy = float64(report.Correct) / float64(report.TotalSamples)

	log.Println()
	log.Printf("Samples: %d, correct: %d, accuracy: %.1f%%\n",
		report.TotalSamples, report.Correct, report.Accuracy*100)

	labels := make([]string, 0, len(report.PerLabel))
	for label := range report.PerLabel {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		log.Printf("  %-10s %d correct\n", label, report.PerLabel[label])
	}

	if *outputJSON != "" {
		payload, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			log.Fatalf("ERROR: Failed to marshal report: %v", err)
		}
		if err := os.WriteFile(*outputJSON, payload, 0644); err != nil {
			log.Fatalf("ERROR: Failed to write report: %v", err)
		}
		fmt.Printf("Report written to %s\n", *outputJSON)
	}
}
