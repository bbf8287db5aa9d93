package main

// Runs the analysis pipeline against a single recording on disk and prints
// the prediction. Useful for sanity checking artifacts without the server.

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/sewminijayakody/smart-emergency-app/emotion"
)

func main() {
	modelPath := flag.String("model", filepath.Join("artifacts", "model.json"), "Path to the model artifact")
	scalerPath := flag.String("scaler", filepath.Join("artifacts", "scaler.json"), "Path to the scaler artifact")
	variant := flag.String("variant", "enhanced", "Pipeline variant (plain or enhanced)")
	withSimple := flag.Bool("simple", false, "Also run the rule-based path")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <audio-file>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	audioPath := flag.Arg(0)

	config := emotion.ConfigForVariant(*variant)
	pipeline, err := emotion.NewPipeline(*modelPath, *scalerPath, config)
	if err != nil {
		log.Fatalf("ERROR: Failed to build pipeline: %v", err)
	}

	data, err := os.ReadFile(audioPath)
	if err != nil {
		log.Fatalf("ERROR: Failed to read %s: %v", audioPath, err)
	}

	ctx := context.Background()
	result, err := pipeline.Analyze(ctx, data)
	if err != nil {
		log.Fatalf("ERROR: Analysis failed: %v", err)
	}

	fmt.Printf("File: %s\n", audioPath)
	fmt.Printf("Emotion: %s (%.3f)\n", result.Emotion, result.Confidence)
	fmt.Println("All predictions:")

	labels := make([]string, 0, len(result.AllPredictions))
	for label := range result.AllPredictions {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return result.AllPredictions[labels[i]] > result.AllPredictions[labels[j]]
	})
	for _, label := range labels {
		fmt.Printf("  %-10s %.4f\n", label, result.AllPredictions[label])
	}

	if *withSimple {
		simple, err := pipeline.AnalyzeSimple(ctx, data)
		if err != nil {
			log.Fatalf("ERROR: Rule-based analysis failed: %v", err)
		}
		fmt.Printf("Rule-based: %s (%.3f)\n", simple.Emotion, simple.Confidence)
	}
}
