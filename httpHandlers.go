package main

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/sewminijayakody/smart-emergency-app/db"
	"github.com/sewminijayakody/smart-emergency-app/emotion"
	"github.com/sewminijayakody/smart-emergency-app/models"
	"github.com/sewminijayakody/smart-emergency-app/utils"

	"github.com/mdobak/go-xerrors"
)

type apiError struct {
	Message string `json:"message"`
}

type healthResponse struct {
	Status       string   `json:"status"`
	ModelLoaded  bool     `json:"model_loaded"`
	ScalerLoaded bool     `json:"scaler_loaded"`
	Emotions     []string `json:"emotions"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode JSON response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiError{Message: message})
}

// statusForError maps pipeline failures onto HTTP statuses: bad uploads are
// the client's fault, everything past decode is ours.
func statusForError(err error) int {
	switch {
	case errors.Is(err, emotion.ErrEmptyInput),
		errors.Is(err, emotion.ErrUnsupportedFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func setCORSHeaders(w http.ResponseWriter, methods string) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", methods)
	w.Header().Set("Access-Control-Allow-Credentials", "true")
}

func newHealthHandler(pipeline *emotion.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setCORSHeaders(w, "GET, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if r.Method != http.MethodGet {
			writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		writeJSON(w, http.StatusOK, healthResponse{
			Status:       "healthy",
			ModelLoaded:  pipeline.ModelLoaded(),
			ScalerLoaded: pipeline.ScalerLoaded(),
			Emotions:     pipeline.Labels(),
		})
	}
}

// readUploadedAudio pulls the "audio" multipart field out of the request.
func readUploadedAudio(r *http.Request) ([]byte, string, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, "", err
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}

	return data, header.Filename, nil
}

func newAnalyzeHandler(pipeline *emotion.Pipeline, store db.Client, variant string) http.HandlerFunc {
	logger := utils.GetLogger()
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := context.Background()

		setCORSHeaders(w, "POST, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if r.Method != http.MethodPost {
			writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		data, filename, err := readUploadedAudio(r)
		if err != nil {
			logger.ErrorContext(ctx, "failed to read uploaded audio", slog.Any("error", err))
			writeJSONError(w, http.StatusBadRequest, "no audio file provided")
			return
		}

		log.Printf("[HTTP] Audio analysis request: file=%s, size=%d bytes\n", filename, len(data))

		if len(data) < emotion.MinPayloadBytes {
			writeJSONError(w, http.StatusBadRequest, "audio payload is empty or corrupt")
			return
		}

		started := time.Now()

		result, err := pipeline.Analyze(ctx, data)
		if err != nil {
			status := statusForError(err)
			logger.ErrorContext(ctx, "failed to analyze audio", slog.Any("error", xerrors.New(err)))
			writeJSONError(w, status, "unable to analyze audio")
			return
		}

		latency := time.Since(started).Seconds() * 1000

		log.Printf("[HTTP] Analysis complete: emotion=%s, confidence=%.3f, latency=%.2fms\n",
			result.Emotion, result.Confidence, latency)

		if store != nil {
			predictionsJSON, err := json.Marshal(result.AllPredictions)
			if err == nil {
				record := &models.AnalysisRecord{
					Timestamp:   time.Now(),
					Emotion:     result.Emotion,
					Confidence:  result.Confidence,
					Predictions: predictionsJSON,
					LatencyMs:   latency,
					SourceName:  filename,
					Variant:     variant,
				}
				if err := store.StoreAnalysis(record); err != nil {
					logger.ErrorContext(ctx, "failed to store analysis", slog.Any("error", err))
				}
			}
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func newSimpleAnalyzeHandler(pipeline *emotion.Pipeline) http.HandlerFunc {
	logger := utils.GetLogger()
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := context.Background()

		setCORSHeaders(w, "POST, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if r.Method != http.MethodPost {
			writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		data, filename, err := readUploadedAudio(r)
		if err != nil {
			logger.ErrorContext(ctx, "failed to read uploaded audio", slog.Any("error", err))
			writeJSONError(w, http.StatusBadRequest, "no audio file provided")
			return
		}

		log.Printf("[HTTP] Rule-based analysis request: file=%s, size=%d bytes\n", filename, len(data))

		if len(data) < emotion.MinPayloadBytes {
			writeJSONError(w, http.StatusBadRequest, "audio payload is empty or corrupt")
			return
		}

		prediction, err := pipeline.AnalyzeSimple(ctx, data)
		if err != nil {
			status := statusForError(err)
			logger.ErrorContext(ctx, "failed to run rule-based analysis", slog.Any("error", xerrors.New(err)))
			writeJSONError(w, status, "unable to analyze audio")
			return
		}

		writeJSON(w, http.StatusOK, prediction)
	}
}

func newAnalysesHandler(store db.Client) http.HandlerFunc {
	logger := utils.GetLogger()
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := context.Background()

		setCORSHeaders(w, "GET, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if r.Method != http.MethodGet {
			writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		if store == nil {
			writeJSON(w, http.StatusOK, []models.AnalysisRecord{})
			return
		}

		records, err := store.GetAllAnalyses()
		if err != nil {
			logger.ErrorContext(ctx, "failed to load analyses", slog.Any("error", err))
			writeJSONError(w, http.StatusInternalServerError, "failed to load analyses")
			return
		}
		if records == nil {
			records = []models.AnalysisRecord{}
		}

		writeJSON(w, http.StatusOK, records)
	}
}

func serve(protocol, port string) {
	protocol = strings.ToLower(protocol)

	modelPath := utils.GetEnv("EMOTION_MODEL_PATH", filepath.Join("artifacts", "model.json"))
	scalerPath := utils.GetEnv("EMOTION_SCALER_PATH", filepath.Join("artifacts", "scaler.json"))
	variant := utils.GetEnv("EMOTION_PIPELINE_VARIANT", "enhanced")

	config := emotion.ConfigForVariant(variant)
	pipeline, err := emotion.NewPipeline(modelPath, scalerPath, config)
	if err != nil {
		log.Fatalf("failed to build analysis pipeline: %v", err)
	}
	log.Printf("Pipeline ready: variant=%s, labels=%v, preprocessing=%v\n",
		variant, pipeline.Labels(), config.ApplyPreprocessing)

	store, err := db.NewDBClient()
	if err != nil {
		log.Printf("WARNING: analysis store unavailable, history disabled: %v\n", err)
		store = nil
	} else {
		defer store.Close()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", newHealthHandler(pipeline))
	mux.HandleFunc("/api/analyze_audio", newAnalyzeHandler(pipeline, store, variant))
	mux.HandleFunc("/api/analyze_audio_simple", newSimpleAnalyzeHandler(pipeline))
	mux.HandleFunc("/api/analyses", newAnalysesHandler(store))
	mux.Handle("/", http.FileServer(http.Dir("static")))

	serveHTTP(protocol == "https", port, mux)
}

func serveHTTP(serveHTTPS bool, port string, handler http.Handler) {
	if serveHTTPS {
		httpsAddr := ":" + port
		httpsServer := &http.Server{
			Addr: httpsAddr,
			TLSConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			Handler: handler,
		}

		cert_key := utils.GetEnv("CERT_KEY", "")
		cert_file := utils.GetEnv("CERT_FILE", "")
		if cert_key == "" || cert_file == "" {
			log.Fatal("Missing cert")
		}

		log.Printf("Starting HTTPS server on %s\n", httpsAddr)
		if err := httpsServer.ListenAndServeTLS(cert_file, cert_key); err != nil {
			log.Fatalf("HTTPS server ListenAndServeTLS: %v", err)
		}
	}

	log.Printf("Starting HTTP server on port %v", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("HTTP server ListenAndServe: %v", err)
	}
}
