package db

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sewminijayakody/smart-emergency-app/models"
	"github.com/sewminijayakody/smart-emergency-app/utils"

	_ "github.com/mattn/go-sqlite3" // SQLite driver registration
)

type SQLiteClient struct {
	db *sql.DB
}

func NewSQLiteClient(dataSourceName string) (*SQLiteClient, error) {
	// Extract the file path before query parameters
	dbPath := dataSourceName
	if idx := strings.Index(dataSourceName, "?"); idx != -1 {
		dbPath = dataSourceName[:idx]
	}

	// Create the directory if it doesn't exist (cross-platform)
	dbDir := filepath.Dir(dbPath)
	if dbDir != "." && dbDir != "" {
		if err := utils.CreateFolder(dbDir); err != nil {
			return nil, fmt.Errorf("error creating database directory: %s", err)
		}
	}

	// Add busy timeout param to DSN (milliseconds)
	if !strings.Contains(dataSourceName, "_busy_timeout") {
		if strings.Contains(dataSourceName, "?") {
			dataSourceName += "&_busy_timeout=5000" // 5 seconds
		} else {
			dataSourceName += "?_busy_timeout=5000"
		}
	}

	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("error connecting to SQLite: %s", err)
	}

	err = createTables(db)
	if err != nil {
		return nil, fmt.Errorf("error creating tables: %s", err)
	}

	return &SQLiteClient{db: db}, nil
}

// createTables creates the required tables if they don't exist
func createTables(db *sql.DB) error {
	createAnalysesTable := `
    CREATE TABLE IF NOT EXISTS analyses (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
        emotion TEXT NOT NULL,
        confidence REAL NOT NULL DEFAULT 0,
        predictions TEXT NOT NULL,
        latency_ms REAL NOT NULL DEFAULT 0,
        source_name TEXT,
        variant TEXT
    );
    CREATE INDEX IF NOT EXISTS idx_analyses_timestamp ON analyses(timestamp);
    CREATE INDEX IF NOT EXISTS idx_analyses_emotion ON analyses(emotion);
    `

	_, err := db.Exec(createAnalysesTable)
	if err != nil {
		return fmt.Errorf("error creating analyses table: %s", err)
	}

	return nil
}

func (db *SQLiteClient) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// StoreAnalysis stores an analysis event in the database
func (db *SQLiteClient) StoreAnalysis(record *models.AnalysisRecord) error {
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}

	_, err := db.db.Exec(`
		INSERT INTO analyses (
			timestamp, emotion, confidence, predictions, latency_ms,
			source_name, variant
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.Timestamp,
		record.Emotion,
		record.Confidence,
		string(record.Predictions),
		record.LatencyMs,
		record.SourceName,
		record.Variant,
	)
	if err != nil {
		return fmt.Errorf("error storing analysis: %s", err)
	}
	return nil
}

// GetAllAnalyses retrieves all stored analysis events, newest first
func (db *SQLiteClient) GetAllAnalyses() ([]models.AnalysisRecord, error) {
	rows, err := db.db.Query(`
		SELECT id, timestamp, emotion, confidence, predictions, latency_ms,
		       source_name, variant
		FROM analyses
		ORDER BY timestamp DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("error querying analyses: %s", err)
	}
	defer rows.Close()

	var records []models.AnalysisRecord
	for rows.Next() {
		var r models.AnalysisRecord
		var predictionsJSON string
		var sourceName, variant sql.NullString

		err := rows.Scan(
			&r.ID,
			&r.Timestamp,
			&r.Emotion,
			&r.Confidence,
			&predictionsJSON,
			&r.LatencyMs,
			&sourceName,
			&variant,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning analysis: %s", err)
		}

		r.Predictions = []byte(predictionsJSON)
		r.SourceName = sourceName.String
		r.Variant = variant.String

		records = append(records, r)
	}

	return records, nil
}
