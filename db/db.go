package db

import (
	"errors"

	"github.com/sewminijayakody/smart-emergency-app/models"
	"github.com/sewminijayakody/smart-emergency-app/utils"
)

// Client persists analysis events.
type Client interface {
	Close() error
	StoreAnalysis(record *models.AnalysisRecord) error
	GetAllAnalyses() ([]models.AnalysisRecord, error)
}

// NewDBClient builds the store selected by the DB_TYPE environment variable.
// SQLite is the default; "mongo" switches to MongoDB via DB_URI.
func NewDBClient() (Client, error) {
	dbType := utils.GetEnv("DB_TYPE", "sqlite")

	switch dbType {
	case "sqlite":
		dbPath := utils.GetEnv("SQLITE_DB_PATH", "storage/analyses.db")
		return NewSQLiteClient(dbPath)
	case "mongo":
		dbURI := utils.GetEnv("DB_URI", "mongodb://localhost:27017")
		dbName := utils.GetEnv("DB_NAME", "emotion-analysis")
		return NewMongoClient(dbURI, dbName)
	default:
		return nil, errors.New("unsupported DB_TYPE: " + dbType)
	}
}
