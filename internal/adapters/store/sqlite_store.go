package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/fuchs284/Cybersecurityproject/internal/core"
	"github.com/fuchs284/Cybersecurityproject/internal/utils"
)

// SQLiteStore is a SQLite implementation of the DetectionStore interface.
// The database runs in WAL mode so history reads are not blocked by the
// single writer.
type SQLiteStore struct {
	db         *sql.DB
	logger     *zap.Logger
	text       *utils.TextProcessor
	previewLen int
}

// NewSQLiteStore opens (or creates) the detection database at dbPath and
// ensures the schema exists.
func NewSQLiteStore(dbPath string, text *utils.TextProcessor, logger *zap.Logger, previewLen int) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := createSchema(db, sqliteSchema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{
		db:         db,
		logger:     logger,
		text:       text,
		previewLen: previewLen,
	}, nil
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS detections (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		content TEXT NOT NULL,
		is_phishing BOOLEAN,
		prediction INTEGER NOT NULL,
		confidence REAL NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS feature_snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		detection_id INTEGER NOT NULL REFERENCES detections(id),
		features TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_snapshots_detection ON feature_snapshots(detection_id)`,
}

func createSchema(db *sql.DB, statements []string) error {
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Record inserts the detection and its feature snapshot in one
// transaction; neither row exists without the other.
func (s *SQLiteStore) Record(ctx context.Context, d *core.Detection, features string) (int64, error) {
	createdAt := d.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO detections (content, is_phishing, prediction, confidence, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, d.Content, d.IsPhishing, d.Prediction, d.Confidence, createdAt.Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("failed to insert detection: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get detection id: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO feature_snapshots (detection_id, features)
		VALUES (?, ?)
	`, id, features); err != nil {
		return 0, fmt.Errorf("failed to insert feature snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit detection: %w", err)
	}

	s.logger.Debug("Recorded detection",
		zap.Int64("id", id),
		zap.Int("prediction", d.Prediction),
		zap.Float64("confidence", d.Confidence))

	return id, nil
}

// History returns the limit most recent detections, most recent first.
// Ids are assigned in insertion order, so ordering by id matches
// descending timestamp order.
func (s *SQLiteStore) History(ctx context.Context, limit int) ([]core.DetectionSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content, prediction, confidence, created_at
		FROM detections
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var summaries []core.DetectionSummary
	for rows.Next() {
		var summary core.DetectionSummary
		var content, createdAt string
		if err := rows.Scan(&summary.ID, &content, &summary.Prediction, &summary.Confidence, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		summary.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at %q: %w", createdAt, err)
		}
		summary.Preview = s.text.Preview(content, s.previewLen)
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// Snapshot returns the feature snapshot recorded for a detection.
func (s *SQLiteStore) Snapshot(ctx context.Context, detectionID int64) (*core.FeatureSnapshot, error) {
	snap := &core.FeatureSnapshot{DetectionID: detectionID}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, features FROM feature_snapshots WHERE detection_id = ?
	`, detectionID).Scan(&snap.ID, &snap.Features)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no feature snapshot for detection %d", detectionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query feature snapshot: %w", err)
	}
	return snap, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
