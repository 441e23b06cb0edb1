package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/fuchs284/Cybersecurityproject/internal/core"
	"github.com/fuchs284/Cybersecurityproject/internal/utils"
)

// MySQLStore is a MySQL implementation of the DetectionStore interface.
type MySQLStore struct {
	db         *sql.DB
	logger     *zap.Logger
	text       *utils.TextProcessor
	previewLen int
}

// NewMySQLStore connects to the given DSN and ensures the schema exists.
// The DSN should include parseTime=true.
func NewMySQLStore(dsn string, text *utils.TextProcessor, logger *zap.Logger, previewLen int) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	if err := createSchema(db, mysqlSchema); err != nil {
		db.Close()
		return nil, err
	}

	return &MySQLStore{
		db:         db,
		logger:     logger,
		text:       text,
		previewLen: previewLen,
	}, nil
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS detections (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		content MEDIUMTEXT NOT NULL,
		is_phishing BOOLEAN NULL,
		prediction INT NOT NULL,
		confidence DOUBLE NOT NULL,
		created_at DATETIME(6) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS feature_snapshots (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		detection_id BIGINT NOT NULL,
		features MEDIUMTEXT NOT NULL,
		INDEX idx_snapshots_detection (detection_id),
		FOREIGN KEY (detection_id) REFERENCES detections(id)
	)`,
}

// Record inserts the detection and its feature snapshot in one
// transaction.
func (s *MySQLStore) Record(ctx context.Context, d *core.Detection, features string) (int64, error) {
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
	`, d.Content, d.IsPhishing, d.Prediction, d.Confidence, createdAt)
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

	return id, nil
}

// History returns the limit most recent detections, most recent first.
func (s *MySQLStore) History(ctx context.Context, limit int) ([]core.DetectionSummary, error) {
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
		var content string
		if err := rows.Scan(&summary.ID, &content, &summary.Prediction, &summary.Confidence, &summary.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		summary.Preview = s.text.Preview(content, s.previewLen)
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// Snapshot returns the feature snapshot recorded for a detection.
func (s *MySQLStore) Snapshot(ctx context.Context, detectionID int64) (*core.FeatureSnapshot, error) {
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
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
