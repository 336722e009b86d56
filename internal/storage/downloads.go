package storage

import (
	"fmt"
	"log"
	"time"
)

// DownloadRecord outcome of one file delivery request. Content is never stored.
type DownloadRecord struct {
	RequestID    string    `json:"request_id"`
	ArtifactName string    `json:"artifact_name"`
	Status       int       `json:"status"`
	BytesServed  int64     `json:"bytes_served"`
	ServedAt     time.Time `json:"served_at"`
}

// DownloadStore handles download audit persistence in SQLite
type DownloadStore struct {
	db         *DB
	maxRecords int
}

// NewDownloadStore creates a new download store
func NewDownloadStore(db *DB, maxRecords int) *DownloadStore {
	if maxRecords <= 0 {
		maxRecords = 10000 // Default maximum records
	}
	return &DownloadStore{
		db:         db,
		maxRecords: maxRecords,
	}
}

// RecordDownload stores a delivery outcome
func (s *DownloadStore) RecordDownload(rec DownloadRecord) error {
	if rec.ServedAt.IsZero() {
		rec.ServedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO downloads (request_id, artifact_name, status, bytes_served, served_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query, rec.RequestID, rec.ArtifactName, rec.Status, rec.BytesServed, rec.ServedAt)
	if err != nil {
		return fmt.Errorf("failed to record download: %w", err)
	}

	// Cleanup old records if exceeding max
	if err := s.cleanupOldRecords(); err != nil {
		log.Printf("Warning: failed to cleanup old downloads: %v\n", err)
	}

	return nil
}

// ListRecent retrieves the N most recent downloads, newest first
func (s *DownloadStore) ListRecent(limit int) ([]DownloadRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT request_id, artifact_name, status, bytes_served, served_at
		FROM downloads
		ORDER BY served_at DESC, id DESC
		LIMIT ?
	`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list downloads: %w", err)
	}
	defer rows.Close()

	records := []DownloadRecord{}
	for rows.Next() {
		var rec DownloadRecord
		if err := rows.Scan(&rec.RequestID, &rec.ArtifactName, &rec.Status, &rec.BytesServed, &rec.ServedAt); err != nil {
			return nil, fmt.Errorf("failed to scan download: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating downloads: %w", err)
	}

	return records, nil
}

// CountByArtifact returns the number of successful downloads per artifact
func (s *DownloadStore) CountByArtifact() (map[string]int, error) {
	query := `
		SELECT artifact_name, COUNT(*)
		FROM downloads
		WHERE status = 200
		GROUP BY artifact_name
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to count downloads: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("failed to scan download count: %w", err)
		}
		counts[name] = count
	}

	return counts, rows.Err()
}

// cleanupOldRecords removes old records exceeding the maximum count
func (s *DownloadStore) cleanupOldRecords() error {
	query := `
		DELETE FROM downloads
		WHERE id NOT IN (
			SELECT id FROM downloads
			ORDER BY served_at DESC, id DESC
			LIMIT ?
		)
	`

	_, err := s.db.Exec(query, s.maxRecords)
	return err
}
