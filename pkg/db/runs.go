package db

import (
	"fmt"
	"strings"
	"time"

	"leadharvest/models"
)

// Run is one recorded pipeline run.
type Run struct {
	RunID      int64
	RootDomain string
	StartedAt  time.Time
	Discovered int
	Fetched    int
	Failed     int
	Scored     int
	Enriched   int
}

// InsertRun creates a run row and returns its id.
func (db *DB) InsertRun(rootDomain string) (int64, error) {
	result, err := db.Exec("INSERT INTO runs (root_domain) VALUES (?)", rootDomain)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// UpdateRunStats stores the final counters for a run.
func (db *DB) UpdateRunStats(runID int64, discovered, fetched, failed, scored, enriched int) error {
	_, err := db.Exec(`
		UPDATE runs SET discovered = ?, fetched = ?, failed = ?, scored = ?, enriched = ?
		WHERE run_id = ?
	`, discovered, fetched, failed, scored, enriched, runID)
	if err != nil {
		return fmt.Errorf("failed to update run stats: %w", err)
	}
	return nil
}

// GetRun returns one run by id.
func (db *DB) GetRun(runID int64) (*Run, error) {
	run := &Run{}
	err := db.QueryRow(`
		SELECT run_id, root_domain, started_at, discovered, fetched, failed, scored, enriched
		FROM runs WHERE run_id = ?
	`, runID).Scan(&run.RunID, &run.RootDomain, &run.StartedAt,
		&run.Discovered, &run.Fetched, &run.Failed, &run.Scored, &run.Enriched)
	if err != nil {
		return nil, fmt.Errorf("failed to get run %d: %w", runID, err)
	}
	return run, nil
}

// InsertLead stores one scored record under a run. Score and country must
// already be attached.
func (db *DB) InsertLead(runID int64, rec *models.LeadRecord) error {
	if rec.Score == nil || rec.Country == nil {
		return fmt.Errorf("record for %s is missing score or classification", rec.Hostname)
	}
	_, err := db.Exec(`
		INSERT INTO leads (run_id, hostname, title, email, phone, address,
			property_count, has_contact_form, languages,
			score, grade, country, country_confidence, country_method)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, rec.Hostname, rec.Title, rec.Contact.Email, rec.Contact.Phone,
		rec.Contact.Address, rec.PropertyCount, rec.HasContactForm,
		strings.Join(rec.Languages, ","),
		rec.Score.Score, string(rec.Score.Grade),
		rec.Country.Country, string(rec.Country.Confidence), string(rec.Country.Method))
	if err != nil {
		return fmt.Errorf("failed to insert lead for %s: %w", rec.Hostname, err)
	}
	return nil
}

// CountLeads returns how many leads a run recorded.
func (db *DB) CountLeads(runID int64) (int, error) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM leads WHERE run_id = ?", runID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count leads: %w", err)
	}
	return count, nil
}

// TopLeads returns up to limit leads of a run ordered by score descending.
func (db *DB) TopLeads(runID int64, limit int) ([]string, error) {
	rows, err := db.Query(`
		SELECT hostname FROM leads WHERE run_id = ? ORDER BY score DESC, lead_id ASC LIMIT ?
	`, runID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top leads: %w", err)
	}
	defer rows.Close()

	var hostnames []string
	for rows.Next() {
		var hostname string
		if err := rows.Scan(&hostname); err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		hostnames = append(hostnames, hostname)
	}
	return hostnames, rows.Err()
}
