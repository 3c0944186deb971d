package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"leadfinder-engine/internal/domain"
)

// Lead is a saved job posting the user wants to follow up on.
type Lead struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	Location string   `json:"location"`
	URL      string   `json:"url"`
	Salary   string   `json:"salary"`
	Tags     []string `json:"tags"`
	Platform string   `json:"platform"`
	Notes    string   `json:"notes"`
	SavedAt  string   `json:"savedAt"`
}

type ListLeadsOpts struct {
	Sort  string // saved | company | title
	Limit int
}

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}

	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS leads (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  company TEXT NOT NULL,
  location TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL DEFAULT '',
  salary TEXT NOT NULL DEFAULT '',
  tags TEXT NOT NULL DEFAULT '[]',
  platform TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT '',
  dedup_key TEXT NOT NULL,
  saved_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_leads_dedup_key
ON leads(dedup_key);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_leads_saved_at
ON leads(saved_at);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}

// InsertLeadIgnore saves a posting as a lead. Returns false when a lead
// with the same dedup key already exists.
func InsertLeadIgnore(db *sql.DB, job domain.JobPosting, notes string) (added bool, err error) {
	tagsB, _ := json.Marshal(job.Tags)
	if job.Tags == nil {
		tagsB = []byte("[]")
	}

	_, err = db.Exec(`
INSERT OR IGNORE INTO leads (title, company, location, url, salary, tags, platform, notes, dedup_key, saved_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		job.Title, job.Company, job.Location, job.URL, job.Salary, string(tagsB),
		job.SourcePlatform, notes, job.DedupKey(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("insert lead: %w", err)
	}

	var changes int
	if e := db.QueryRow(`SELECT changes();`).Scan(&changes); e == nil {
		return changes > 0, nil
	}
	return true, nil
}

func ListLeads(ctx context.Context, db *sql.DB, opts ListLeadsOpts) ([]Lead, error) {
	if opts.Limit <= 0 || opts.Limit > 2000 {
		opts.Limit = 500
	}

	// whitelist sort columns (prevents SQL injection)
	sortCol, order := "saved_at", "desc"
	switch opts.Sort {
	case "company":
		sortCol, order = "company", "asc"
	case "title":
		sortCol, order = "title", "asc"
	}

	query := fmt.Sprintf(`
SELECT id, title, company, location, url, salary, tags, platform, notes, saved_at
FROM leads
ORDER BY %s %s
LIMIT ?;
`, sortCol, order)

	rows, err := db.QueryContext(ctx, query, opts.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Lead
	for rows.Next() {
		var l Lead
		var tagsJSON string
		if err := rows.Scan(
			&l.ID,
			&l.Title,
			&l.Company,
			&l.Location,
			&l.URL,
			&l.Salary,
			&tagsJSON,
			&l.Platform,
			&l.Notes,
			&l.SavedAt,
		); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(tagsJSON), &l.Tags)
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func GetLead(ctx context.Context, db *sql.DB, id int64) (Lead, error) {
	var l Lead
	var tagsJSON string
	err := db.QueryRowContext(ctx, `
SELECT id, title, company, location, url, salary, tags, platform, notes, saved_at
FROM leads
WHERE id = ?;`, id).Scan(
		&l.ID, &l.Title, &l.Company, &l.Location, &l.URL, &l.Salary,
		&tagsJSON, &l.Platform, &l.Notes, &l.SavedAt,
	)
	if err != nil {
		return Lead{}, err
	}
	_ = json.Unmarshal([]byte(tagsJSON), &l.Tags)
	return l, nil
}

func DeleteLead(db *sql.DB, id int64) (deleted bool, err error) {
	res, err := db.Exec(`DELETE FROM leads WHERE id = ?;`, id)
	if err != nil {
		return false, fmt.Errorf("delete lead: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
