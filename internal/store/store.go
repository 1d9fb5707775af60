// Package store keeps the privacy-conscious visitor log and the contact
// submission log in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tradesy30/portfolio/internal/contact"
)

// Timestamps are stored as UTC text in SQLite's own datetime format so the
// date functions in queries compare them directly.
const timeLayout = "2006-01-02 15:04:05"

// Visit is one tracked page view. The client address is stored hashed.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
	Country   string    `json:"country,omitempty"`
}

type PageStat struct {
	Path   string `json:"path"`
	Views  int64  `json:"views"`
	Unique int64  `json:"unique"`
}

type Submission struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Delivered bool      `json:"delivered"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Stats struct {
	TotalVisitors        int64      `json:"total_visitors"`
	UniqueVisitors       int64      `json:"unique_visitors"`
	VisitorsToday        int64      `json:"visitors_today"`
	VisitorsThisWeek     int64      `json:"visitors_this_week"`
	TopPages             []PageStat `json:"top_pages"`
	RecentVisitors       []Visit    `json:"recent_visitors"`
	TotalSubmissions     int64      `json:"total_submissions"`
	DeliveredSubmissions int64      `json:"delivered_submissions"`
	FailedSubmissions    int64      `json:"failed_submissions"`
}

type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT,
	path TEXT,
	timestamp TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	country TEXT
);
CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp);
CREATE TABLE IF NOT EXISTS contact_submissions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	message TEXT NOT NULL,
	delivered INTEGER NOT NULL DEFAULT 0,
	error TEXT,
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// Open opens (creating if needed) the database at path and migrates it.
func Open(path string) (*Store, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// RecordVisit inserts v. A zero Timestamp means now.
func (s *Store) RecordVisit(ctx context.Context, v Visit) error {
	if v.Timestamp.IsZero() {
		v.Timestamp = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp, country)
		VALUES (?, ?, ?, ?, ?)
	`, v.HashedIP, v.UserAgent, v.Path, formatTime(v.Timestamp), nullable(v.Country))
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// RecordSubmission stores a contact submission outcome.
func (s *Store) RecordSubmission(ctx context.Context, rec contact.Record) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_submissions (hashed_ip, name, email, message, delivered, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.HashedIP, rec.Name, rec.Email, rec.Message, rec.Delivered, nullable(rec.Error), formatTime(rec.CreatedAt))
	if err != nil {
		return fmt.Errorf("record submission: %w", err)
	}
	return nil
}

// Stats collects the admin dashboard numbers.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	counts := []struct {
		query string
		dest  *int64
	}{
		{`SELECT COUNT(*) FROM visitors`, &stats.TotalVisitors},
		{`SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, &stats.UniqueVisitors},
		{`SELECT COUNT(*) FROM visitors WHERE DATE(timestamp) = DATE('now')`, &stats.VisitorsToday},
		{`SELECT COUNT(*) FROM visitors WHERE timestamp >= datetime('now', '-7 days')`, &stats.VisitorsThisWeek},
		{`SELECT COUNT(*) FROM contact_submissions`, &stats.TotalSubmissions},
		{`SELECT COUNT(*) FROM contact_submissions WHERE delivered = 1`, &stats.DeliveredSubmissions},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}
	stats.FailedSubmissions = stats.TotalSubmissions - stats.DeliveredSubmissions

	top, err := s.TopPages(ctx, 10)
	if err != nil {
		return nil, err
	}
	stats.TopPages = top

	recent, err := s.RecentVisitors(ctx, 50)
	if err != nil {
		return nil, err
	}
	stats.RecentVisitors = recent

	return stats, nil
}

// TopPages ranks paths by view count.
func (s *Store) TopPages(ctx context.Context, limit int) ([]PageStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, COUNT(*) AS views, COUNT(DISTINCT hashed_ip) AS uniq
		FROM visitors
		GROUP BY path
		ORDER BY views DESC, path ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("top pages: %w", err)
	}
	defer rows.Close()

	var out []PageStat
	for rows.Next() {
		var p PageStat
		if err := rows.Scan(&p.Path, &p.Views, &p.Unique); err != nil {
			return nil, fmt.Errorf("top pages: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// RecentVisitors returns the newest visits first.
func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp, COALESCE(country, '')
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent visitors: %w", err)
	}
	defer rows.Close()

	var out []Visit
	for rows.Next() {
		var v Visit
		var ts string
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts, &v.Country); err != nil {
			return nil, fmt.Errorf("recent visitors: %w", err)
		}
		v.Timestamp = parseTime(ts)
		out = append(out, v)
	}
	return out, rows.Err()
}

// RecentSubmissions returns the newest contact submissions first.
func (s *Store) RecentSubmissions(ctx context.Context, limit int) ([]Submission, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, COALESCE(hashed_ip, ''), name, email, message, delivered, COALESCE(error, ''), created_at
		FROM contact_submissions
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent submissions: %w", err)
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var sub Submission
		var ts string
		if err := rows.Scan(&sub.ID, &sub.HashedIP, &sub.Name, &sub.Email, &sub.Message, &sub.Delivered, &sub.Error, &ts); err != nil {
			return nil, fmt.Errorf("recent submissions: %w", err)
		}
		sub.CreatedAt = parseTime(ts)
		out = append(out, sub)
	}
	return out, rows.Err()
}

// PurgeVisitorsOlderThan deletes visits older than the retention window and
// reports how many rows went.
func (s *Store) PurgeVisitorsOlderThan(ctx context.Context, months int) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM visitors
		WHERE timestamp < datetime('now', ?)
	`, fmt.Sprintf("-%d months", months))
	if err != nil {
		return 0, fmt.Errorf("purge visitors: %w", err)
	}
	return res.RowsAffected()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
