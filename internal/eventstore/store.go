// Package eventstore keeps a local log of verified webhook deliveries in
// SQLite. Deliveries are keyed by a BLAKE3 fingerprint of the raw body so
// platform retries are recorded once.
package eventstore

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"
	_ "modernc.org/sqlite"

	"github.com/mattjoyce/vortex/webhook"
)

// Record is one stored delivery.
type Record struct {
	ID          string          `json:"id"`
	Fingerprint string          `json:"fingerprint"`
	Kind        webhook.Kind    `json:"kind"`
	EventID     string          `json:"event_id"`
	Label       string          `json:"label"`
	AccountID   string          `json:"account_id,omitempty"`
	Payload     json.RawMessage `json:"payload"`
	ReceivedAt  time.Time       `json:"received_at"`
}

// Store is a SQLite-backed delivery log. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (and creates if needed) the store at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := checkLocalFilesystem(path); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(pctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy_timeout: %w", err)
	}
	if err := bootstrap(pctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, now: time.Now}, nil
}

func bootstrap(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS webhook_events (
  id          TEXT PRIMARY KEY,
  fingerprint TEXT NOT NULL UNIQUE,
  kind        TEXT NOT NULL,
  event_id    TEXT,
  label       TEXT,
  account_id  TEXT,
  payload     JSON NOT NULL,
  received_at TEXT NOT NULL
);`,
		`CREATE INDEX IF NOT EXISTS webhook_events_received_at_idx ON webhook_events(received_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap sqlite: %w", err)
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Fingerprint returns the hex BLAKE3-256 digest of raw.
func Fingerprint(raw []byte) string {
	sum := blake3.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// receivedAtLayout is fixed width so received_at sorts chronologically as
// text. RFC3339Nano drops trailing zeros and does not.
const receivedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Record stores ev. It reports false, without error, when a delivery with
// the same body was already stored.
func (s *Store) Record(ctx context.Context, ev webhook.Event, raw []byte) (bool, error) {
	if ev == nil {
		return false, errors.New("record: nil event")
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO webhook_events (id, fingerprint, kind, event_id, label, account_id, payload, received_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(fingerprint) DO NOTHING;`,
		uuid.NewString(),
		Fingerprint(raw),
		string(ev.Kind()),
		ev.EventID(),
		ev.Label(),
		accountID(ev),
		string(raw),
		s.now().UTC().Format(receivedAtLayout),
	)
	if err != nil {
		return false, fmt.Errorf("insert webhook event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert webhook event: %w", err)
	}
	return n == 1, nil
}

// List returns up to limit records, newest first. A limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	query := `SELECT id, fingerprint, kind, event_id, label, account_id, payload, received_at
FROM webhook_events ORDER BY received_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list webhook events: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r                         Record
			kind, payload, receivedAt string
			eventID, label, account   sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Fingerprint, &kind, &eventID, &label, &account, &payload, &receivedAt); err != nil {
			return nil, fmt.Errorf("scan webhook event: %w", err)
		}
		r.Kind = webhook.Kind(kind)
		r.EventID = eventID.String
		r.Label = label.String
		r.AccountID = account.String
		r.Payload = json.RawMessage(payload)
		if r.ReceivedAt, err = time.Parse(time.RFC3339Nano, receivedAt); err != nil {
			return nil, fmt.Errorf("parse received_at %q: %w", receivedAt, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Count returns the number of stored deliveries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM webhook_events;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count webhook events: %w", err)
	}
	return n, nil
}

func accountID(ev webhook.Event) string {
	switch e := ev.(type) {
	case *webhook.StateChangeEvent:
		return e.AccountID
	case *webhook.AnalyticsEvent:
		return e.AccountID
	}
	return ""
}
