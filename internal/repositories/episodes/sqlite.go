package episodes

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/pickupworld/internal/errors"
)

// SQLiteRepository implements Repository on a local sqlite file
type SQLiteRepository struct {
	db   *sql.DB
	once sync.Once
}

// Ensure SQLiteRepository implements Repository
var _ Repository = (*SQLiteRepository)(nil)

// OpenSQLite opens (creating if needed) the episode log at path
func OpenSQLite(path string) (*SQLiteRepository, error) {
	if path == "" {
		return nil, errors.InvalidArgument("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create directory for %s", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteRepository{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return errors.Wrapf(err, "failed to apply %s", p)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS episodes (
			session_id TEXT NOT NULL,
			episode INTEGER NOT NULL,
			steps INTEGER NOT NULL,
			total_reward REAL NOT NULL,
			terminated INTEGER NOT NULL,
			truncated INTEGER NOT NULL,
			event TEXT NOT NULL DEFAULT '',
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			PRIMARY KEY (session_id, episode)
		);`,
		`CREATE INDEX IF NOT EXISTS episodes_event ON episodes(event) WHERE event <> '';`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return errors.Wrap(err, "failed to initialize schema")
		}
	}
	return nil
}

// Close closes the database
func (r *SQLiteRepository) Close() error {
	var err error
	r.once.Do(func() {
		err = r.db.Close()
	})
	return err
}

// Record inserts an episode summary
func (r *SQLiteRepository) Record(ctx context.Context, input *RecordInput) (*RecordOutput, error) {
	if err := validateRecord(input); err != nil {
		return nil, err
	}

	sum := input.Summary
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO episodes
			(session_id, episode, steps, total_reward, terminated, truncated, event, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.SessionID,
		sum.Episode,
		sum.Steps,
		sum.TotalReward,
		boolToInt(sum.Terminated),
		boolToInt(sum.Truncated),
		sum.Event,
		formatTime(sum.StartedAt),
		formatTime(sum.EndedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, errors.AlreadyExistsf("episode %d of session %s already recorded", sum.Episode, sum.SessionID)
		}
		return nil, errors.Wrap(err, "failed to record episode")
	}

	return &RecordOutput{}, nil
}

// List returns a session's episodes ordered by episode number
func (r *SQLiteRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if err := validateList(input); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT session_id, episode, steps, total_reward, terminated, truncated, event, started_at, ended_at
		FROM episodes WHERE session_id = ? ORDER BY episode ASC LIMIT ?`,
		input.SessionID, limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query episodes")
	}
	defer func() { _ = rows.Close() }()

	out := make([]*Summary, 0)
	for rows.Next() {
		var (
			sum                   Summary
			terminated, truncated int
			startedAt, endedAt    string
		)
		if err := rows.Scan(&sum.SessionID, &sum.Episode, &sum.Steps, &sum.TotalReward,
			&terminated, &truncated, &sum.Event, &startedAt, &endedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan episode")
		}
		sum.Terminated = terminated != 0
		sum.Truncated = truncated != 0
		if sum.StartedAt, err = parseTime(startedAt); err != nil {
			return nil, err
		}
		if sum.EndedAt, err = parseTime(endedAt); err != nil {
			return nil, err
		}
		out = append(out, &sum)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read episodes")
	}

	return &ListOutput{Summaries: out}, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, errors.WrapWithCode(err, errors.CodeDataLoss, "malformed timestamp in episode log")
	}
	return t, nil
}
