// Package store keeps the lessons of a run in an in-memory SQLite database.
// Nothing is written to disk; the data is gone when the store is closed.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/verte-zerg/keydrill/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

const memoryDSN = ":memory:"

// Store wraps SQLite access for lesson data.
type Store struct {
	db *sqlx.DB
}

type lessonRow struct {
	ID         int64   `db:"id"`
	RunID      string  `db:"run_id"`
	Position   int     `db:"position"`
	Name       string  `db:"name"`
	Alphabet   string  `db:"alphabet"`
	StartedAt  string  `db:"started_at"`
	EndedAt    string  `db:"ended_at"`
	Words      int     `db:"words"`
	Chars      int     `db:"chars"`
	Typos      int     `db:"typos"`
	DurationMs int64   `db:"duration_ms"`
	WPM        float64 `db:"wpm"`
	Accuracy   float64 `db:"accuracy"`
	Cancelled  bool    `db:"cancelled"`
}

// Open creates an empty in-memory database and applies the schema.
func Open() (*Store, error) {
	db, err := sqlx.Connect("sqlite", memoryDSN)
	if err != nil {
		return nil, err
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS lessons (
			id INTEGER PRIMARY KEY,
			run_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			alphabet TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			words INTEGER NOT NULL,
			chars INTEGER NOT NULL,
			typos INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			wpm REAL NOT NULL,
			accuracy REAL NOT NULL,
			cancelled INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS lesson_key_stats (
			lesson_id INTEGER NOT NULL,
			char TEXT NOT NULL,
			matches INTEGER NOT NULL,
			typos INTEGER NOT NULL,
			latency_sum_ms INTEGER NOT NULL,
			latency_count INTEGER NOT NULL,
			PRIMARY KEY (lesson_id, char)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_lessons_run ON lessons(run_id, position);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return nil
}

// InsertLesson stores a reported lesson and its per-key stats.
func (s *Store) InsertLesson(ctx context.Context, rec model.LessonRecord, keys []model.KeyStats) (id int64, err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.NamedExecContext(ctx,
		`INSERT INTO lessons (run_id, position, name, alphabet, started_at, ended_at, words, chars, typos, duration_ms, wpm, accuracy, cancelled)
		 VALUES (:run_id, :position, :name, :alphabet, :started_at, :ended_at, :words, :chars, :typos, :duration_ms, :wpm, :accuracy, :cancelled)`,
		toRow(rec))
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(keys) > 0 {
		stmt, err := tx.PreparexContext(ctx,
			`INSERT INTO lesson_key_stats (lesson_id, char, matches, typos, latency_sum_ms, latency_count)
			 VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, ks := range keys {
			if _, err := stmt.ExecContext(ctx, id, ks.Char, ks.Matches, ks.Typos, ks.LatencySumMs, ks.LatencyCount); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListLessons returns the lessons of a run in play order.
func (s *Store) ListLessons(ctx context.Context, runID string) ([]model.LessonRecord, error) {
	var rows []lessonRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, run_id, position, name, alphabet, started_at, ended_at, words, chars, typos, duration_ms, wpm, accuracy, cancelled
		 FROM lessons
		 WHERE run_id = ?
		 ORDER BY position ASC, id ASC`, runID)
	if err != nil {
		return nil, err
	}
	records := make([]model.LessonRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.record()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// ListKeyAggregates sums per-key stats over every lesson of a run.
func (s *Store) ListKeyAggregates(ctx context.Context, runID string) ([]model.KeyAggregate, error) {
	var aggs []model.KeyAggregate
	err := s.db.SelectContext(ctx, &aggs,
		`SELECT ks.char, SUM(ks.matches) AS matches, SUM(ks.typos) AS typos,
			SUM(ks.latency_sum_ms) AS latency_sum_ms, SUM(ks.latency_count) AS latency_count
		 FROM lesson_key_stats ks
		 JOIN lessons l ON l.id = ks.lesson_id
		 WHERE l.run_id = ?
		 GROUP BY ks.char
		 ORDER BY ks.char`, runID)
	if err != nil {
		return nil, err
	}
	return aggs, nil
}

func toRow(rec model.LessonRecord) lessonRow {
	return lessonRow{
		RunID:      rec.RunID,
		Position:   rec.Position,
		Name:       rec.Name,
		Alphabet:   rec.Alphabet,
		StartedAt:  rec.StartedAt.Format(time.RFC3339Nano),
		EndedAt:    rec.EndedAt.Format(time.RFC3339Nano),
		Words:      rec.Words,
		Chars:      rec.Chars,
		Typos:      rec.Typos,
		DurationMs: rec.DurationMs,
		WPM:        rec.WPM,
		Accuracy:   rec.Accuracy,
		Cancelled:  rec.Cancelled,
	}
}

func (r lessonRow) record() (model.LessonRecord, error) {
	startedAt, err := time.Parse(time.RFC3339Nano, r.StartedAt)
	if err != nil {
		return model.LessonRecord{}, err
	}
	endedAt, err := time.Parse(time.RFC3339Nano, r.EndedAt)
	if err != nil {
		return model.LessonRecord{}, err
	}
	return model.LessonRecord{
		ID:         r.ID,
		RunID:      r.RunID,
		Position:   r.Position,
		Name:       r.Name,
		Alphabet:   r.Alphabet,
		StartedAt:  startedAt,
		EndedAt:    endedAt,
		Words:      r.Words,
		Chars:      r.Chars,
		Typos:      r.Typos,
		DurationMs: r.DurationMs,
		WPM:        r.WPM,
		Accuracy:   r.Accuracy,
		Cancelled:  r.Cancelled,
	}, nil
}
