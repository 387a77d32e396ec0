// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	SourceLayout      string
	TargetLayout      string
	Words             int
	WordListPath      string
	Seed              int64
	SkipUnsatisfiable bool
	Lessons           []LessonConfig
}

// LessonConfig names a lesson and the characters its words may use.
type LessonConfig struct {
	Name     string
	Alphabet string
}

// LessonRecord captures one reported lesson of a run.
type LessonRecord struct {
	ID         int64
	RunID      string
	Position   int
	Name       string
	Alphabet   string
	StartedAt  time.Time
	EndedAt    time.Time
	Words      int
	Chars      int
	Typos      int
	DurationMs int64
	WPM        float64
	Accuracy   float64
	Cancelled  bool
}

// KeyStats stores per-character stats for a lesson.
type KeyStats struct {
	Char         string
	Matches      int
	Typos        int
	LatencySumMs int64
	LatencyCount int64
}

// KeyAggregate aggregates character stats across lessons.
type KeyAggregate struct {
	Char         string `db:"char"`
	Matches      int    `db:"matches"`
	Typos        int    `db:"typos"`
	LatencySumMs int64  `db:"latency_sum_ms"`
	LatencyCount int64  `db:"latency_count"`
}
