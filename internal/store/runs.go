package store

import (
	"time"

	"github.com/google/uuid"
)

// MoodRun records one invocation of the mood summarizer.
type MoodRun struct {
	RunID        string
	CreatedAt    time.Time
	Samples      int
	AvgIntensity float64
	TopMood      string
	SummaryPath  string
	SummaryJSON  string
}

const timeLayout = "2006-01-02T15:04:05Z"

// AddMoodRun stores run, assigning a fresh RunID when it has none.
func (d *DB) AddMoodRun(run MoodRun) (string, error) {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	if run.SummaryJSON == "" {
		run.SummaryJSON = "{}"
	}
	_, err := d.db.Exec(
		`INSERT INTO mood_runs (run_id, created_at, samples, avg_intensity, top_mood, summary_path, summary_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.RunID,
		run.CreatedAt.UTC().Format(timeLayout),
		run.Samples,
		run.AvgIntensity,
		run.TopMood,
		run.SummaryPath,
		run.SummaryJSON,
	)
	if err != nil {
		return "", err
	}
	return run.RunID, nil
}

// MoodRuns returns the most recent runs first.
func (d *DB) MoodRuns(limit int) ([]MoodRun, error) {
	query := `SELECT run_id, created_at, samples, avg_intensity, top_mood, summary_path, summary_json
		FROM mood_runs ORDER BY created_at DESC, rowid DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []MoodRun
	for rows.Next() {
		var r MoodRun
		var created string
		if err := rows.Scan(&r.RunID, &created, &r.Samples, &r.AvgIntensity, &r.TopMood, &r.SummaryPath, &r.SummaryJSON); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(timeLayout, created)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (d *DB) MoodRunCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM mood_runs").Scan(&n)
	return n, err
}
