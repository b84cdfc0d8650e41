package storage

import (
	"context"
	"database/sql"
	"time"

	pq "github.com/lib/pq"
)

// TournamentRun es sólo historial: nunca se lee para reconstruir estado al arrancar.
type TournamentRun struct {
	RunID           string     `json:"run_id"`
	GuildID         string     `json:"guild_id"`
	TeamSize        int        `json:"team_size"`
	Relocated       bool       `json:"relocated"`
	BracketID       int64      `json:"bracket_id"`
	BracketURL      string     `json:"bracket_url"`
	TeamLabels      []string   `json:"team_labels"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	CleanupFailures int        `json:"cleanup_failures"`
}

type RunsRepo struct{ db *sql.DB }

func NewRunsRepo(db *sql.DB) *RunsRepo { return &RunsRepo{db: db} }

func (r *RunsRepo) RecordStart(ctx context.Context, run TournamentRun) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO tournament_runs
  (run_id, guild_id, team_size, relocated, bracket_id, bracket_url, team_labels, started_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (run_id) DO NOTHING
`,
		run.RunID, run.GuildID, run.TeamSize, run.Relocated, run.BracketID, run.BracketURL,
		pq.Array(run.TeamLabels), run.StartedAt,
	)
	return err
}

func (r *RunsRepo) RecordEnd(ctx context.Context, runID string, endedAt time.Time, cleanupFailures int) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE tournament_runs SET ended_at=$2, cleanup_failures=$3 WHERE run_id=$1
`, runID, endedAt, cleanupFailures)
	return err
}

func (r *RunsRepo) ListRecent(ctx context.Context, guildID string, limit int) ([]TournamentRun, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT run_id, guild_id, team_size, relocated, bracket_id, bracket_url, team_labels,
       started_at, ended_at, cleanup_failures
  FROM tournament_runs
 WHERE guild_id = $1
 ORDER BY started_at DESC
 LIMIT $2
`, guildID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []TournamentRun{}
	for rows.Next() {
		var run TournamentRun
		if err := rows.Scan(
			&run.RunID, &run.GuildID, &run.TeamSize, &run.Relocated, &run.BracketID, &run.BracketURL,
			pq.Array(&run.TeamLabels), &run.StartedAt, &run.EndedAt, &run.CleanupFailures,
		); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}
