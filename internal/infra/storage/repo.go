package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MValdesGames/NocheEnLaMansion/internal/domain/ending"
	"github.com/MValdesGames/NocheEnLaMansion/internal/events"
)

// UpsertSave writes or replaces the serialized state for a run.
func (s *Store) UpsertSave(ctx context.Context, runID string, state []byte) error {
	query := `
		INSERT INTO saves (run_id, state, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			state=excluded.state,
			updated_at=excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, runID, string(state), time.Now().UTC()); err != nil {
		return fmt.Errorf("upserting save %s: %w", runID, err)
	}
	return nil
}

// GetSave returns the serialized state for a run, or nil when none exists.
func (s *Store) GetSave(ctx context.Context, runID string) ([]byte, error) {
	var state string
	err := s.db.GetContext(ctx, &state, `SELECT state FROM saves WHERE run_id = ?`, runID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading save %s: %w", runID, err)
	}
	return []byte(state), nil
}

// LatestSave returns the most recently written save, or "" and nil when the
// table is empty.
func (s *Store) LatestSave(ctx context.Context) (string, []byte, error) {
	var row struct {
		RunID string `db:"run_id"`
		State string `db:"state"`
	}
	err := s.db.GetContext(ctx, &row,
		`SELECT run_id, state FROM saves ORDER BY updated_at DESC LIMIT 1`)
	if err == sql.ErrNoRows {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("loading latest save: %w", err)
	}
	return row.RunID, []byte(row.State), nil
}

// DeleteSave removes a finished run's save.
func (s *Store) DeleteSave(ctx context.Context, runID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE run_id = ?`, runID)
	return err
}

// Achievement is the lifetime record of one ending, keyed by its id.
type Achievement struct {
	EndingID    string    `db:"ending_id" json:"ending_id"`
	Title       string    `db:"title" json:"title"`
	Rarity      string    `db:"rarity" json:"rarity"`
	FirstSeen   time.Time `db:"first_seen" json:"first_seen"`
	TimesEarned int       `db:"times_earned" json:"times_earned"`
	BestScore   float64   `db:"best_score" json:"best_score"`
	LastRunID   string    `db:"last_run_id" json:"last_run_id"`
}

// RecordEnding upserts the achievement row for the ending a run earned.
// The first run to reach an ending stamps first_seen; every later one
// bumps the count and keeps the best score.
func (s *Store) RecordEnding(ctx context.Context, runID string, res ending.Result, stats ending.Stats) error {
	query := `
		INSERT INTO achievements (ending_id, title, rarity, first_seen, times_earned, best_score, last_run_id)
		VALUES (?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT(ending_id) DO UPDATE SET
			times_earned=times_earned+1,
			best_score=MAX(best_score, excluded.best_score),
			last_run_id=excluded.last_run_id
	`
	_, err := s.db.ExecContext(ctx, query,
		res.Ending.ID, res.Ending.Title, res.Ending.Rarity,
		time.Now().UTC(), stats.SurvivalScore, runID,
	)
	if err != nil {
		return fmt.Errorf("recording ending for %s: %w", runID, err)
	}
	return nil
}

// ListAchievements returns the earned endings, most recently discovered first.
func (s *Store) ListAchievements(ctx context.Context, limit int) ([]Achievement, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []Achievement
	err := s.db.SelectContext(ctx, &out,
		`SELECT ending_id, title, rarity, first_seen, times_earned, best_score, last_run_id
		 FROM achievements ORDER BY first_seen DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing achievements: %w", err)
	}
	return out, nil
}

// auditRow is the table shape of an audit record.
type auditRow struct {
	ID     string    `db:"id"`
	RunID  string    `db:"run_id"`
	Wall   time.Time `db:"wall"`
	AtMs   float64   `db:"at_ms"`
	Type   string    `db:"type"`
	Actor  string    `db:"actor"`
	Value  float64   `db:"value"`
	Detail string    `db:"detail"`
}

// AppendAudit durably stores one audit record.
func (s *Store) AppendAudit(ctx context.Context, runID string, rec events.Record) error {
	query := `
		INSERT INTO audit (id, run_id, wall, at_ms, type, actor, value, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		rec.ID, runID, rec.Wall, rec.AtMs, string(rec.Type), rec.Actor, rec.Value, rec.Detail)
	if err != nil {
		return fmt.Errorf("appending audit record: %w", err)
	}
	return nil
}

// AuditByRun returns a run's full audit trail in simulation order.
func (s *Store) AuditByRun(ctx context.Context, runID string) ([]events.Record, error) {
	var rows []auditRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, run_id, wall, at_ms, type, actor, value, detail
		 FROM audit WHERE run_id = ? ORDER BY at_ms ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("loading audit for %s: %w", runID, err)
	}
	out := make([]events.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, events.Record{
			ID:     r.ID,
			Wall:   r.Wall,
			AtMs:   r.AtMs,
			Type:   events.EventType(r.Type),
			Actor:  r.Actor,
			Value:  r.Value,
			Detail: r.Detail,
		})
	}
	return out, nil
}
