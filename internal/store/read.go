package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/probe-ir/probe/internal/harness"
)

// ErrRunNotFound reports a token with no archived run.
var ErrRunNotFound = errors.New("run not found")

// ArchivedRun is one run read back from the archive.
type ArchivedRun struct {
	Token     string
	Scenario  string
	Version   string
	Status    string
	Section   []byte
	CreatedAt string
	Events    []harness.Event
}

// ReadRun loads an archived run and its event trace by token.
func (s *Store) ReadRun(ctx context.Context, token string) (*ArchivedRun, error) {
	run := &ArchivedRun{}
	err := s.db.QueryRowContext(ctx, `
		SELECT token, scenario, version, status, section, created_at
		FROM runs WHERE token = ?
	`, token).Scan(
		&run.Token, &run.Scenario, &run.Version, &run.Status,
		&run.Section, &run.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("read run %q: %w", token, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read run %q: %w", token, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT step, detail, error
		FROM run_events WHERE run_token = ?
		ORDER BY seq
	`, token)
	if err != nil {
		return nil, fmt.Errorf("read run %q events: %w", token, err)
	}
	defer rows.Close()

	for rows.Next() {
		var ev harness.Event
		if err := rows.Scan(&ev.Step, &ev.Detail, &ev.Error); err != nil {
			return nil, fmt.Errorf("read run %q events: %w", token, err)
		}
		run.Events = append(run.Events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read run %q events: %w", token, err)
	}
	return run, nil
}

// ListRuns returns archived runs for a scenario, newest first. An empty
// scenario name lists everything.
func (s *Store) ListRuns(ctx context.Context, scenario string) ([]*ArchivedRun, error) {
	query := `
		SELECT token, scenario, version, status, created_at
		FROM runs
	`
	var args []any
	if scenario != "" {
		query += " WHERE scenario = ?"
		args = append(args, scenario)
	}
	query += " ORDER BY created_at DESC, token DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*ArchivedRun
	for rows.Next() {
		run := &ArchivedRun{}
		if err := rows.Scan(&run.Token, &run.Scenario, &run.Version, &run.Status, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}
