package store

import (
	"context"
	"fmt"

	"github.com/probe-ir/probe/internal/harness"
)

// WriteRun archives a harness result: the run row plus its event trace,
// in one transaction. Archiving an already-archived token is a no-op,
// so re-running a scenario with a pinned token never duplicates rows.
func (s *Store) WriteRun(ctx context.Context, result *harness.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (token, scenario, version, status, section)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(token) DO NOTHING
	`,
		result.RunToken,
		result.Scenario,
		result.Version,
		result.Status,
		result.Section,
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	// When the token was already archived, skip the events too.
	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	if inserted == 0 {
		return tx.Commit()
	}

	for seq, ev := range result.Events {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO run_events (run_token, seq, step, detail, error)
			VALUES (?, ?, ?, ?, ?)
		`,
			result.RunToken, seq, ev.Step, ev.Detail, ev.Error,
		)
		if err != nil {
			return fmt.Errorf("write run event %d: %w", seq, err)
		}
	}

	return tx.Commit()
}
