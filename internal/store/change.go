package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/feedtune/internal/prefs"
)

// changeRepo implements ChangeRepo.
type changeRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *changeRepo) Append(ctx context.Context, rec ChangeRecord) (int64, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	snapshot, err := json.Marshal(rec.Preferences)
	if err != nil {
		return 0, fmt.Errorf("marshal preferences: %w", err)
	}

	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query, args := builder().Insert(preferenceChangesTable.Name).
		Columns("sequence", "timestamp", "profile", "session_id", "action", "detail", "preferences").
		Values(seqNum, ts.UTC(), rec.Profile, rec.SessionID, string(rec.Action), rec.Detail, string(snapshot)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("save preference change: %w", err)
	}
	return seqNum, nil
}

func (r *changeRepo) Query(ctx context.Context, profile string, opts QueryOpts) ([]ChangeRecord, error) {
	b := builder()
	sel := b.Select("id", "sequence", "timestamp", "profile", "session_id", "action", "detail", "preferences").
		From(b.Table(preferenceChangesTable.Name)).
		Where(entsql.EQ("profile", profile))

	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UTC()))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query preference changes: %w", err)
	}
	defer rows.Close()

	var out []ChangeRecord
	for rows.Next() {
		var (
			rec      ChangeRecord
			action   string
			snapshot string
		)
		if err := rows.Scan(&rec.ID, &rec.Sequence, &rec.Timestamp, &rec.Profile, &rec.SessionID, &action, &rec.Detail, &snapshot); err != nil {
			return nil, fmt.Errorf("scan preference change: %w", err)
		}
		rec.Action = prefs.Action(action)
		if err := json.Unmarshal([]byte(snapshot), &rec.Preferences); err != nil {
			return nil, fmt.Errorf("unmarshal change %d: %w", rec.Sequence, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *changeRepo) Prune(ctx context.Context, profile string, keep int) (int64, error) {
	b := builder()
	query, args := b.Select("sequence").
		From(b.Table(preferenceChangesTable.Name)).
		Where(entsql.EQ("profile", profile)).
		OrderBy(entsql.Desc("sequence")).
		Limit(1).
		Offset(keep).
		Query()

	var threshold int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil // keep or fewer changes
	}
	if err != nil {
		return 0, fmt.Errorf("find prune threshold: %w", err)
	}

	query, args = builder().Delete(preferenceChangesTable.Name).
		Where(entsql.And(entsql.EQ("profile", profile), entsql.LTE("sequence", threshold))).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("prune preference changes: %w", err)
	}
	return res.RowsAffected()
}
