package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/feedtune/internal/prefs"
)

// preferenceRepo implements PreferenceRepo with ent's SQL builder.
type preferenceRepo struct {
	db *sql.DB
}

func (r *preferenceRepo) Load(ctx context.Context, profile string) (*StoredPreferences, error) {
	b := builder()
	query, args := b.Select("difficulty", "mcq", "flashcard", "info_card", "resource_card", "question_style", "updated_at").
		From(b.Table(feedPreferencesTable.Name)).
		Where(entsql.EQ("profile", profile)).
		Query()

	var (
		difficulty sql.NullFloat64
		style      sql.NullString
		mix        prefs.ContentMix
		updatedAt  time.Time
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&difficulty, &mix.MCQ, &mix.Flashcard, &mix.InfoCard, &mix.ResourceCard, &style, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query preferences: %w", err)
	}

	p := prefs.FeedPreferences{ContentMix: mix}
	if difficulty.Valid {
		p.Difficulty = prefs.Float(difficulty.Float64)
	}
	if style.Valid {
		p.QuestionStyle = prefs.Style(prefs.QuestionStyle(style.String))
	}
	return &StoredPreferences{Profile: profile, Preferences: p, UpdatedAt: updatedAt}, nil
}

func (r *preferenceRepo) Save(ctx context.Context, profile string, p prefs.FeedPreferences) error {
	var (
		difficulty sql.NullFloat64
		style      sql.NullString
	)
	if p.Difficulty != nil {
		difficulty = sql.NullFloat64{Float64: *p.Difficulty, Valid: true}
	}
	if p.QuestionStyle != nil {
		style = sql.NullString{String: string(*p.QuestionStyle), Valid: true}
	}

	query, args := builder().Insert(feedPreferencesTable.Name).
		Columns("profile", "difficulty", "mcq", "flashcard", "info_card", "resource_card", "question_style", "updated_at").
		Values(profile, difficulty, p.ContentMix.MCQ, p.ContentMix.Flashcard, p.ContentMix.InfoCard, p.ContentMix.ResourceCard, style, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("profile"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

func (r *preferenceRepo) Delete(ctx context.Context, profile string) error {
	query, args := builder().Delete(feedPreferencesTable.Name).
		Where(entsql.EQ("profile", profile)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete preferences: %w", err)
	}
	return nil
}

func (r *preferenceRepo) Profiles(ctx context.Context) ([]string, error) {
	b := builder()
	query, args := b.Select("profile").
		From(b.Table(feedPreferencesTable.Name)).
		OrderBy("profile").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
