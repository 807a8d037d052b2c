package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table definitions in the shape ent's migrator expects.
var (
	// feedPreferencesColumns holds one row per profile.
	feedPreferencesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "profile", Type: field.TypeString, Unique: true},
		{Name: "difficulty", Type: field.TypeFloat64, Nullable: true},
		{Name: "mcq", Type: field.TypeFloat64},
		{Name: "flashcard", Type: field.TypeFloat64},
		{Name: "info_card", Type: field.TypeFloat64},
		{Name: "resource_card", Type: field.TypeFloat64, Default: 0},
		{Name: "question_style", Type: field.TypeString, Nullable: true},
		{Name: "updated_at", Type: field.TypeTime},
	}
	feedPreferencesTable = &schema.Table{
		Name:       "feed_preferences",
		Columns:    feedPreferencesColumns,
		PrimaryKey: []*schema.Column{feedPreferencesColumns[0]},
	}

	// preferenceChangesColumns is the append-only change log.
	preferenceChangesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "profile", Type: field.TypeString},
		{Name: "session_id", Type: field.TypeString},
		{Name: "action", Type: field.TypeString},
		{Name: "detail", Type: field.TypeString, Default: ""},
		{Name: "preferences", Type: field.TypeJSON},
	}
	preferenceChangesTable = &schema.Table{
		Name:       "preference_changes",
		Columns:    preferenceChangesColumns,
		PrimaryKey: []*schema.Column{preferenceChangesColumns[0]},
		Indexes: []*schema.Index{
			{Name: "preferencechange_profile", Columns: []*schema.Column{preferenceChangesColumns[3]}},
			{Name: "preferencechange_timestamp", Columns: []*schema.Column{preferenceChangesColumns[2]}},
			{Name: "preferencechange_session_id", Columns: []*schema.Column{preferenceChangesColumns[4]}},
		},
	}

	tables = []*schema.Table{
		feedPreferencesTable,
		preferenceChangesTable,
	}
)
