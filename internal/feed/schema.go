package feed

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/feedtune/internal/prefs"
)

var contentMixSchema = map[string]any{
	"type":     "object",
	"required": []any{"mcq", "flashcard", "info_card", "resource_card"},
	"properties": map[string]any{
		"mcq":           map[string]any{"type": "number", "minimum": 0, "maximum": 1},
		"flashcard":     map[string]any{"type": "number", "minimum": 0, "maximum": 1},
		"info_card":     map[string]any{"type": "number", "minimum": 0, "maximum": 1},
		"resource_card": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
	},
	"additionalProperties": false,
}

// preferencesSchema describes FeedPreferences on the wire.
var preferencesSchema = map[string]any{
	"type":     "object",
	"required": []any{"contentMix"},
	"properties": map[string]any{
		"difficulty": map[string]any{
			"type":    []any{"number", "null"},
			"minimum": 0,
			"maximum": 1,
		},
		"contentMix": contentMixSchema,
		"questionStyle": map[string]any{
			"enum": []any{nil, "conceptual", "application", "analysis", "transfer"},
		},
	},
}

// sessionSchema describes a start/resume response. Card bodies are checked
// by prefs.DecodeCard; the schema pins the envelope and card_type.
var sessionSchema = map[string]any{
	"type":     "object",
	"required": []any{"session_id", "cards"},
	"properties": map[string]any{
		"session_id": map[string]any{"type": "string", "minLength": 1},
		"has_more":   map[string]any{"type": "boolean"},
		"cards": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "card_type"},
				"properties": map[string]any{
					"id":        map[string]any{"type": "string"},
					"card_type": map[string]any{"enum": []any{"mcq", "flashcard", "info_card", "resource_card"}},
				},
			},
		},
	},
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

func compiledSchema(name string, def map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler expects a parsed JSON value, not Go literals with int
	// keywords; round-trip through encoding/json.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}

func validate(name string, def map[string]any, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &InvalidResponseError{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	compiled, err := compiledSchema(name, def)
	if err != nil {
		return &InvalidResponseError{Content: raw, Err: fmt.Errorf("compile schema %q: %w", name, err)}
	}
	if err := compiled.Validate(parsed); err != nil {
		return &InvalidResponseError{Content: raw, Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}

// ParsePreferences validates a preferences document against the wire schema
// and the domain rules, e.g. for `prefs import`.
func ParsePreferences(raw []byte) (prefs.FeedPreferences, error) {
	if err := validate("preferences", preferencesSchema, raw); err != nil {
		return prefs.FeedPreferences{}, err
	}
	var p prefs.FeedPreferences
	if err := json.Unmarshal(raw, &p); err != nil {
		return prefs.FeedPreferences{}, fmt.Errorf("decode preferences: %w", err)
	}
	if err := p.Validate(); err != nil {
		return prefs.FeedPreferences{}, err
	}
	return p, nil
}
