package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jonathan/job-application-form/internal/config"
	"github.com/jonathan/job-application-form/internal/form"
	"github.com/jonathan/job-application-form/internal/schemas"
	"github.com/jonathan/job-application-form/internal/types"
	draftschemas "github.com/jonathan/job-application-form/schemas"
)

// edit is one field-name/value change, as delivered by the input source.
type edit struct {
	Name  string
	Value any
}

// parseEdit parses a name=value flag. Skill names take a boolean value.
func parseEdit(raw string) (edit, error) {
	name, value, ok := strings.Cut(raw, "=")
	if !ok {
		return edit{}, fmt.Errorf("invalid edit %q: expected name=value", raw)
	}
	name = strings.TrimSpace(name)

	if _, err := types.ParseSkill(name); err == nil {
		checked, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return edit{}, fmt.Errorf("invalid edit %q: skill %s takes true or false", raw, name)
		}
		return edit{Name: name, Value: checked}, nil
	}

	field, err := types.ParseFieldName(name)
	if err != nil {
		return edit{}, fmt.Errorf("invalid edit %q: %w", raw, err)
	}
	if field == types.FieldSkills {
		return edit{}, fmt.Errorf("invalid edit %q: set skills one at a time, e.g. JavaScript=true", raw)
	}
	return edit{Name: name, Value: value}, nil
}

func parseEdits(raw []string) ([]edit, error) {
	edits := make([]edit, 0, len(raw))
	for _, r := range raw {
		e, err := parseEdit(r)
		if err != nil {
			return nil, err
		}
		edits = append(edits, e)
	}
	return edits, nil
}

// checkDraftShape validates draft JSON against the draft schema. The schema
// file from the config is used when it can be found; otherwise the embedded
// copy is used.
func checkDraftShape(cfg config.Config, data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("draft is not valid JSON")
	}

	if path := schemas.ResolveSchemaPath(cfg.SchemaPath); path != "" {
		return schemas.ValidateJSONBytes(path, data)
	}
	return schemas.ValidateJSONString(draftschemas.ApplicationDraft, string(data))
}

// loadDraft reads and schema-checks a draft file.
func loadDraft(cfg config.Config, path string) (types.ApplicationDraft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ApplicationDraft{}, fmt.Errorf("failed to read draft file: %w", err)
	}

	if err := checkDraftShape(cfg, data); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return types.ApplicationDraft{}, fmt.Errorf("draft %s does not match schema: %w", path, err)
		}
		return types.ApplicationDraft{}, fmt.Errorf("failed to check draft %s: %w", path, err)
	}

	var draft types.ApplicationDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return types.ApplicationDraft{}, fmt.Errorf("failed to unmarshal draft JSON: %w", err)
	}
	return draft, nil
}

// replay applies edits in order to a form seeded with draft.
func replay(draft types.ApplicationDraft, edits []edit) types.ApplicationDraft {
	state := form.NewStateFrom(draft)
	for _, e := range edits {
		state.Apply(e.Name, e.Value)
	}
	return state.Draft()
}
