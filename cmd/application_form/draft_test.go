package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/job-application-form/internal/config"
	"github.com/jonathan/job-application-form/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const acceptedDraftJSON = `{
	"fullName": "Ada Lovelace",
	"email": "a@b.com",
	"phoneNumber": "555",
	"position": "Developer",
	"relevantExperience": "3",
	"skills": {"JavaScript": true},
	"preferredInterviewTime": "2024-01-01T10:00"
}`

func writeDraft(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseEdit(t *testing.T) {
	tests := []struct {
		raw     string
		want    edit
		wantErr string
	}{
		{raw: "fullName=Ada Lovelace", want: edit{Name: "fullName", Value: "Ada Lovelace"}},
		{raw: "position=", want: edit{Name: "position", Value: ""}},
		{raw: "portfolioUrl=https://a.dev/?q=1", want: edit{Name: "portfolioUrl", Value: "https://a.dev/?q=1"}},
		{raw: "CSS=true", want: edit{Name: "CSS", Value: true}},
		{raw: "Python=0", want: edit{Name: "Python", Value: false}},
		{raw: "Python=maybe", wantErr: "takes true or false"},
		{raw: "fullName", wantErr: "expected name=value"},
		{raw: "nickname=Ada", wantErr: `unknown form field "nickname"`},
		{raw: "skills=CSS", wantErr: "set skills one at a time"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseEdit(tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEdits_StopsAtFirstError(t *testing.T) {
	_, err := parseEdits([]string{"fullName=Ada", "bogus"})
	assert.Error(t, err)

	edits, err := parseEdits(nil)
	require.NoError(t, err)
	assert.Empty(t, edits)
}

func TestReplay(t *testing.T) {
	base := types.ApplicationDraft{FullName: "Ada", Skills: types.SkillSet{}.With(types.SkillCSS, true)}
	got := replay(base, []edit{
		{Name: "position", Value: "Designer"},
		{Name: "Python", Value: true},
		{Name: "CSS", Value: false},
	})

	assert.Equal(t, types.PositionDesigner, got.Position)
	assert.Equal(t, []types.Skill{types.SkillPython}, got.Skills.Selected())
	assert.Equal(t, "Ada", got.FullName)
	assert.True(t, base.Skills.Has(types.SkillCSS))
}

func TestLoadDraft(t *testing.T) {
	path := writeDraft(t, "draft.json", acceptedDraftJSON)

	draft, err := loadDraft(config.Defaults(), path)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", draft.FullName)
	assert.Equal(t, types.PositionDeveloper, draft.Position)
	assert.True(t, draft.Skills.Has(types.SkillJavaScript))
}

func TestLoadDraft_EmbeddedSchemaFallback(t *testing.T) {
	path := writeDraft(t, "draft.json", acceptedDraftJSON)
	cfg := config.Defaults()
	cfg.SchemaPath = "no/such/place.schema.json"

	_, err := loadDraft(cfg, path)
	assert.NoError(t, err)

	bad := writeDraft(t, "bad.json", `{"nickname":"Ada"}`)
	_, err = loadDraft(cfg, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match schema")
}

func TestLoadDraft_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "malformed", content: `{"fullName":`, wantErr: "not valid JSON"},
		{name: "unknown field", content: `{"nickname":"Ada"}`, wantErr: "does not match schema"},
		{name: "wrong type", content: `{"relevantExperience": 3}`, wantErr: "does not match schema"},
		{name: "unknown skill", content: `{"skills": {"Rust": true}}`, wantErr: "does not match schema"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDraft(t, "draft.json", tt.content)
			_, err := loadDraft(config.Defaults(), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err := loadDraft(config.Defaults(), "/nonexistent/draft.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read draft file")
}
