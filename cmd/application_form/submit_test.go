package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/job-application-form/internal/config"
	"github.com/jonathan/job-application-form/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestSubmitAll_AcceptedAndRejected(t *testing.T) {
	accepted := writeDraft(t, "accepted.json", acceptedDraftJSON)
	rejected := writeDraft(t, "rejected.json", `{
		"email": "a@b.com",
		"phoneNumber": "abc",
		"position": "Manager",
		"portfolioUrl": "not-a-url",
		"skills": {"CSS": false},
		"preferredInterviewTime": "2024-01-01T10:00"
	}`)

	results, err := submitAll(context.Background(), config.Defaults(), testLogger(), []string{accepted, rejected}, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, accepted, results[0].Source)
	assert.Equal(t, types.SessionAccepted, results[0].State)
	require.NotNil(t, results[0].Summary)
	assert.Empty(t, results[0].Errors)
	assert.Equal(t, results[0].SessionID, results[0].Summary.SessionID)

	assert.Equal(t, types.SessionEditing, results[1].State)
	assert.Nil(t, results[1].Summary)
	assert.Equal(t, map[types.FieldName]types.ErrorKind{
		types.FieldFullName:             types.ErrorRequired,
		types.FieldPhoneNumber:          types.ErrorNotNumeric,
		types.FieldManagementExperience: types.ErrorRequired,
		types.FieldSkills:               types.ErrorNoneSelected,
	}, results[1].Errors.Kinds())
	assert.NotEqual(t, results[0].SessionID, results[1].SessionID)
}

func TestSubmitAll_EditsApplyToEveryDraft(t *testing.T) {
	a := writeDraft(t, "a.json", acceptedDraftJSON)
	b := writeDraft(t, "b.json", acceptedDraftJSON)

	edits, err := parseEdits([]string{"fullName= "})
	require.NoError(t, err)

	results, err := submitAll(context.Background(), config.Defaults(), testLogger(), []string{a, b}, edits)
	require.NoError(t, err)
	for _, r := range results {
		assert.Equal(t, types.SessionEditing, r.State)
		assert.Equal(t, map[types.FieldName]types.ErrorKind{types.FieldFullName: types.ErrorRequired}, r.Errors.Kinds())
	}
}

func TestSubmitAll_EmptyDraftFromEditsOnly(t *testing.T) {
	edits, err := parseEdits([]string{
		"fullName=Grace Hopper",
		"email=grace@navy.mil",
		"phoneNumber=5550100",
		"position=Designer",
		"relevantExperience=7",
		"portfolioUrl=https://grace.dev",
		"Python=true",
		"preferredInterviewTime=2024-03-01T09:30",
	})
	require.NoError(t, err)

	results, err := submitAll(context.Background(), config.Defaults(), testLogger(), nil, edits)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "(empty draft)", results[0].Source)
	assert.Equal(t, types.SessionAccepted, results[0].State)

	v, ok := results[0].Summary.Value(types.FieldPortfolioURL)
	require.True(t, ok)
	assert.Equal(t, "https://grace.dev", v)
}

func TestSubmitAll_BadDraftFails(t *testing.T) {
	good := writeDraft(t, "good.json", acceptedDraftJSON)
	bad := writeDraft(t, "bad.json", `{"nickname":"Ada"}`)

	_, err := submitAll(context.Background(), config.Defaults(), testLogger(), []string{good, bad}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match schema")
}

func TestPrintResults_Text(t *testing.T) {
	a := writeDraft(t, "a.json", acceptedDraftJSON)
	b := writeDraft(t, "b.json", `{"position":"Designer"}`)

	results, err := submitAll(context.Background(), config.Defaults(), testLogger(), []string{a, b}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printResults(&buf, "text", results))
	output := buf.String()

	assert.Contains(t, output, a)
	assert.Contains(t, output, "APPLICATION SUMMARY")
	assert.Contains(t, output, "3 years")
	assert.Contains(t, output, "APPLICATION NOT ACCEPTED")
	assert.Contains(t, output, "Portfolio URL is required and must be a valid URL")
}

func TestPrintResults_JSON(t *testing.T) {
	a := writeDraft(t, "a.json", acceptedDraftJSON)
	results, err := submitAll(context.Background(), config.Defaults(), testLogger(), []string{a}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printResults(&buf, "json", results))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "accepted", decoded[0]["state"])
	assert.NotContains(t, decoded[0], "errors")
	assert.Contains(t, decoded[0], "summary")
}

func TestWriteResults(t *testing.T) {
	results := []submitResult{{
		Source: "x.json",
		State:  types.SessionEditing,
		Errors: types.ErrorMap{
			types.FieldEmail: {Kind: types.ErrorFormatInvalid, Message: "Email address is invalid"},
		},
	}}

	path := filepath.Join(t.TempDir(), "nested", "results.json")
	require.NoError(t, writeResults(path, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []submitResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, results, decoded)
}

func TestPrintFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printFields(&buf, "text", types.PositionDesigner))
	output := buf.String()

	assert.Contains(t, output, "relevantExperience")
	assert.Contains(t, output, "portfolioUrl")
	assert.NotContains(t, output, "managementExperience")
	assert.Contains(t, output, "[JavaScript] [CSS] [Python]")

	buf.Reset()
	require.NoError(t, printFields(&buf, "json", types.PositionManager))
	var infos []fieldInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &infos))
	names := make([]types.FieldName, len(infos))
	for i, f := range infos {
		names[i] = f.Name
	}
	assert.Contains(t, names, types.FieldManagementExperience)
	assert.NotContains(t, names, types.FieldRelevantExperience)

	assert.Error(t, printFields(&buf, "xml", types.PositionUnset))
}

func TestValidateDraftFile(t *testing.T) {
	path := writeDraft(t, "draft.json", acceptedDraftJSON)

	var buf bytes.Buffer
	require.NoError(t, validateDraftFile(&buf, config.Defaults(), path))
	assert.Contains(t, buf.String(), "Draft is well-formed")
	assert.Contains(t, buf.String(), `"Developer"`)

	bad := writeDraft(t, "bad.json", `{"skills": []}`)
	assert.Error(t, validateDraftFile(&buf, config.Defaults(), bad))
}
