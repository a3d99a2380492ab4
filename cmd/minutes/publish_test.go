package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meeting-minutes/internal/pipeline"
	"meeting-minutes/internal/publish"
)

func TestParseProjectTool(t *testing.T) {
	projectID, toolID, err := parseProjectTool("12345:678")
	require.NoError(t, err)
	assert.Equal(t, int64(12345), projectID)
	assert.Equal(t, int64(678), toolID)

	for _, bad := range []string{"12345", "a:b", "12:", ":34"} {
		_, _, err := parseProjectTool(bad)
		assert.Error(t, err, bad)
	}
}

func TestResolveTargets(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	targets, err := resolveTargets("Review_2025-03-10.html", date, "Meeting Notes", "1:2", "1:3", "1:4", "Review")
	require.NoError(t, err)
	require.Len(t, targets, 4)

	assert.Equal(t, publish.FolderUpload{Folder: "Meeting Notes"}, targets[0])

	task, ok := targets[1].(publish.TaskItem)
	require.True(t, ok)
	assert.Equal(t, int64(1), task.ProjectID)
	assert.Equal(t, int64(2), task.ListID)
	assert.Equal(t, "Meeting Minutes: Review (2025-03-10)", task.Title)

	msg, ok := targets[2].(publish.DiscussionPost)
	require.True(t, ok)
	assert.Equal(t, int64(3), msg.BoardID)

	vault, ok := targets[3].(publish.VaultUpload)
	require.True(t, ok)
	assert.Equal(t, int64(4), vault.VaultID)
	assert.Equal(t, "Review_2025-03-10", vault.BaseName)
}

func TestResolveTargets_NoneSelected(t *testing.T) {
	targets, err := resolveTargets("f.html", time.Now(), "", "", "", "", "T")
	require.NoError(t, err)
	assert.Empty(t, targets)
}

func TestResolveFields_RepsFromHints(t *testing.T) {
	session := &pipeline.Session{ParticipantHintsRaw: "Ann Tan (Client)\nBob Lee (Internal)\nCarol (Client)"}

	fields, err := resolveFields(session, "2025-03-10", "", "", "", "", "", "Bob Lee")
	require.NoError(t, err)

	assert.Equal(t, "Ann Tan, Carol", fields.ClientReps)
	assert.Equal(t, "Bob Lee", fields.InternalReps)
	assert.Equal(t, 2025, fields.Date.Year())
}

func TestResolveFields_ExplicitRepsWin(t *testing.T) {
	session := &pipeline.Session{ParticipantHintsRaw: "Ann (Client)"}

	fields, err := resolveFields(session, "2025-03-10", "", "", "Override Rep", "", "", "x")
	require.NoError(t, err)
	assert.Equal(t, "Override Rep", fields.ClientReps)
}

func TestResolveFields_BadDate(t *testing.T) {
	_, err := resolveFields(&pipeline.Session{}, "10/03/2025", "", "", "", "", "", "x")
	assert.Error(t, err)
}

func TestResolveParticipants_SemicolonsSplit(t *testing.T) {
	got, err := resolveParticipants("Ann (Client); Bob (Internal)", "")
	require.NoError(t, err)
	assert.Equal(t, "Ann (Client)\n Bob (Internal)", got)
}
