package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bantuin/internal/domain/entity"
	"bantuin/pkg/errors"
)

func inProgressTask() entity.Task {
	now := time.Now()
	return entity.Task{
		ID:        "task-1",
		CreatorID: "creator-1",
		HelperID:  "helper-1",
		Status:    entity.TaskStatusInProgress,
		Price:     500,
		ClaimedAt: &now,
		StartedAt: &now,
	}
}

func TestConfirmFirstParty(t *testing.T) {
	next, outcome, err := Confirm(inProgressTask(), RoleCreator, time.Now())
	require.NoError(t, err)

	assert.Equal(t, OutcomeAwaitingOtherParty, outcome)
	assert.True(t, next.CreatorCompleted)
	assert.False(t, next.HelperCompleted)
	assert.Equal(t, entity.TaskStatusInProgress, next.Status)
	assert.Nil(t, next.CompletedAt)
}

func TestConfirmBothPartiesCompletes(t *testing.T) {
	now := time.Now()

	next, outcome, err := Confirm(inProgressTask(), RoleCreator, now)
	require.NoError(t, err)
	require.Equal(t, OutcomeAwaitingOtherParty, outcome)

	next, outcome, err = Confirm(next, RoleHelper, now)
	require.NoError(t, err)

	assert.Equal(t, OutcomeCompleted, outcome)
	assert.Equal(t, entity.TaskStatusCompleted, next.Status)
	assert.True(t, next.CreatorCompleted)
	assert.True(t, next.HelperCompleted)
	require.NotNil(t, next.CompletedAt)
	assert.Equal(t, now, *next.CompletedAt)
}

func TestConfirmIsIdempotentPerActor(t *testing.T) {
	now := time.Now()

	once, outcome, err := Confirm(inProgressTask(), RoleCreator, now)
	require.NoError(t, err)
	require.Equal(t, OutcomeAwaitingOtherParty, outcome)

	// A retried confirm is a no-op, not an error
	twice, outcome, err := Confirm(once, RoleCreator, now)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAwaitingOtherParty, outcome)
	assert.Equal(t, once, twice)
}

func TestConfirmRejectsThirdParty(t *testing.T) {
	_, outcome, err := Confirm(inProgressTask(), RoleThirdParty, time.Now())

	assert.Equal(t, OutcomeRejected, outcome)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestConfirmRejectsWrongStatus(t *testing.T) {
	task := inProgressTask()
	task.Status = entity.TaskStatusAccepted

	_, outcome, err := Confirm(task, RoleCreator, time.Now())

	assert.Equal(t, OutcomeRejected, outcome)
	assert.True(t, errors.Is(err, "INVALID_TRANSITION"))
}

func TestUndoOwnFlag(t *testing.T) {
	now := time.Now()

	confirmed, _, err := Confirm(inProgressTask(), RoleCreator, now)
	require.NoError(t, err)

	next, err := Undo(confirmed, RoleCreator)
	require.NoError(t, err)

	assert.False(t, next.CreatorCompleted)
	assert.Equal(t, entity.TaskStatusInProgress, next.Status)
}

func TestUndoWithoutConfirmation(t *testing.T) {
	_, err := Undo(inProgressTask(), RoleHelper)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestUndoByThirdPartyIsPermissionError(t *testing.T) {
	confirmed, _, err := Confirm(inProgressTask(), RoleCreator, time.Now())
	require.NoError(t, err)

	// Permission error, not a state error: the two are shown differently
	_, err = Undo(confirmed, RoleThirdParty)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestUndoAfterCompletionIsStateError(t *testing.T) {
	now := time.Now()
	task := inProgressTask()

	task, _, err := Confirm(task, RoleCreator, now)
	require.NoError(t, err)
	task, _, err = Confirm(task, RoleHelper, now)
	require.NoError(t, err)
	require.Equal(t, entity.TaskStatusCompleted, task.Status)

	_, err = Undo(task, RoleCreator)
	assert.True(t, errors.Is(err, "INVALID_TRANSITION"))
}
