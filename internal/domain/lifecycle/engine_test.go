package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bantuin/internal/domain/entity"
	"bantuin/pkg/errors"
)

func openTask() entity.Task {
	return entity.Task{
		ID:           "task-1",
		Kind:         entity.TaskKindTask,
		CreatorID:    "creator-1",
		Status:       entity.TaskStatusOpen,
		Price:        500,
		IsNegotiable: true,
	}
}

func mustTransition(t *testing.T, task entity.Task, req Request) entity.Task {
	t.Helper()
	res, err := Transition(task, req)
	require.NoError(t, err)
	return res.Task
}

func TestAnonymousIsViewOnly(t *testing.T) {
	actions := []Action{
		ActionProposeOffer, ActionAccept, ActionStart, ActionCancel,
		ActionConfirmComplete, ActionUndoComplete, ActionClose,
	}

	for _, action := range actions {
		_, err := Transition(openTask(), Request{Action: action, ActorID: "", Now: time.Now()})
		assert.True(t, errors.Is(err, "UNAUTHORIZED"), "action %s", action)
	}
}

func TestAccept(t *testing.T) {
	now := time.Now()

	next := mustTransition(t, openTask(), Request{Action: ActionAccept, ActorID: "helper-1", Now: now})

	assert.Equal(t, entity.TaskStatusAccepted, next.Status)
	assert.Equal(t, "helper-1", next.HelperID)
	require.NotNil(t, next.ClaimedAt)
	assert.Equal(t, now, *next.ClaimedAt)
}

// Scenario: creator tries to accept their own task
func TestAcceptOwnTaskForbidden(t *testing.T) {
	_, err := Transition(openTask(), Request{Action: ActionAccept, ActorID: "creator-1", Now: time.Now()})
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

// Scenario: a second helper tries to claim an already-claimed task
func TestAcceptClaimedTaskAlreadyClaimed(t *testing.T) {
	claimed := mustTransition(t, openTask(), Request{Action: ActionAccept, ActorID: "helper-1", Now: time.Now()})

	_, err := Transition(claimed, Request{Action: ActionAccept, ActorID: "helper-2", Now: time.Now()})
	assert.True(t, errors.Is(err, "ALREADY_CLAIMED"))

	_, err = Transition(claimed, Request{Action: ActionProposeOffer, ActorID: "helper-2", Amount: 100, Now: time.Now()})
	assert.True(t, errors.Is(err, "ALREADY_CLAIMED"))
}

func TestAcceptTerminalStatusInvalid(t *testing.T) {
	task := openTask()
	task.Status = entity.TaskStatusClosed

	_, err := Transition(task, Request{Action: ActionAccept, ActorID: "helper-1", Now: time.Now()})
	assert.True(t, errors.Is(err, "INVALID_TRANSITION"))
}

// Scenario: open at 500, three successively lower offers, limit of two rounds
func TestNegotiationScenario(t *testing.T) {
	now := time.Now()
	task := openTask()

	task = mustTransition(t, task, Request{Action: ActionProposeOffer, ActorID: "helper-x", Amount: 400, Now: now})
	assert.Equal(t, entity.TaskStatusNegotiating, task.Status)
	assert.Equal(t, 1, task.NegotiationRounds)
	assert.Equal(t, float64(400), task.Price)

	task = mustTransition(t, task, Request{Action: ActionProposeOffer, ActorID: "helper-x", Amount: 350, Now: now})
	assert.Equal(t, 2, task.NegotiationRounds)
	assert.Equal(t, float64(350), task.Price)

	_, err := Transition(task, Request{Action: ActionProposeOffer, ActorID: "helper-x", Amount: 300, Now: now})
	assert.True(t, errors.Is(err, "NEGOTIATION_LIMIT_REACHED"))
	assert.Equal(t, 2, task.NegotiationRounds)
	assert.Equal(t, float64(350), task.Price)
}

func TestProposeOfferOnNonNegotiableTask(t *testing.T) {
	task := openTask()
	task.IsNegotiable = false

	_, err := Transition(task, Request{Action: ActionProposeOffer, ActorID: "helper-1", Amount: 400, Now: time.Now()})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestProposeOfferByCreatorForbidden(t *testing.T) {
	_, err := Transition(openTask(), Request{Action: ActionProposeOffer, ActorID: "creator-1", Amount: 400, Now: time.Now()})
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestAcceptAfterNegotiationFreezesPrice(t *testing.T) {
	now := time.Now()
	task := openTask()

	task = mustTransition(t, task, Request{Action: ActionProposeOffer, ActorID: "helper-1", Amount: 400, Now: now})
	task = mustTransition(t, task, Request{Action: ActionAccept, ActorID: "helper-1", Now: now})

	assert.Equal(t, entity.TaskStatusAccepted, task.Status)
	assert.Equal(t, float64(400), task.Price)
}

func TestStart(t *testing.T) {
	now := time.Now()
	task := mustTransition(t, openTask(), Request{Action: ActionAccept, ActorID: "helper-1", Now: now})

	task = mustTransition(t, task, Request{Action: ActionStart, ActorID: "helper-1", Now: now})

	assert.Equal(t, entity.TaskStatusInProgress, task.Status)
	require.NotNil(t, task.StartedAt)
}

func TestStartByCreatorForbidden(t *testing.T) {
	task := mustTransition(t, openTask(), Request{Action: ActionAccept, ActorID: "helper-1", Now: time.Now()})

	_, err := Transition(task, Request{Action: ActionStart, ActorID: "creator-1", Now: time.Now()})
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestStartFromOpenInvalid(t *testing.T) {
	_, err := Transition(openTask(), Request{Action: ActionStart, ActorID: "helper-1", Now: time.Now()})
	assert.True(t, errors.Is(err, "INVALID_TRANSITION"))
}

// Scenario: full happy path up to mutual completion
func TestCompletionScenario(t *testing.T) {
	now := time.Now()
	task := openTask()

	task = mustTransition(t, task, Request{Action: ActionAccept, ActorID: "helper-h", Now: now})
	task = mustTransition(t, task, Request{Action: ActionStart, ActorID: "helper-h", Now: now})

	res, err := Transition(task, Request{Action: ActionConfirmComplete, ActorID: "creator-1", Now: now})
	require.NoError(t, err)
	assert.Equal(t, OutcomeAwaitingOtherParty, res.Outcome)
	assert.True(t, res.Task.CreatorCompleted)
	assert.Equal(t, entity.TaskStatusInProgress, res.Task.Status)

	res, err = Transition(res.Task, Request{Action: ActionConfirmComplete, ActorID: "helper-h", Now: now})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, res.Outcome)
	assert.Equal(t, entity.TaskStatusCompleted, res.Task.Status)
}

// Scenario: confirm then undo leaves the task in progress
func TestUndoCompletionScenario(t *testing.T) {
	now := time.Now()
	task := openTask()

	task = mustTransition(t, task, Request{Action: ActionAccept, ActorID: "helper-h", Now: now})
	task = mustTransition(t, task, Request{Action: ActionStart, ActorID: "helper-h", Now: now})
	task = mustTransition(t, task, Request{Action: ActionConfirmComplete, ActorID: "creator-1", Now: now})
	require.True(t, task.CreatorCompleted)

	task = mustTransition(t, task, Request{Action: ActionUndoComplete, ActorID: "creator-1", Now: now})

	assert.False(t, task.CreatorCompleted)
	assert.Equal(t, entity.TaskStatusInProgress, task.Status)
}

// Round trip: accept then cancel releases the claim but keeps the round count
func TestCancelRoundTrip(t *testing.T) {
	now := time.Now()
	task := openTask()

	task = mustTransition(t, task, Request{Action: ActionProposeOffer, ActorID: "helper-1", Amount: 400, Now: now})
	task = mustTransition(t, task, Request{Action: ActionAccept, ActorID: "helper-1", Now: now})
	task = mustTransition(t, task, Request{Action: ActionCancel, ActorID: "helper-1", Now: now})

	assert.Equal(t, entity.TaskStatusOpen, task.Status)
	assert.Empty(t, task.HelperID)
	assert.Nil(t, task.ClaimedAt)
	assert.Equal(t, 1, task.NegotiationRounds)
}

func TestCancelResetsCompletionFlags(t *testing.T) {
	now := time.Now()
	task := openTask()

	task = mustTransition(t, task, Request{Action: ActionAccept, ActorID: "helper-1", Now: now})
	task = mustTransition(t, task, Request{Action: ActionStart, ActorID: "helper-1", Now: now})
	task = mustTransition(t, task, Request{Action: ActionConfirmComplete, ActorID: "creator-1", Now: now})
	require.True(t, task.CreatorCompleted)

	task = mustTransition(t, task, Request{Action: ActionCancel, ActorID: "creator-1", Now: now})

	assert.Equal(t, entity.TaskStatusOpen, task.Status)
	assert.False(t, task.CreatorCompleted)
	assert.False(t, task.HelperCompleted)
	assert.Nil(t, task.StartedAt)
}

func TestCancelByThirdPartyForbidden(t *testing.T) {
	task := mustTransition(t, openTask(), Request{Action: ActionAccept, ActorID: "helper-1", Now: time.Now()})

	_, err := Transition(task, Request{Action: ActionCancel, ActorID: "stranger", Now: time.Now()})
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestCancelFromOpenInvalid(t *testing.T) {
	_, err := Transition(openTask(), Request{Action: ActionCancel, ActorID: "creator-1", Now: time.Now()})
	assert.True(t, errors.Is(err, "INVALID_TRANSITION"))
}

func TestClose(t *testing.T) {
	now := time.Now()

	res, err := Transition(openTask(), Request{Action: ActionClose, ActorID: "admin-1", Admin: true, Reason: "spam", Now: now})
	require.NoError(t, err)

	assert.Equal(t, entity.TaskStatusClosed, res.Task.Status)
	assert.Equal(t, "spam", res.Task.ClosedReason)
	require.NotNil(t, res.Task.ClosedAt)
}

// Scenario: admin closes a task mid-work after one party already confirmed
func TestCloseResetsCompletionFlags(t *testing.T) {
	now := time.Now()
	task := openTask()

	task = mustTransition(t, task, Request{Action: ActionAccept, ActorID: "helper-1", Now: now})
	task = mustTransition(t, task, Request{Action: ActionStart, ActorID: "helper-1", Now: now})
	task = mustTransition(t, task, Request{Action: ActionConfirmComplete, ActorID: "creator-1", Now: now})
	require.True(t, task.CreatorCompleted)

	task = mustTransition(t, task, Request{Action: ActionClose, ActorID: "admin-1", Admin: true, Reason: "dispute", Now: now})

	assert.Equal(t, entity.TaskStatusClosed, task.Status)
	assert.False(t, task.CreatorCompleted)
	assert.False(t, task.HelperCompleted)
	assert.Equal(t, "helper-1", task.HelperID)
}

func TestCloseRequiresAdmin(t *testing.T) {
	_, err := Transition(openTask(), Request{Action: ActionClose, ActorID: "helper-1", Now: time.Now()})
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestCloseTerminalStates(t *testing.T) {
	for _, status := range []string{entity.TaskStatusCompleted, entity.TaskStatusClosed} {
		task := openTask()
		task.Status = status

		_, err := Transition(task, Request{Action: ActionClose, ActorID: "admin-1", Admin: true, Now: time.Now()})
		assert.True(t, errors.Is(err, "INVALID_TRANSITION"), "status %s", status)
	}
}

func TestUnknownActionRejected(t *testing.T) {
	_, err := Transition(openTask(), Request{Action: Action("promote"), ActorID: "helper-1", Now: time.Now()})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

// helperId is set exactly while the task is claimed or done
func TestHelperPresenceMatchesStatus(t *testing.T) {
	now := time.Now()
	task := openTask()
	assert.Empty(t, task.HelperID)

	task = mustTransition(t, task, Request{Action: ActionAccept, ActorID: "helper-1", Now: now})
	assert.NotEmpty(t, task.HelperID)

	task = mustTransition(t, task, Request{Action: ActionStart, ActorID: "helper-1", Now: now})
	assert.NotEmpty(t, task.HelperID)

	task = mustTransition(t, task, Request{Action: ActionConfirmComplete, ActorID: "creator-1", Now: now})
	task = mustTransition(t, task, Request{Action: ActionConfirmComplete, ActorID: "helper-1", Now: now})
	assert.Equal(t, entity.TaskStatusCompleted, task.Status)
	assert.NotEmpty(t, task.HelperID)
}
