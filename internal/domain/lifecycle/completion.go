package lifecycle

import (
	"time"

	"bantuin/internal/domain/entity"
	"bantuin/pkg/errors"
)

// Outcome of a completion confirmation.
type Outcome string

const (
	OutcomeAwaitingOtherParty Outcome = "awaiting_other_party"
	OutcomeCompleted          Outcome = "completed"
	OutcomeRejected           Outcome = "rejected"
)

// Confirm sets the acting party's completion flag. It is idempotent per
// actor: confirming an already-set flag is a no-op, so a client may safely
// retry after a timeout. The "completed" status is derived here and only
// here, when both flags are true.
func Confirm(task entity.Task, role Role, now time.Time) (entity.Task, Outcome, error) {
	if !role.Involved() {
		return task, OutcomeRejected, errors.Forbidden("Only the creator or the helper can confirm completion", nil)
	}

	if task.Status != entity.TaskStatusInProgress {
		return task, OutcomeRejected, errors.InvalidTransition(task.Status, string(ActionConfirmComplete))
	}

	if role == RoleCreator {
		task.CreatorCompleted = true
	} else {
		task.HelperCompleted = true
	}

	if task.CreatorCompleted && task.HelperCompleted {
		task.Status = entity.TaskStatusCompleted
		task.CompletedAt = &now
		return task, OutcomeCompleted, nil
	}

	return task, OutcomeAwaitingOtherParty, nil
}

// Undo clears the acting party's own completion flag. Only the own flag can
// be withdrawn: an uninvolved actor gets a permission error, which the client
// shows differently from the state error for a task that is no longer in
// progress.
func Undo(task entity.Task, role Role) (entity.Task, error) {
	if !role.Involved() {
		return task, errors.Forbidden("Only the creator or the helper can undo their confirmation", nil)
	}

	if task.Status != entity.TaskStatusInProgress {
		return task, errors.InvalidTransition(task.Status, string(ActionUndoComplete))
	}

	if role == RoleCreator {
		if !task.CreatorCompleted {
			return task, errors.BadRequest("You have not confirmed completion yet", nil)
		}
		task.CreatorCompleted = false
	} else {
		if !task.HelperCompleted {
			return task, errors.BadRequest("You have not confirmed completion yet", nil)
		}
		task.HelperCompleted = false
	}

	return task, nil
}
