package lifecycle

import (
	"time"

	"bantuin/internal/domain/entity"
	"bantuin/pkg/errors"
)

// Action is a requested lifecycle transition.
type Action string

const (
	ActionProposeOffer    Action = "propose_offer"
	ActionAccept          Action = "accept"
	ActionStart           Action = "start"
	ActionCancel          Action = "cancel"
	ActionConfirmComplete Action = "confirm_complete"
	ActionUndoComplete    Action = "undo_complete"
	ActionClose           Action = "close"
)

// Request carries the actor and the per-action inputs for a transition.
// Admin is set by the caller after verifying the account's admin role; the
// engine itself never looks identities up.
type Request struct {
	Action  Action
	ActorID string
	Admin   bool
	Amount  float64 // propose_offer
	Reason  string  // close
	Now     time.Time
}

// Result of a legal transition. Task is the next state, not yet committed;
// Outcome is only meaningful for confirm_complete.
type Result struct {
	Task    entity.Task
	Outcome Outcome
}

// Transition validates the requested action against the task's current
// status and the actor's role, and returns the next task value. It is a pure
// function: the caller owns durably committing the result with a conditional
// write, and re-running Transition against fresh state if that write loses a
// race.
func Transition(task entity.Task, req Request) (Result, error) {
	role := Resolve(task, req.ActorID)

	// Anonymous is view-only; every mutating action needs an identity.
	if role == RoleAnonymous {
		return Result{}, errors.Unauthorized("Sign in to act on a task", nil)
	}

	switch req.Action {
	case ActionProposeOffer:
		return proposeOffer(task, role, req)
	case ActionAccept:
		return accept(task, role, req)
	case ActionStart:
		return start(task, role, req)
	case ActionCancel:
		return cancel(task, role)
	case ActionConfirmComplete:
		next, outcome, err := Confirm(task, role, req.Now)
		if err != nil {
			return Result{}, err
		}
		return Result{Task: next, Outcome: outcome}, nil
	case ActionUndoComplete:
		next, err := Undo(task, role)
		if err != nil {
			return Result{}, err
		}
		return Result{Task: next}, nil
	case ActionClose:
		return closeTask(task, req)
	default:
		return Result{}, errors.BadRequest("Unknown task action", nil)
	}
}

func proposeOffer(task entity.Task, role Role, req Request) (Result, error) {
	if role == RoleCreator {
		return Result{}, errors.Forbidden("You cannot make an offer on your own task", nil)
	}

	// ALREADY_CLAIMED is reserved for actors who lost the claim race; the
	// current helper retrying gets the state error instead.
	if task.HelperID != "" && role != RoleHelper {
		return Result{}, errors.AlreadyClaimed()
	}

	if task.Status != entity.TaskStatusOpen && task.Status != entity.TaskStatusNegotiating {
		return Result{}, errors.InvalidTransition(task.Status, string(ActionProposeOffer))
	}

	if !task.IsNegotiable {
		return Result{}, errors.BadRequest("This task is not negotiable", nil)
	}

	next, err := RecordOffer(task, req.ActorID, req.Amount, req.Now)
	if err != nil {
		return Result{}, err
	}

	next.Status = entity.TaskStatusNegotiating
	return Result{Task: next}, nil
}

func accept(task entity.Task, role Role, req Request) (Result, error) {
	if role == RoleCreator {
		return Result{}, errors.Forbidden("You cannot accept your own task", nil)
	}

	// Acceptance is exclusive. A claimed task reports ALREADY_CLAIMED even to
	// actors who raced in before the claim committed; the conditional write
	// catches the ones this in-memory check cannot see.
	if task.HelperID != "" && role != RoleHelper {
		return Result{}, errors.AlreadyClaimed()
	}

	if task.Status != entity.TaskStatusOpen && task.Status != entity.TaskStatusNegotiating {
		return Result{}, errors.InvalidTransition(task.Status, string(ActionAccept))
	}

	now := req.Now
	task.HelperID = req.ActorID
	task.Status = entity.TaskStatusAccepted
	task.ClaimedAt = &now
	// Price is frozen at whatever negotiation settled on; no further offers
	// are possible from here.

	return Result{Task: task}, nil
}

func start(task entity.Task, role Role, req Request) (Result, error) {
	if task.Status != entity.TaskStatusAccepted {
		return Result{}, errors.InvalidTransition(task.Status, string(ActionStart))
	}

	if role != RoleHelper {
		return Result{}, errors.Forbidden("Only the current helper can start this task", nil)
	}

	now := req.Now
	task.Status = entity.TaskStatusInProgress
	task.StartedAt = &now

	return Result{Task: task}, nil
}

func cancel(task entity.Task, role Role) (Result, error) {
	if !role.Involved() {
		return Result{}, errors.Forbidden("Only the creator or the helper can cancel this task", nil)
	}

	if task.Status != entity.TaskStatusAccepted && task.Status != entity.TaskStatusInProgress {
		return Result{}, errors.InvalidTransition(task.Status, string(ActionCancel))
	}

	// Back to open: the claim is released and the completion flags reset.
	// NegotiationRounds deliberately survives, so the round limit cannot be
	// bypassed by cancelling and re-claiming.
	task.Status = entity.TaskStatusOpen
	task.HelperID = ""
	task.ClaimedAt = nil
	task.StartedAt = nil
	task.CreatorCompleted = false
	task.HelperCompleted = false

	return Result{Task: task}, nil
}

func closeTask(task entity.Task, req Request) (Result, error) {
	if !req.Admin {
		return Result{}, errors.Forbidden("Only an administrator can close a task", nil)
	}

	if task.Status == entity.TaskStatusCompleted || task.Status == entity.TaskStatusClosed {
		return Result{}, errors.InvalidTransition(task.Status, string(ActionClose))
	}

	now := req.Now
	task.Status = entity.TaskStatusClosed
	task.ClosedReason = req.Reason
	task.ClosedAt = &now
	// The helper and price stay on the record for audit, but completion
	// flags only ever mean anything while the task is in progress.
	task.CreatorCompleted = false
	task.HelperCompleted = false

	return Result{Task: task}, nil
}
