package lifecycle

import (
	"bantuin/internal/domain/entity"
)

// Role is the acting party's relationship to a task. It is resolved here and
// nowhere else; handlers and usecases must not re-derive creator/helper
// membership on their own.
type Role string

const (
	RoleCreator    Role = "creator"
	RoleHelper     Role = "helper"
	RoleThirdParty Role = "third_party"
	RoleAnonymous  Role = "anonymous"
)

// Resolve maps an acting identity to its role on the task. An empty actorID
// is anonymous and therefore view-only.
func Resolve(task entity.Task, actorID string) Role {
	switch {
	case actorID == "":
		return RoleAnonymous
	case actorID == task.CreatorID:
		return RoleCreator
	case task.HelperID != "" && actorID == task.HelperID:
		return RoleHelper
	default:
		return RoleThirdParty
	}
}

// Involved reports whether the role belongs to one of the two transaction
// parties.
func (r Role) Involved() bool {
	return r == RoleCreator || r == RoleHelper
}
