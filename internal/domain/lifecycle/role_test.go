package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bantuin/internal/domain/entity"
)

func TestResolve(t *testing.T) {
	task := entity.Task{CreatorID: "creator-1", HelperID: "helper-1"}

	assert.Equal(t, RoleCreator, Resolve(task, "creator-1"))
	assert.Equal(t, RoleHelper, Resolve(task, "helper-1"))
	assert.Equal(t, RoleThirdParty, Resolve(task, "someone-else"))
	assert.Equal(t, RoleAnonymous, Resolve(task, ""))
}

func TestResolveUnclaimedTask(t *testing.T) {
	task := entity.Task{CreatorID: "creator-1"}

	// Without a helper there is no helper role to match
	assert.Equal(t, RoleThirdParty, Resolve(task, "helper-1"))
}

func TestRoleInvolved(t *testing.T) {
	assert.True(t, RoleCreator.Involved())
	assert.True(t, RoleHelper.Involved())
	assert.False(t, RoleThirdParty.Involved())
	assert.False(t, RoleAnonymous.Involved())
}
