package api

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator(t *testing.T) {
	v := NewValidator()

	type payload struct {
		Kind  string  `validate:"required,oneof=task wish"`
		Price float64 `validate:"required,gt=0"`
	}

	assert.NoError(t, v.Validate(&payload{Kind: "wish", Price: 50}))

	err := v.Validate(&payload{Kind: "bounty", Price: 50})
	require.Error(t, err)

	// field errors stay typed so the response layer can translate them
	_, ok := err.(validator.ValidationErrors)
	assert.True(t, ok)

	assert.Error(t, v.Validate(&payload{Kind: "task"}))
}
