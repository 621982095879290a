package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bantuin/internal/domain/entity"
	"bantuin/pkg/errors"
)

func negotiableTask() entity.Task {
	return entity.Task{
		ID:           "task-1",
		CreatorID:    "creator-1",
		Status:       entity.TaskStatusOpen,
		Price:        500,
		IsNegotiable: true,
	}
}

func TestRecordOffer(t *testing.T) {
	now := time.Now()

	next, err := RecordOffer(negotiableTask(), "helper-1", 400, now)
	require.NoError(t, err)

	assert.Equal(t, float64(400), next.Price)
	assert.Equal(t, 1, next.NegotiationRounds)
	require.Len(t, next.Offers, 1)
	assert.Equal(t, "helper-1", next.Offers[0].ProposerID)
	assert.Equal(t, 1, next.Offers[0].Round)
}

func TestRecordOfferMustBeLower(t *testing.T) {
	task := negotiableTask()

	_, err := RecordOffer(task, "helper-1", 500, time.Now())
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = RecordOffer(task, "helper-1", 600, time.Now())
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = RecordOffer(task, "helper-1", -10, time.Now())
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = RecordOffer(task, "helper-1", 0, time.Now())
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestRecordOfferRoundLimit(t *testing.T) {
	now := time.Now()
	task := negotiableTask()

	task, err := RecordOffer(task, "helper-1", 400, now)
	require.NoError(t, err)
	task, err = RecordOffer(task, "helper-1", 350, now)
	require.NoError(t, err)
	require.Equal(t, MaxNegotiationRounds, task.NegotiationRounds)

	// The third offer is rejected with the dedicated error and must not
	// mutate anything
	rejected, err := RecordOffer(task, "helper-1", 300, now)
	assert.True(t, errors.Is(err, "NEGOTIATION_LIMIT_REACHED"))
	assert.Equal(t, float64(350), rejected.Price)
	assert.Equal(t, 2, rejected.NegotiationRounds)
	assert.Len(t, rejected.Offers, 2)
}

func TestRecordOfferDoesNotAliasHistory(t *testing.T) {
	now := time.Now()
	task := negotiableTask()

	one, err := RecordOffer(task, "helper-1", 400, now)
	require.NoError(t, err)

	// Two branches appended from the same base must not share backing storage
	a, err := RecordOffer(one, "helper-1", 350, now)
	require.NoError(t, err)
	b, err := RecordOffer(one, "helper-2", 300, now)
	require.NoError(t, err)

	assert.Equal(t, "helper-1", a.Offers[1].ProposerID)
	assert.Equal(t, "helper-2", b.Offers[1].ProposerID)
}
