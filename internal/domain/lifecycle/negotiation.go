package lifecycle

import (
	"time"

	"bantuin/internal/domain/entity"
	"bantuin/pkg/errors"
)

// MaxNegotiationRounds bounds the number of counter-offers per task. Rounds
// persist across cancel and re-accept, so the limit cannot be reset by
// releasing a claim.
const MaxNegotiationRounds = 2

// RecordOffer validates a counter-offer against the round limit and the
// current price, then applies it: the round counter advances, the offer is
// appended to the history, and the price is replaced. Status is the engine's
// business, not handled here.
//
// A rejected offer leaves the task untouched. Exhausting the round limit is
// reported as NEGOTIATION_LIMIT_REACHED, distinct from a plain invalid offer.
func RecordOffer(task entity.Task, proposerID string, amount float64, now time.Time) (entity.Task, error) {
	if task.NegotiationRounds >= MaxNegotiationRounds {
		return task, errors.NegotiationLimitReached()
	}

	if amount <= 0 {
		return task, errors.BadRequest("Offer amount must be positive", nil)
	}

	// Negotiation only moves the price down from the poster's perspective
	if amount >= task.Price {
		return task, errors.BadRequest("Offer must be lower than the current price", nil)
	}

	round := task.NegotiationRounds + 1

	offers := make([]entity.OfferRecord, 0, len(task.Offers)+1)
	offers = append(offers, task.Offers...)
	offers = append(offers, entity.OfferRecord{
		ProposerID: proposerID,
		Amount:     amount,
		Round:      round,
		CreatedAt:  now,
	})

	task.NegotiationRounds = round
	task.Offers = offers
	task.Price = amount

	return task, nil
}
