package usecase

import (
	"context"

	"bantuin/internal/domain/entity"
)

type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	GenerateToken(ctx context.Context, uid string) (string, error)
	SignInWithEmailPassword(email, password string) (string, error)
}

// Notifier receives every committed transition. Dispatch is best-effort and
// asynchronous from the caller's perspective; implementations must never
// block the transition path or report failures back into it.
type Notifier interface {
	NotifyTransition(event entity.StatusEvent)
}
