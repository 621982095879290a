package usecase

import (
	"encoding/json"

	"bantuin/internal/domain/entity"
	ws "bantuin/internal/infrastructure/websocket"
	"bantuin/pkg/logger"
)

// NotificationUseCase pushes committed transition events to the involved
// parties over their websocket connections. Delivery is best-effort: an
// offline party simply misses the push and sees the new state on next fetch.
type NotificationUseCase struct {
	hub *ws.Hub
}

func NewNotificationUseCase(hub *ws.Hub) *NotificationUseCase {
	return &NotificationUseCase{
		hub: hub,
	}
}

func (uc *NotificationUseCase) NotifyTransition(event entity.StatusEvent) {
	payload, err := json.Marshal(map[string]interface{}{
		"type":    "task_status",
		"payload": event,
	})
	if err != nil {
		logger.LogFollowUpError(event.TaskID, "notify_marshal", err)
		return
	}

	for _, userID := range event.InvolvedParties {
		uc.hub.SendToUser(userID, payload)
	}
}
