package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"dinemart/internal/models"
	"dinemart/internal/repositories"
	"dinemart/internal/services"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// NotificationWorker consumes notification tasks off the queue.
// Email delivery is a log placeholder until an SMTP provider is
// wired in.
type NotificationWorker struct {
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
}

func NewNotificationWorker(userRepo repositories.UserRepository, notificationRepo repositories.NotificationRepository) *NotificationWorker {
	return &NotificationWorker{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

// NewNotificationMux registers the worker's handlers on an asynq mux
func (w *NotificationWorker) NewNotificationMux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(services.TypeEmailNotification, w.HandleEmailTask)
	mux.HandleFunc(services.TypeInAppNotification, w.HandleInAppTask)
	return mux
}

// HandleEmailTask resolves the recipient address and sends the email
func (w *NotificationWorker) HandleEmailTask(ctx context.Context, t *asynq.Task) error {
	var payload services.EmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal email payload: %w", err)
	}

	user, err := w.userRepo.GetByID(ctx, payload.UserID)
	if err != nil {
		return fmt.Errorf("failed to look up user %s: %w", payload.UserID, err)
	}
	if user == nil {
		// Recipient is gone, nothing to retry
		log.Printf("Dropping email for unknown user %s", payload.UserID)
		return nil
	}

	log.Printf("[EMAIL] To: %s | Subject: %s | Body: %s", user.Email, payload.Subject, payload.Body)
	return nil
}

// HandleInAppTask persists an in-app notification
func (w *NotificationWorker) HandleInAppTask(ctx context.Context, t *asynq.Task) error {
	var payload services.InAppPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal in-app payload: %w", err)
	}

	n := &models.Notification{
		ID:      uuid.New(),
		UserID:  payload.UserID,
		Type:    payload.Type,
		Title:   payload.Title,
		Message: payload.Message,
	}
	if payload.Link != "" {
		n.Link = &payload.Link
	}

	if err := w.notificationRepo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to store notification for user %s: %w", payload.UserID, err)
	}
	return nil
}
