package services

import (
	"encoding/json"
	"log"

	"dinemart/internal/models"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task type definitions for the notification queue
const (
	TypeEmailNotification = "notification:email"
	TypeInAppNotification = "notification:in_app"
)

// EmailPayload defines the payload for email notification tasks
type EmailPayload struct {
	UserID  uuid.UUID `json:"user_id"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
}

// InAppPayload defines the payload for in-app notification tasks
type InAppPayload struct {
	UserID  uuid.UUID               `json:"user_id"`
	Type    models.NotificationType `json:"type"`
	Title   string                  `json:"title"`
	Message string                  `json:"message"`
	Link    string                  `json:"link,omitempty"`
}

// Notifier dispatches notifications to the background queue.
// Dispatch is fire-and-forget: enqueue failures are logged and never
// propagate into the transaction that triggered them.
type Notifier interface {
	EmailUser(userID uuid.UUID, subject, body string)
	NotifyUser(userID uuid.UUID, ntype models.NotificationType, title, message, link string)
}

type queueNotifier struct {
	client *asynq.Client
}

// NewQueueNotifier creates a notifier backed by an asynq client
func NewQueueNotifier(client *asynq.Client) Notifier {
	return &queueNotifier{client: client}
}

func (n *queueNotifier) EmailUser(userID uuid.UUID, subject, body string) {
	n.enqueue(TypeEmailNotification, EmailPayload{UserID: userID, Subject: subject, Body: body})
}

func (n *queueNotifier) NotifyUser(userID uuid.UUID, ntype models.NotificationType, title, message, link string) {
	n.enqueue(TypeInAppNotification, InAppPayload{UserID: userID, Type: ntype, Title: title, Message: message, Link: link})
}

func (n *queueNotifier) enqueue(taskType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s payload: %v", taskType, err)
		return
	}
	if _, err := n.client.Enqueue(asynq.NewTask(taskType, data), asynq.MaxRetry(3)); err != nil {
		log.Printf("Failed to enqueue %s task: %v", taskType, err)
	}
}
