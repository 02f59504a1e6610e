package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type SkillReviewedEvent struct {
	Type      string `json:"type"`
	SkillID   string `json:"skill_id"`
	Verdict   string `json:"verdict"`
	Timestamp string `json:"timestamp"`
}

type AssignmentUpdatedEvent struct {
	Type      string `json:"type"`
	JobID     string `json:"job_id"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Notifier is the narrow surface usecases depend on.
type Notifier interface {
	NotifySkillReviewed(ownerID, skillID uuid.UUID, verdict string)
	NotifyAssignmentUpdated(userID, jobID uuid.UUID, status string)
}

// HubNotifier delivers events through the hub. A nil HubNotifier is a
// valid no-op, which keeps usecase tests free of websocket plumbing.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifySkillReviewed(ownerID, skillID uuid.UUID, verdict string) {
	if n == nil || n.hub == nil {
		return
	}
	evt := SkillReviewedEvent{
		Type:      "skill_reviewed",
		SkillID:   skillID.String(),
		Verdict:   verdict,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Deliver(ownerID, b)
}

func (n *HubNotifier) NotifyAssignmentUpdated(userID, jobID uuid.UUID, status string) {
	if n == nil || n.hub == nil {
		return
	}
	evt := AssignmentUpdatedEvent{
		Type:      "assignment_updated",
		JobID:     jobID.String(),
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Deliver(userID, b)
}
