package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/Kryx404/gohealth/internal/events"
)

func newEvent(eventType events.EventType, subjectID string, payload interface{}) events.Event {
	return events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}
