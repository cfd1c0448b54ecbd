package dto

import (
	"errors"
	"fmt"
	"time"
)

// ProfileUpdateMessage is the inbound wire shape delivered by the broker.
// points_earned is a pointer so a missing key can be told apart from zero.
type ProfileUpdateMessage struct {
	Event        string `json:"event"`
	Type         string `json:"type"`
	CreatedAt    string `json:"created_at"`
	PointsEarned *int   `json:"points_earned"`
	UserID       string `json:"user_id"`
	Timestamp    string `json:"timestamp"`
	Service      string `json:"service"`
	Version      string `json:"version"`
	Queue        string `json:"queue"`
}

// Validate checks the required wire fields. Messages failing validation are
// dropped, never retried.
func (m ProfileUpdateMessage) Validate() error {
	required := map[string]string{
		"event":      m.Event,
		"type":       m.Type,
		"created_at": m.CreatedAt,
		"user_id":    m.UserID,
		"timestamp":  m.Timestamp,
		"service":    m.Service,
		"version":    m.Version,
		"queue":      m.Queue,
	}
	for field, value := range required {
		if value == "" {
			return fmt.Errorf("missing required field: %s", field)
		}
	}

	if m.PointsEarned == nil {
		return errors.New("missing required field: points_earned")
	}
	if *m.PointsEarned < 0 {
		return fmt.Errorf("points_earned cannot be negative, got %d", *m.PointsEarned)
	}

	return nil
}

// OccurredAt parses the event-reported timestamp.
func (m ProfileUpdateMessage) OccurredAt() (time.Time, error) {
	return time.Parse(time.RFC3339, m.CreatedAt)
}

// DeliveredAt parses the delivery timestamp used for staleness and dedup.
func (m ProfileUpdateMessage) DeliveredAt() (time.Time, error) {
	return time.Parse(time.RFC3339, m.Timestamp)
}

// DedupKey identifies a logically identical event for duplicate suppression.
func (m ProfileUpdateMessage) DedupKey() string {
	points := 0
	if m.PointsEarned != nil {
		points = *m.PointsEarned
	}
	return fmt.Sprintf("%s|%s|%d|%s", m.UserID, m.Timestamp, points, m.Type)
}
