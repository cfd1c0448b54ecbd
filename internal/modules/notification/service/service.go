package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// LevelUpNotification is the payload published when a user reaches a new level.
type LevelUpNotification struct {
	Type          string    `json:"type"`
	UserID        string    `json:"user_id"`
	PreviousLevel int       `json:"previous_level"`
	NewLevel      int       `json:"new_level"`
	TotalPoints   int       `json:"total_points"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type NotificationService interface {
	// PublishLevelUp is best-effort: failures are logged, never propagated.
	PublishLevelUp(ctx context.Context, userID string, previousLevel, newLevel, totalPoints int)
}

type notificationService struct {
	redisClient *redis.Client
}

func NewNotificationService(redisClient *redis.Client) NotificationService {
	return &notificationService{redisClient: redisClient}
}

func (s *notificationService) PublishLevelUp(ctx context.Context, userID string, previousLevel, newLevel, totalPoints int) {
	if s.redisClient == nil {
		return
	}

	notification := LevelUpNotification{
		Type:          "level_up",
		UserID:        userID,
		PreviousLevel: previousLevel,
		NewLevel:      newLevel,
		TotalPoints:   totalPoints,
		OccurredAt:    time.Now(),
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		log.Printf("Failed to marshal level-up notification for user %s: %v", userID, err)
		return
	}

	channel := fmt.Sprintf("user_notifications:%s", userID)
	if err := s.redisClient.Publish(ctx, channel, payload).Err(); err != nil {
		log.Printf("Failed to publish level-up notification for user %s: %v", userID, err)
	}
}
