package service

import (
	"context"
	"log"
	"time"

	activity "devpath.app/profileservice/internal/modules/activity/service"
	eventDto "devpath.app/profileservice/internal/modules/event/dto"
	levels "devpath.app/profileservice/internal/modules/levels/service"
	notification "devpath.app/profileservice/internal/modules/notification/service"
	profileRepo "devpath.app/profileservice/internal/modules/profile/repository"
	streak "devpath.app/profileservice/internal/modules/streak/service"
	weekly "devpath.app/profileservice/internal/modules/weekly/service"
	"devpath.app/profileservice/pkg/points"
)

// Events carrying more than this many points are suspicious but still processed.
const highPointsWarnThreshold = 1000

type EventProcessor interface {
	// Process folds one inbound event into the user's durable state. All
	// business-rule failures are absorbed and logged; the consumption loop
	// never sees them.
	Process(ctx context.Context, msg eventDto.ProfileUpdateMessage)
}

type eventProcessor struct {
	profiles      profileRepo.ProfileRepository
	activities    activity.ActivityService
	streaks       streak.StreakService
	weeks         weekly.WeeklyService
	levels        levels.LevelService
	notifications notification.NotificationService
	dedup         *DedupCache
	maxAge        time.Duration
}

func NewEventProcessor(
	profiles profileRepo.ProfileRepository,
	activities activity.ActivityService,
	streaks streak.StreakService,
	weeks weekly.WeeklyService,
	levelService levels.LevelService,
	notifications notification.NotificationService,
	dedup *DedupCache,
	maxAge time.Duration,
) EventProcessor {
	return &eventProcessor{
		profiles:      profiles,
		activities:    activities,
		streaks:       streaks,
		weeks:         weeks,
		levels:        levelService,
		notifications: notifications,
		dedup:         dedup,
		maxAge:        maxAge,
	}
}

func (p *eventProcessor) Process(ctx context.Context, msg eventDto.ProfileUpdateMessage) {
	if err := msg.Validate(); err != nil {
		log.Printf("Dropping malformed event: %v", err)
		return
	}

	delivered, err := msg.DeliveredAt()
	if err != nil {
		log.Printf("Dropping event with unparsable timestamp %q: %v", msg.Timestamp, err)
		return
	}
	if time.Since(delivered) > p.maxAge {
		log.Printf("Dropping stale event for user %s (delivered %s)", msg.UserID, msg.Timestamp)
		return
	}

	occurred, err := msg.OccurredAt()
	if err != nil {
		log.Printf("Dropping event with unparsable created_at %q: %v", msg.CreatedAt, err)
		return
	}

	key := msg.DedupKey()
	if p.dedup.Seen(key) {
		log.Printf("Duplicate event detected for user %s, skipping", msg.UserID)
		return
	}

	// Events never create profiles; only the explicit creation path does.
	profile, err := p.profiles.FindByID(ctx, msg.UserID)
	if err != nil {
		log.Printf("Failed to load profile %s: %v", msg.UserID, err)
		return
	}
	if profile == nil {
		log.Printf("User not found: %s, dropping event", msg.UserID)
		return
	}

	p.dedup.Record(key)

	earned, err := points.New(*msg.PointsEarned)
	if err != nil {
		log.Printf("Dropping event with invalid points for user %s: %v", msg.UserID, err)
		return
	}
	if earned.Value() > highPointsWarnThreshold {
		log.Printf("Unusually high points earned: %d for user %s", earned.Value(), msg.UserID)
	}

	// Each sub-step fails independently so one failure does not starve the
	// others.
	if err := p.activities.Record(ctx, msg.UserID, occurred, msg.Type, earned.Value()); err != nil {
		log.Printf("Failed to record daily activity for user %s: %v", msg.UserID, err)
	}

	streakLength := profile.CurrentStreakDays
	if length, err := p.streaks.Reconcile(ctx, profile, occurred, earned.Value()); err != nil {
		log.Printf("Failed to reconcile streak for user %s: %v", msg.UserID, err)
	} else {
		streakLength = length
	}

	if err := p.weeks.MarkCompleted(ctx, msg.UserID, occurred, streakLength); err != nil {
		log.Printf("Failed to mark weekly progress for user %s: %v", msg.UserID, err)
	}

	// The point total (and the level derived from it) moves exactly once per
	// accepted event.
	current, err := points.New(profile.PointsCurrent)
	if err != nil {
		log.Printf("Skipping point update for user %s, stored total invalid: %v", msg.UserID, err)
		return
	}
	newTotal := current.Add(earned).Value()
	newLevel, err := p.levels.LevelFor(ctx, newTotal)
	if err != nil {
		log.Printf("Failed to resolve level for user %s: %v", msg.UserID, err)
		newLevel = profile.Level
	}

	if err := p.profiles.UpdatePoints(ctx, msg.UserID, newTotal, newLevel); err != nil {
		log.Printf("Failed to update points for user %s: %v", msg.UserID, err)
		return
	}

	if newLevel > profile.Level && p.notifications != nil {
		p.notifications.PublishLevelUp(ctx, msg.UserID, profile.Level, newLevel, newTotal)
	}
}
