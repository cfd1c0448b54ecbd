package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func validMessage() ProfileUpdateMessage {
	return ProfileUpdateMessage{
		Event:        "exercise_completed",
		Type:         "frontend",
		CreatedAt:    "2024-03-01T14:30:00Z",
		PointsEarned: intPtr(20),
		UserID:       "u1",
		Timestamp:    "2024-03-01T14:30:05Z",
		Service:      "exercise-service",
		Version:      "1.0",
		Queue:        "profile_updates",
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validMessage().Validate())
}

func TestValidateMissingField(t *testing.T) {
	msg := validMessage()
	msg.UserID = ""
	assert.Error(t, msg.Validate())
}

func TestValidateMissingPoints(t *testing.T) {
	msg := validMessage()
	msg.PointsEarned = nil
	err := msg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "points_earned")
}

func TestValidateZeroPointsIsAllowed(t *testing.T) {
	msg := validMessage()
	msg.PointsEarned = intPtr(0)
	assert.NoError(t, msg.Validate())
}

func TestValidateNegativePoints(t *testing.T) {
	msg := validMessage()
	msg.PointsEarned = intPtr(-5)
	assert.Error(t, msg.Validate())
}

func TestDedupKey(t *testing.T) {
	msg := validMessage()
	assert.Equal(t, "u1|2024-03-01T14:30:05Z|20|frontend", msg.DedupKey())

	other := validMessage()
	other.PointsEarned = intPtr(21)
	assert.NotEqual(t, msg.DedupKey(), other.DedupKey())
}

func TestTimestampParsing(t *testing.T) {
	msg := validMessage()

	occurred, err := msg.OccurredAt()
	require.NoError(t, err)
	assert.Equal(t, 2024, occurred.Year())

	_, err = ProfileUpdateMessage{CreatedAt: "not-a-date"}.OccurredAt()
	assert.Error(t, err)
}
