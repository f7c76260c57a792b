package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeEntryToken(t *testing.T) {
	createdAt := time.Date(2025, 5, 15, 14, 30, 45, 123456789, time.UTC)
	entryID := "entry-abc-123"

	token := EncodeEntryToken(createdAt, entryID)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedCreatedAt, decodedEntryID, err := DecodeEntryToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, createdAt, decodedCreatedAt, "Created at time should match after decode")
	assert.Equal(t, entryID, decodedEntryID, "Entry ID should match after decode")

	// Current time round trips within nanosecond precision.
	now := time.Now().UTC()
	nowToken := EncodeEntryToken(now, entryID)
	decodedNow, _, err := DecodeEntryToken(nowToken)
	assert.NoError(t, err, "Decoding current time should not return an error")
	assert.True(t, now.Equal(decodedNow), "Current time should match after decode")
}

func TestDecodeEntryTokenError(t *testing.T) {
	// Invalid base64
	_, _, err := DecodeEntryToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Missing separator
	invalidToken := "MjAyMy0wNS0xNVQwMDowMDowMFo=" // Base64 encoded timestamp without separator
	_, _, err = DecodeEntryToken(invalidToken)
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	// Invalid timestamp
	invalidDateToken := EncodeEntryToken(time.Time{}, "id")
	_, _, err = DecodeEntryToken(invalidDateToken)
	assert.NoError(t, err, "Zero time is still a parseable timestamp")

	badTimestamp := "bm90YWRhdGV8ZW50cnktMQ==" // Base64 encoded "notadate|entry-1"
	_, _, err = DecodeEntryToken(badTimestamp)
	assert.Error(t, err, "Should return an error for invalid timestamp format")
	assert.Contains(t, err.Error(), "created_at parse", "Error should mention timestamp parsing issue")
}
