package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSalt = "test-salt"

func TestGenerateKeyIsStable(t *testing.T) {
	a := GenerateKey("AABBCC", "2027-01-01", testSalt)
	b := GenerateKey("AABBCC", "2027-01-01", testSalt)

	assert.Equal(t, a, b)
	assert.Len(t, a, 16)

	// Any input change produces a different key.
	assert.NotEqual(t, a, GenerateKey("AABBCD", "2027-01-01", testSalt))
	assert.NotEqual(t, a, GenerateKey("AABBCC", "2027-01-02", testSalt))
	assert.NotEqual(t, a, GenerateKey("AABBCC", "2027-01-01", "other-salt"))
}

func TestValidate(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	key := GenerateKey("DEV123", "2026-12-31", testSalt)

	assert.NoError(t, Validate(key, "DEV123", "2026-12-31", testSalt, now))

	// Case and surrounding whitespace in the key are tolerated.
	assert.NoError(t, Validate("  "+key+"\n", "DEV123", "2026-12-31", testSalt, now))

	assert.Error(t, Validate(key, "OTHER", "2026-12-31", testSalt, now))
	assert.Error(t, Validate("0000000000000000", "DEV123", "2026-12-31", testSalt, now))
}

func TestValidateExpiry(t *testing.T) {
	key := GenerateKey("DEV123", "2026-06-01", testSalt)

	// Valid through the whole expiry day.
	onTheDay := time.Date(2026, 6, 1, 23, 0, 0, 0, time.UTC)
	assert.NoError(t, Validate(key, "DEV123", "2026-06-01", testSalt, onTheDay))

	dayAfter := time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC)
	assert.Error(t, Validate(key, "DEV123", "2026-06-01", testSalt, dayAfter))

	badKey := GenerateKey("DEV123", "not-a-date", testSalt)
	assert.Error(t, Validate(badKey, "DEV123", "not-a-date", testSalt, onTheDay))
}

func TestLicenseLogRoundTrip(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "license_log.txt")

	require.NoError(t, AppendLog(logPath, "DEV123", "2026-12-31", "KEY1"))
	require.NoError(t, AppendLog(logPath, "OTHER", "2026-12-31", "KEY2"))

	matches, err := SearchLog(logPath, "DEV123")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Contains(t, matches[0], "KEY1")

	none, err := SearchLog(logPath, "MISSING")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMachineIDIsStable(t *testing.T) {
	a := MachineID()
	b := MachineID()
	assert.Equal(t, a, b)
	assert.Len(t, a, 12)
}
