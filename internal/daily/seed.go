package daily

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"
)

// Location is where the daily puzzle rolls over: midnight UTC+8.
var Location = time.FixedZone("UTC+8", 8*60*60)

const dateKeyLayout = "2006-01-02"

// DefaultSalt is the salt used when none is configured. Anyone who knows it
// can compute future puzzles.
const DefaultSalt = "minesweeper-daily-puzzle-salt-2025"

// DateKey formats the UTC+8 calendar date of t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.In(Location).Format(dateKeyLayout)
}

// ParseDateKey parses a YYYY-MM-DD key as midnight in [Location].
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(dateKeyLayout, key, Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t, nil
}

// SeedForDate is the first four bytes, big endian, of
// SHA-256("{dateKey}|{label}|{salt}").
func SeedForDate(label, dateKey, salt string) uint32 {
	sum := sha256.Sum256([]byte(dateKey + "|" + label + "|" + salt))
	return binary.BigEndian.Uint32(sum[:4])
}

func Seed(label string, t time.Time, salt string) uint32 {
	return SeedForDate(label, DateKey(t), salt)
}
