package member

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Status represents member status.
type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusBanned Status = "BANNED"
	StatusLeft   Status = "LEFT"
)

// Member is one guild member profile. UserID is the Discord snowflake and
// stays an opaque string throughout the backend.
type Member struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	XP        int64     `json:"xp"`
	Level     int       `json:"level"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Member) IsActive() bool {
	return m.Status == StatusActive
}

// LevelForXP maps accumulated XP onto a level. Each level costs 100 XP more
// than the previous one: level n starts at 100*n*(n-1)/2 XP.
func LevelForXP(xp int64) int {
	level := 1
	var threshold int64
	for {
		threshold += int64(level) * 100
		if xp < threshold {
			return level
		}
		level++
	}
}

var userIDPattern = regexp.MustCompile(`^[0-9]{5,20}$`)

func ValidateUserID(userID string) error {
	if userID == "" {
		return errors.New("user id is required")
	}
	if !userIDPattern.MatchString(userID) {
		return errors.New("user id must be a numeric snowflake")
	}
	return nil
}

func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

func ValidateStatus(status Status) error {
	switch status {
	case StatusActive, StatusBanned, StatusLeft:
		return nil
	default:
		return errors.New("invalid status")
	}
}
