package member

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/guild-hub/guild-hub/internal/domain/member"
	"github.com/guild-hub/guild-hub/internal/domain/notification"
)

// Service handles guild member profiles. Profile milestones (new member,
// level-up) are pushed to connected gateway clients through the SSE hub.
type Service struct {
	repo   member.Repository
	hub    notification.SSEHub
	logger zerolog.Logger
}

// NewService creates a member service.
func NewService(repo member.Repository, hub notification.SSEHub, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		hub:    hub,
		logger: logger.With().Str("service", "member").Logger(),
	}
}

// Register creates a profile for a member the first time the gateway sees
// them. Registering an existing member is an error; the gateway checks first.
func (s *Service) Register(ctx context.Context, userID, username string) (*member.Member, error) {
	if err := member.ValidateUserID(userID); err != nil {
		return nil, err
	}
	username = member.NormalizeUsername(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	existing, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("member already registered: %s", userID)
	}

	m := &member.Member{
		UserID:    userID,
		Username:  username,
		XP:        0,
		Level:     1,
		Status:    member.StatusActive,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", userID).Str("username", username).Msg("member registered")

	if data, err := json.Marshal(m); err == nil {
		s.hub.BroadcastToAll(notification.NewSSEMessage("member.registered", data))
	}
	return m, nil
}

// Get retrieves a member profile.
func (s *Service) Get(ctx context.Context, userID string) (*member.Member, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// List lists member profiles.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*member.Member, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

// AwardXP adds XP to a member and recomputes the level. Used by the API layer
// after a committed trade and by other gamification hooks. Crossing a level
// threshold pushes a level-up event to the member's gateway connections.
func (s *Service) AwardXP(ctx context.Context, userID string, delta int64) (*member.Member, error) {
	if delta <= 0 {
		return nil, fmt.Errorf("xp delta must be positive")
	}
	m, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("member not found: %s", userID)
	}

	newXP := m.XP + delta
	newLevel := member.LevelForXP(newXP)
	if err := s.repo.AddXP(ctx, userID, delta, newLevel); err != nil {
		return nil, err
	}
	if newLevel > m.Level {
		s.logger.Info().
			Str("user_id", userID).
			Int("level", newLevel).
			Msg("member leveled up")
		payload, _ := json.Marshal(map[string]interface{}{
			"userId": userID,
			"level":  newLevel,
			"xp":     newXP,
		})
		s.hub.BroadcastToUser(userID, notification.NewSSEMessage("member.level_up", payload))
	}
	m.XP = newXP
	m.Level = newLevel
	m.UpdatedAt = time.Now().UTC()
	return m, nil
}

// UpdateStatus changes a member's standing.
func (s *Service) UpdateStatus(ctx context.Context, userID string, status member.Status) error {
	if err := member.ValidateStatus(status); err != nil {
		return err
	}
	m, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("member not found: %s", userID)
	}
	if err := s.repo.UpdateStatus(ctx, userID, status); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Str("status", string(status)).Msg("member status updated")
	return nil
}
