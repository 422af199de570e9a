package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"conventionplanner/internal/convention"
	"conventionplanner/internal/domain"
)

type conferenceService struct {
	conferences *convention.ConferenceManager
	perms       *convention.PermissionManager
	users       domain.UserDirectory
	logger      *slog.Logger
}

// NewConferenceService returns the conference-level API over the given store. users may be nil,
// in which case AddOrganizerByEmail always reports ErrNullUser.
func NewConferenceService(
	conferences *convention.ConferenceManager,
	perms *convention.PermissionManager,
	users domain.UserDirectory,
	logger *slog.Logger,
) domain.ConferenceService {
	return &conferenceService{
		conferences: conferences,
		perms:       perms,
		users:       users,
		logger:      logger,
	}
}

func (s *conferenceService) CreateConference(ctx context.Context, name string, timeRange domain.TimeRange, creatorID uuid.UUID) (uuid.UUID, error) {
	id, err := s.conferences.CreateConference(name, timeRange, creatorID)
	if err != nil {
		return uuid.Nil, err
	}
	s.logger.InfoContext(ctx, "conference created", "conference_id", id, "creator_id", creatorID)
	return id, nil
}

func (s *conferenceService) ConferenceExists(_ context.Context, conferenceID uuid.UUID) bool {
	return s.conferences.ConferenceExists(conferenceID)
}

// GetConference needs no role: general details are what a user looks at before joining.
func (s *conferenceService) GetConference(_ context.Context, conferenceID uuid.UUID) (*domain.Conference, error) {
	var out *domain.Conference
	err := s.conferences.View(conferenceID, func(c *convention.Conference) error {
		out = c.Info()
		return nil
	})
	return out, err
}

func (s *conferenceService) ListConferences(_ context.Context, params domain.PaginationParams) ([]*domain.Conference, int, error) {
	all := make([]*domain.Conference, 0)
	for _, c := range s.conferences.Conferences() {
		err := c.View(func(c *convention.Conference) error {
			all = append(all, c.Info())
			return nil
		})
		if err != nil && !errors.Is(err, domain.ErrNullConference) {
			return nil, 0, fmt.Errorf("list conferences: %w", err)
		}
	}
	sortConferences(all)
	lo, hi := params.Bounds(len(all))
	return all[lo:hi], len(all), nil
}

func (s *conferenceService) ListJoinedConferences(_ context.Context, userID uuid.UUID) ([]*domain.JoinedConference, error) {
	joined := make([]*domain.JoinedConference, 0)
	for _, c := range s.conferences.Conferences() {
		err := c.View(func(c *convention.Conference) error {
			if role := c.RoleOf(userID); role != domain.RoleNone {
				joined = append(joined, &domain.JoinedConference{Conference: c.Info(), Role: role})
			}
			return nil
		})
		if err != nil && !errors.Is(err, domain.ErrNullConference) {
			return nil, fmt.Errorf("list joined conferences: %w", err)
		}
	}
	slices.SortFunc(joined, func(a, b *domain.JoinedConference) int {
		return compareConferences(a.Conference, b.Conference)
	})
	return joined, nil
}

func sortConferences(list []*domain.Conference) {
	slices.SortFunc(list, compareConferences)
}

func compareConferences(a, b *domain.Conference) int {
	if c := a.TimeRange.Start.Compare(b.TimeRange.Start); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.ID.String(), b.ID.String())
}

func (s *conferenceService) SetConferenceName(ctx context.Context, conferenceID, actorID uuid.UUID, name string) error {
	return s.conferences.Update(conferenceID, func(c *convention.Conference) error {
		if err := s.perms.Authorize(c, domain.RoleOrganizer, actorID); err != nil {
			return err
		}
		return c.SetName(name)
	})
}

func (s *conferenceService) SetConferenceTimeRange(ctx context.Context, conferenceID, actorID uuid.UUID, timeRange domain.TimeRange) error {
	return s.conferences.Update(conferenceID, func(c *convention.Conference) error {
		if err := s.perms.Authorize(c, domain.RoleOrganizer, actorID); err != nil {
			return err
		}
		return c.SetTimeRange(timeRange)
	})
}

func (s *conferenceService) UpdateConference(ctx context.Context, conferenceID, actorID uuid.UUID, patch domain.ConferencePatch) error {
	err := s.conferences.Update(conferenceID, func(c *convention.Conference) error {
		if err := s.perms.Authorize(c, domain.RoleOrganizer, actorID); err != nil {
			return err
		}
		return c.ApplyPatch(patch)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "conference updated", "conference_id", conferenceID)
	return nil
}

// DeleteConference reports ErrNullConference for unknown ids before any permission check.
func (s *conferenceService) DeleteConference(ctx context.Context, conferenceID, actorID uuid.UUID) error {
	err := s.conferences.DeleteConference(conferenceID, func(c *convention.Conference) error {
		return s.perms.Authorize(c, domain.RoleOrganizer, actorID)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "conference deleted", "conference_id", conferenceID, "actor_id", actorID)
	return nil
}

func (s *conferenceService) AddOrganizer(ctx context.Context, conferenceID, actorID, targetID uuid.UUID) error {
	err := s.conferences.Update(conferenceID, func(c *convention.Conference) error {
		if err := s.perms.Authorize(c, domain.RoleOrganizer, actorID); err != nil {
			return err
		}
		c.AddOrganizer(targetID)
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "organizer added", "conference_id", conferenceID, "user_id", targetID)
	return nil
}

func (s *conferenceService) AddOrganizerByEmail(ctx context.Context, conferenceID, actorID uuid.UUID, email string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, domain.ErrInvalidInput
	}
	// Check first so that non-organizers cannot probe the user directory.
	if err := s.perms.Require(domain.RoleOrganizer, conferenceID, actorID); err != nil {
		return nil, err
	}
	if s.users == nil {
		return nil, domain.ErrNullUser
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNullUser) {
			return nil, domain.ErrNullUser
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	if err := s.AddOrganizer(ctx, conferenceID, actorID, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *conferenceService) RemoveOrganizer(ctx context.Context, conferenceID, actorID, targetID uuid.UUID) error {
	err := s.conferences.Update(conferenceID, func(c *convention.Conference) error {
		if err := s.perms.Authorize(c, domain.RoleOrganizer, actorID); err != nil {
			return err
		}
		return c.RemoveOrganizer(targetID)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "organizer removed", "conference_id", conferenceID, "user_id", targetID)
	return nil
}

// AddAttendee lets any user join a conference; it performs no permission check.
func (s *conferenceService) AddAttendee(ctx context.Context, conferenceID, targetID uuid.UUID) error {
	return s.conferences.Update(conferenceID, func(c *convention.Conference) error {
		c.AddAttendee(targetID)
		return nil
	})
}

func (s *conferenceService) LeaveConference(ctx context.Context, conferenceID, actorID, targetID uuid.UUID) error {
	err := s.conferences.Update(conferenceID, func(c *convention.Conference) error {
		if err := s.perms.CanActOnAttendee(c, actorID, targetID); err != nil {
			return err
		}
		return c.Leave(targetID)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "user left conference", "conference_id", conferenceID, "user_id", targetID, "actor_id", actorID)
	return nil
}

func (s *conferenceService) GetOrganizers(_ context.Context, conferenceID, actorID uuid.UUID) ([]uuid.UUID, error) {
	return s.members(conferenceID, actorID, (*convention.Conference).Organizers)
}

func (s *conferenceService) GetSpeakers(_ context.Context, conferenceID, actorID uuid.UUID) ([]uuid.UUID, error) {
	return s.members(conferenceID, actorID, (*convention.Conference).Speakers)
}

func (s *conferenceService) GetAttendees(_ context.Context, conferenceID, actorID uuid.UUID) ([]uuid.UUID, error) {
	return s.members(conferenceID, actorID, (*convention.Conference).Attendees)
}

func (s *conferenceService) members(conferenceID, actorID uuid.UUID, list func(*convention.Conference) []uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	err := s.conferences.View(conferenceID, func(c *convention.Conference) error {
		if err := s.perms.Authorize(c, domain.RoleAttendee, actorID); err != nil {
			return err
		}
		out = list(c)
		return nil
	})
	return out, err
}
