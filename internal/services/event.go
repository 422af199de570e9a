package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"conventionplanner/internal/convention"
	"conventionplanner/internal/domain"
)

type eventService struct {
	conferences   *convention.ConferenceManager
	perms         *convention.PermissionManager
	conversations domain.ConversationService
	users         domain.UserDirectory
	emailService  domain.EmailService
	logger        *slog.Logger
}

// NewEventService returns the event API of a conference.
// users and emailService are optional; when either is nil, deleting an event sends no notifications.
func NewEventService(
	conferences *convention.ConferenceManager,
	perms *convention.PermissionManager,
	conversations domain.ConversationService,
	users domain.UserDirectory,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.EventService {
	return &eventService{
		conferences:   conferences,
		perms:         perms,
		conversations: conversations,
		users:         users,
		emailService:  emailService,
		logger:        logger,
	}
}

func (s *eventService) view(conferenceID, actorID uuid.UUID, required domain.Role, fn func(*convention.Conference) error) error {
	return s.conferences.View(conferenceID, func(c *convention.Conference) error {
		if err := s.perms.Authorize(c, required, actorID); err != nil {
			return err
		}
		return fn(c)
	})
}

func (s *eventService) update(conferenceID, actorID uuid.UUID, fn func(*convention.EventManager) error) error {
	return s.conferences.Update(conferenceID, func(c *convention.Conference) error {
		if err := s.perms.Authorize(c, domain.RoleOrganizer, actorID); err != nil {
			return err
		}
		return fn(c.Events())
	})
}

func (s *eventService) GetEvents(_ context.Context, conferenceID, actorID uuid.UUID) ([]*domain.Event, error) {
	var out []*domain.Event
	err := s.view(conferenceID, actorID, domain.RoleAttendee, func(c *convention.Conference) error {
		out = c.Events().GetEvents()
		return nil
	})
	return out, err
}

func (s *eventService) GetEvent(_ context.Context, conferenceID, actorID, eventID uuid.UUID) (*domain.Event, error) {
	var out *domain.Event
	err := s.view(conferenceID, actorID, domain.RoleAttendee, func(c *convention.Conference) error {
		var err error
		out, err = c.Events().Event(eventID)
		return err
	})
	return out, err
}

func (s *eventService) CreateEvent(ctx context.Context, conferenceID, actorID uuid.UUID, name string, timeRange domain.TimeRange, roomID uuid.UUID, speakerIDs []uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.update(conferenceID, actorID, func(events *convention.EventManager) error {
		var err error
		id, err = events.CreateEvent(name, timeRange, roomID, speakerIDs)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	s.logger.InfoContext(ctx, "event created",
		"conference_id", conferenceID, "event_id", id, "room_id", roomID, "speakers", len(speakerIDs))
	return id, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, conferenceID, actorID, eventID uuid.UUID) error {
	var (
		deleted        *domain.Event
		conferenceName string
	)
	err := s.conferences.Update(conferenceID, func(c *convention.Conference) error {
		if err := s.perms.Authorize(c, domain.RoleOrganizer, actorID); err != nil {
			return err
		}
		ev, err := c.Events().Event(eventID)
		if err != nil {
			return err
		}
		if err := c.Events().DeleteEvent(eventID); err != nil {
			return err
		}
		deleted, conferenceName = ev, c.Name()
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "event deleted", "conference_id", conferenceID, "event_id", eventID)
	s.notifyCancelled(ctx, conferenceName, deleted)
	return nil
}

// notifyCancelled mails every former attendee of a deleted event. Failures are logged, never returned.
func (s *eventService) notifyCancelled(ctx context.Context, conferenceName string, ev *domain.Event) {
	if s.emailService == nil || s.users == nil {
		return
	}
	for _, attendeeID := range ev.Attendees {
		user, err := s.users.GetByID(ctx, attendeeID)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping cancellation email", "user_id", attendeeID, "error", err)
			continue
		}
		err = s.emailService.SendEventCancelled(ctx, &domain.EventCancelledEmailData{
			Email:          user.Email,
			Name:           user.Name,
			EventName:      ev.Name,
			ConferenceName: conferenceName,
			Start:          ev.TimeRange.Start,
			End:            ev.TimeRange.End,
		})
		if err != nil {
			s.logger.WarnContext(ctx, "cancellation email failed", "user_id", attendeeID, "error", err)
		}
	}
}

func (s *eventService) SetEventName(_ context.Context, conferenceID, actorID, eventID uuid.UUID, name string) error {
	return s.update(conferenceID, actorID, func(events *convention.EventManager) error {
		return events.SetEventName(eventID, name)
	})
}

func (s *eventService) SetEventTimeRange(_ context.Context, conferenceID, actorID, eventID uuid.UUID, timeRange domain.TimeRange) error {
	return s.update(conferenceID, actorID, func(events *convention.EventManager) error {
		return events.SetEventTimeRange(eventID, timeRange)
	})
}

func (s *eventService) UpdateEvent(ctx context.Context, conferenceID, actorID, eventID uuid.UUID, patch domain.EventPatch) error {
	err := s.update(conferenceID, actorID, func(events *convention.EventManager) error {
		return events.UpdateEvent(eventID, patch)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "event updated", "conference_id", conferenceID, "event_id", eventID)
	return nil
}

func (s *eventService) SetEventRoom(_ context.Context, conferenceID, actorID, eventID, roomID uuid.UUID) error {
	return s.update(conferenceID, actorID, func(events *convention.EventManager) error {
		return events.SetEventRoom(eventID, roomID)
	})
}

func (s *eventService) GetEventAttendees(_ context.Context, conferenceID, actorID, eventID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	err := s.view(conferenceID, actorID, domain.RoleSpeaker, func(c *convention.Conference) error {
		var err error
		out, err = c.Events().GetEventAttendees(eventID)
		return err
	})
	return out, err
}

func (s *eventService) GetEventSpeakers(_ context.Context, conferenceID, actorID, eventID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	err := s.view(conferenceID, actorID, domain.RoleAttendee, func(c *convention.Conference) error {
		var err error
		out, err = c.Events().GetEventSpeakers(eventID)
		return err
	})
	return out, err
}

func (s *eventService) RegisterForEvent(ctx context.Context, conferenceID, actorID, targetID, eventID uuid.UUID) error {
	err := s.conferences.Update(conferenceID, func(c *convention.Conference) error {
		if err := s.perms.CanActOnAttendee(c, actorID, targetID); err != nil {
			return err
		}
		// Organizers may only register users who already joined the conference.
		if err := s.perms.Authorize(c, domain.RoleAttendee, targetID); err != nil {
			return err
		}
		return c.Events().RegisterAttendee(eventID, targetID)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "registered for event", "conference_id", conferenceID, "event_id", eventID, "user_id", targetID)
	return nil
}

func (s *eventService) UnregisterForEvent(ctx context.Context, conferenceID, actorID, targetID, eventID uuid.UUID) error {
	err := s.conferences.Update(conferenceID, func(c *convention.Conference) error {
		if err := s.perms.CanActOnAttendee(c, actorID, targetID); err != nil {
			return err
		}
		return c.Events().UnregisterAttendee(eventID, targetID)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "unregistered from event", "conference_id", conferenceID, "event_id", eventID, "user_id", targetID)
	return nil
}

func (s *eventService) GetAttendeeEvents(_ context.Context, conferenceID, actorID, targetID uuid.UUID) ([]*domain.Event, error) {
	var out []*domain.Event
	err := s.conferences.View(conferenceID, func(c *convention.Conference) error {
		if err := s.perms.CanActOnAttendee(c, actorID, targetID); err != nil {
			return err
		}
		out = c.Events().EventsForAttendee(targetID)
		return nil
	})
	return out, err
}

func (s *eventService) GetSpeakerEvents(_ context.Context, conferenceID, actorID, targetID uuid.UUID) ([]*domain.Event, error) {
	var out []*domain.Event
	err := s.view(conferenceID, actorID, domain.RoleAttendee, func(c *convention.Conference) error {
		out = c.Events().EventsForSpeaker(targetID)
		return nil
	})
	return out, err
}

// CreateEventConversation is open to organizers and to the event's own speakers.
// The messaging collaborator is called without holding the conference lock. If
// the event is deleted before the id is recorded, the conversation is left in
// the messaging service, logged at warn level, and ErrNullEvent is returned.
func (s *eventService) CreateEventConversation(ctx context.Context, conferenceID, actorID, eventID uuid.UUID) (uuid.UUID, error) {
	var participants []uuid.UUID
	err := s.conferences.View(conferenceID, func(c *convention.Conference) error {
		speaks, err := c.Events().IsEventSpeaker(eventID, actorID)
		if err != nil {
			return err
		}
		if !speaks && !c.IsOrganizer(actorID) {
			return &domain.PermissionError{Required: domain.RoleSpeaker, Actual: c.RoleOf(actorID)}
		}
		ev, err := c.Events().Event(eventID)
		if err != nil {
			return err
		}
		participants = conversationParticipants(actorID, ev)
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	conversationID, err := s.conversations.CreateConversation(ctx, participants)
	if err != nil {
		return uuid.Nil, err
	}
	err = s.conferences.Update(conferenceID, func(c *convention.Conference) error {
		return c.Events().SetConversation(eventID, conversationID)
	})
	if err != nil {
		s.logger.WarnContext(ctx, "conversation orphaned",
			"conference_id", conferenceID, "event_id", eventID, "conversation_id", conversationID, "error", err)
		return uuid.Nil, err
	}
	s.logger.InfoContext(ctx, "event conversation created",
		"conference_id", conferenceID, "event_id", eventID, "conversation_id", conversationID, "participants", len(participants))
	return conversationID, nil
}

func conversationParticipants(actorID uuid.UUID, ev *domain.Event) []uuid.UUID {
	seen := map[uuid.UUID]struct{}{actorID: {}}
	out := []uuid.UUID{actorID}
	for _, group := range [][]uuid.UUID{ev.Speakers, ev.Attendees} {
		for _, id := range group {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
