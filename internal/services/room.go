package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"conventionplanner/internal/convention"
	"conventionplanner/internal/domain"
)

type roomService struct {
	conferences *convention.ConferenceManager
	perms       *convention.PermissionManager
	logger      *slog.Logger
}

// NewRoomService returns the room API. Reads need attendee standing, writes need organizer.
func NewRoomService(conferences *convention.ConferenceManager, perms *convention.PermissionManager, logger *slog.Logger) domain.RoomService {
	return &roomService{conferences: conferences, perms: perms, logger: logger}
}

func (s *roomService) view(conferenceID, actorID uuid.UUID, fn func(*convention.RoomManager) error) error {
	return s.conferences.View(conferenceID, func(c *convention.Conference) error {
		if err := s.perms.Authorize(c, domain.RoleAttendee, actorID); err != nil {
			return err
		}
		return fn(c.Rooms())
	})
}

func (s *roomService) update(conferenceID, actorID uuid.UUID, fn func(*convention.RoomManager) error) error {
	return s.conferences.Update(conferenceID, func(c *convention.Conference) error {
		if err := s.perms.Authorize(c, domain.RoleOrganizer, actorID); err != nil {
			return err
		}
		return fn(c.Rooms())
	})
}

func (s *roomService) GetRooms(_ context.Context, conferenceID, actorID uuid.UUID) ([]*domain.Room, error) {
	var out []*domain.Room
	err := s.view(conferenceID, actorID, func(rooms *convention.RoomManager) error {
		out = rooms.GetRooms()
		return nil
	})
	return out, err
}

func (s *roomService) GetRoom(_ context.Context, conferenceID, actorID, roomID uuid.UUID) (*domain.Room, error) {
	var out *domain.Room
	err := s.view(conferenceID, actorID, func(rooms *convention.RoomManager) error {
		var err error
		out, err = rooms.Room(roomID)
		return err
	})
	return out, err
}

func (s *roomService) CreateRoom(ctx context.Context, conferenceID, actorID uuid.UUID, location string, capacity int) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.update(conferenceID, actorID, func(rooms *convention.RoomManager) error {
		var err error
		id, err = rooms.CreateRoom(location, capacity)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	s.logger.InfoContext(ctx, "room created", "conference_id", conferenceID, "room_id", id, "capacity", capacity)
	return id, nil
}

func (s *roomService) SetRoomLocation(_ context.Context, conferenceID, actorID, roomID uuid.UUID, location string) error {
	return s.update(conferenceID, actorID, func(rooms *convention.RoomManager) error {
		return rooms.SetRoomLocation(roomID, location)
	})
}

func (s *roomService) SetRoomCapacity(_ context.Context, conferenceID, actorID, roomID uuid.UUID, capacity int) error {
	return s.update(conferenceID, actorID, func(rooms *convention.RoomManager) error {
		return rooms.SetRoomCapacity(roomID, capacity)
	})
}

func (s *roomService) UpdateRoom(ctx context.Context, conferenceID, actorID, roomID uuid.UUID, patch domain.RoomPatch) error {
	err := s.update(conferenceID, actorID, func(rooms *convention.RoomManager) error {
		return rooms.UpdateRoom(roomID, patch)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "room updated", "conference_id", conferenceID, "room_id", roomID)
	return nil
}

func (s *roomService) DeleteRoom(ctx context.Context, conferenceID, actorID, roomID uuid.UUID) error {
	err := s.update(conferenceID, actorID, func(rooms *convention.RoomManager) error {
		return rooms.DeleteRoom(roomID)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "room deleted", "conference_id", conferenceID, "room_id", roomID)
	return nil
}

func (s *roomService) GetRoomSchedule(_ context.Context, conferenceID, actorID, roomID uuid.UUID) (map[uuid.UUID]domain.TimeRange, error) {
	var out map[uuid.UUID]domain.TimeRange
	err := s.view(conferenceID, actorID, func(rooms *convention.RoomManager) error {
		var err error
		out, err = rooms.GetRoomSchedule(roomID)
		return err
	})
	return out, err
}
