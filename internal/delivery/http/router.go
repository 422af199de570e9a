package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "conventionplanner/docs"
	"conventionplanner/internal/delivery/http/controllers"
	"conventionplanner/internal/delivery/http/middleware"
	"conventionplanner/internal/domain"
)

// Controllers groups the handlers the router mounts.
type Controllers struct {
	Auth        *controllers.AuthController
	Conferences *controllers.ConferenceController
	Rooms       *controllers.RoomController
	Events      *controllers.EventController
}

// NewRouter initializes the HTTP router with all application routes.
// Everything except auth and swagger requires a Bearer token.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Conferences
	mux.HandleFunc("GET /conferences", auth(c.Conferences.ListConferences))
	mux.HandleFunc("POST /conferences", auth(c.Conferences.CreateConference))
	mux.HandleFunc("GET /conferences/joined", auth(c.Conferences.ListJoinedConferences))
	mux.HandleFunc("GET /conferences/{conferenceID}", auth(c.Conferences.GetConference))
	mux.HandleFunc("PATCH /conferences/{conferenceID}", auth(c.Conferences.UpdateConference))
	mux.HandleFunc("DELETE /conferences/{conferenceID}", auth(c.Conferences.DeleteConference))
	mux.HandleFunc("POST /conferences/{conferenceID}/join", auth(c.Conferences.Join))
	mux.HandleFunc("POST /conferences/{conferenceID}/leave", auth(c.Conferences.Leave))
	mux.HandleFunc("GET /conferences/{conferenceID}/organizers", auth(c.Conferences.ListOrganizers))
	mux.HandleFunc("POST /conferences/{conferenceID}/organizers", auth(c.Conferences.AddOrganizer))
	mux.HandleFunc("DELETE /conferences/{conferenceID}/organizers/{userID}", auth(c.Conferences.RemoveOrganizer))
	mux.HandleFunc("GET /conferences/{conferenceID}/speakers", auth(c.Conferences.ListSpeakers))
	mux.HandleFunc("GET /conferences/{conferenceID}/speakers/{userID}/events", auth(c.Events.ListSpeakerEvents))
	mux.HandleFunc("GET /conferences/{conferenceID}/attendees", auth(c.Conferences.ListAttendees))
	mux.HandleFunc("DELETE /conferences/{conferenceID}/attendees/{userID}", auth(c.Conferences.RemoveAttendee))
	mux.HandleFunc("GET /conferences/{conferenceID}/attendees/{userID}/events", auth(c.Events.ListAttendeeEvents))

	// Rooms
	mux.HandleFunc("GET /conferences/{conferenceID}/rooms", auth(c.Rooms.ListRooms))
	mux.HandleFunc("POST /conferences/{conferenceID}/rooms", auth(c.Rooms.CreateRoom))
	mux.HandleFunc("GET /conferences/{conferenceID}/rooms/{roomID}", auth(c.Rooms.GetRoom))
	mux.HandleFunc("PATCH /conferences/{conferenceID}/rooms/{roomID}", auth(c.Rooms.UpdateRoom))
	mux.HandleFunc("DELETE /conferences/{conferenceID}/rooms/{roomID}", auth(c.Rooms.DeleteRoom))
	mux.HandleFunc("GET /conferences/{conferenceID}/rooms/{roomID}/schedule", auth(c.Rooms.GetRoomSchedule))

	// Events
	mux.HandleFunc("GET /conferences/{conferenceID}/events", auth(c.Events.ListEvents))
	mux.HandleFunc("POST /conferences/{conferenceID}/events", auth(c.Events.CreateEvent))
	mux.HandleFunc("GET /conferences/{conferenceID}/events/{eventID}", auth(c.Events.GetEvent))
	mux.HandleFunc("PATCH /conferences/{conferenceID}/events/{eventID}", auth(c.Events.UpdateEvent))
	mux.HandleFunc("DELETE /conferences/{conferenceID}/events/{eventID}", auth(c.Events.DeleteEvent))
	mux.HandleFunc("GET /conferences/{conferenceID}/events/{eventID}/attendees", auth(c.Events.ListEventAttendees))
	mux.HandleFunc("GET /conferences/{conferenceID}/events/{eventID}/speakers", auth(c.Events.ListEventSpeakers))
	mux.HandleFunc("POST /conferences/{conferenceID}/events/{eventID}/registrations", auth(c.Events.Register))
	mux.HandleFunc("DELETE /conferences/{conferenceID}/events/{eventID}/registrations", auth(c.Events.Unregister))
	mux.HandleFunc("POST /conferences/{conferenceID}/events/{eventID}/conversation", auth(c.Events.CreateConversation))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with request logging and CORS.
func NewHandler(mux http.Handler, allowedOrigins []string, logger *slog.Logger) http.Handler {
	return middleware.LoggingMiddleware(logger, middleware.CORS(allowedOrigins, mux))
}
