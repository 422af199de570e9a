package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"conventionplanner/internal/convention"
	"conventionplanner/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct {
	salt string
	hash string
}

func (f *fakePasswordHasher) GenerateSalt() (string, error) { return f.salt, nil }
func (f *fakePasswordHasher) Hash(salt, password string) (string, error) {
	if f.hash != "" {
		return f.hash, nil
	}
	return "hash-" + password, nil
}
func (f *fakePasswordHasher) Compare(hash, salt, password string) error {
	if hash != "hash-"+password && hash != f.hash {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	token string
	err   error
}

func (f *fakeTokenIssuer) Issue(userID uuid.UUID, email string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.token != "" {
		return f.token, nil
	}
	return "token-" + userID.String(), nil
}

// fakeUserRepo implements domain.UserRepository for tests.
type fakeUserRepo struct {
	mu        sync.Mutex
	byID      map[uuid.UUID]*domain.User
	byEmail   map[string]*domain.User
	createErr error
	getErr    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

// add stores a user directly and returns it.
func (f *fakeUserRepo) add(email, name string) *domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := &domain.User{ID: uuid.New(), Email: email, Name: name}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return u
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	u.ID = uuid.New()
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.byID[id]
	return ok, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNullUser
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNullUser
}

// fakeEmailService records what would have been sent.
type fakeEmailService struct {
	mu        sync.Mutex
	welcome   []*domain.WelcomeMessageEmailData
	cancelled []*domain.EventCancelledEmailData
	err       error
}

func (f *fakeEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.welcome = append(f.welcome, data)
	return nil
}

func (f *fakeEmailService) SendEventCancelled(ctx context.Context, data *domain.EventCancelledEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.cancelled = append(f.cancelled, data)
	return nil
}

// fakeConversations implements domain.ConversationService for tests.
type fakeConversations struct {
	mu           sync.Mutex
	participants map[uuid.UUID][]uuid.UUID
	err          error
	// onCreate runs after a conversation is stored, outside the fake's lock.
	onCreate func()
}

func newFakeConversations() *fakeConversations {
	return &fakeConversations{participants: make(map[uuid.UUID][]uuid.UUID)}
}

func (f *fakeConversations) CreateConversation(ctx context.Context, participantIDs []uuid.UUID) (uuid.UUID, error) {
	f.mu.Lock()
	if f.err != nil {
		f.mu.Unlock()
		return uuid.Nil, f.err
	}
	id := uuid.New()
	f.participants[id] = participantIDs
	hook := f.onCreate
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return id, nil
}

func (f *fakeConversations) ListParticipants(ctx context.Context, conversationID uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.participants[conversationID]
	if !ok {
		return nil, domain.ErrNullConversation
	}
	return p, nil
}

// testApp wires the three conference-facing services over one shared store.
type testApp struct {
	conferences   domain.ConferenceService
	rooms         domain.RoomService
	events        domain.EventService
	users         *fakeUserRepo
	email         *fakeEmailService
	conversations *fakeConversations
}

func newTestApp() *testApp {
	store := convention.NewConferenceManager()
	perms := convention.NewPermissionManager(store)
	users := newFakeUserRepo()
	email := &fakeEmailService{}
	conversations := newFakeConversations()
	logger := discardLogger()
	return &testApp{
		conferences:   NewConferenceService(store, perms, users, logger),
		rooms:         NewRoomService(store, perms, logger),
		events:        NewEventService(store, perms, conversations, users, email, logger),
		users:         users,
		email:         email,
		conversations: conversations,
	}
}

var (
	dateA = time.Date(2015, time.July, 29, 19, 30, 40, 0, time.UTC)
	dateB = time.Date(2018, time.July, 29, 19, 30, 40, 0, time.UTC)

	timeRangeA = domain.TimeRange{Start: dateA, End: dateB}
)

// slot returns [h, h+n) hours on a fixed day.
func slot(h, n int) domain.TimeRange {
	day := time.Date(2016, time.March, 1, 0, 0, 0, 0, time.UTC)
	return domain.TimeRange{
		Start: day.Add(time.Duration(h) * time.Hour),
		End:   day.Add(time.Duration(h+n) * time.Hour),
	}
}
