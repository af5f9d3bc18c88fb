package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"account_backend/internal/feature/account/domain"
	"account_backend/internal/feature/account/domain/entity"
	auditentity "account_backend/internal/feature/audit/domain/entity"
	"account_backend/internal/shared/pagination"
)

// memUserRepository is an in-memory UserRepository with the same guard
// semantics as the gorm adapter.
type memUserRepository struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*entity.User

	// CreateFunc overrides Create when set.
	CreateFunc func(user *entity.User) error
}

func newMemUserRepository(users ...*entity.User) *memUserRepository {
	r := &memUserRepository{users: map[uint]*entity.User{}}
	for _, u := range users {
		if u.ID == 0 {
			u.ID = r.nextID + 1
		}
		if u.ID > r.nextID {
			r.nextID = u.ID
		}
		cp := *u
		r.users[u.ID] = &cp
	}
	return r
}

func (r *memUserRepository) get(id uint) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil
	}
	cp := *u
	return &cp
}

func (r *memUserRepository) Create(_ context.Context, user *entity.User) error {
	if r.CreateFunc != nil {
		return r.CreateFunc(user)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username || u.Phone == user.Phone {
			return domain.ErrConflict
		}
	}
	r.nextID++
	user.ID = r.nextID
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepository) FindByID(_ context.Context, id uint) (*entity.User, error) {
	if u := r.get(id); u != nil {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepository) SetVerification(_ context.Context, id uint, code string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.VerificationCode = &code
	u.VerificationCodeExpiresAt = &expiresAt
	return nil
}

func (r *memUserRepository) MarkVerified(_ context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.Enabled {
		return false, nil
	}
	u.Enabled = true
	u.VerificationCode = nil
	u.VerificationCodeExpiresAt = nil
	return true, nil
}

func (r *memUserRepository) UpdatePassword(_ context.Context, id uint, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Password = hash
	return nil
}

func (r *memUserRepository) ChangePassword(_ context.Context, id uint, hash string, limit int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.IsDeleted() || u.PasswordChangeAttempts >= limit {
		return false, nil
	}
	u.Password = hash
	u.PasswordChangeAttempts++
	return true, nil
}

func (r *memUserRepository) MarkDeleted(_ context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.IsDeleted() {
		return false, nil
	}
	u.UserStatus = entity.StatusDeleted
	return true, nil
}

func (r *memUserRepository) List(_ context.Context, filter UserFilter, p pagination.Pageable) ([]entity.User, int64, error) {
	all, _ := r.All(context.Background())
	var matched []entity.User
	for _, u := range all {
		if filter.Status != nil && u.UserStatus != *filter.Status {
			continue
		}
		if q := strings.ToLower(filter.Search); q != "" &&
			!strings.Contains(strings.ToLower(u.Username), q) &&
			!strings.Contains(strings.ToLower(u.Email), q) {
			continue
		}
		matched = append(matched, u)
	}
	if p.Sort.Field == "username" {
		sort.SliceStable(matched, func(i, j int) bool {
			if p.Sort.Desc {
				return matched[i].Username > matched[j].Username
			}
			return matched[i].Username < matched[j].Username
		})
	}
	total := int64(len(matched))
	start := p.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + p.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *memUserRepository) All(_ context.Context) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memUserRepository) Count(ctx context.Context, status *entity.UserStatus) (int64, error) {
	all, _ := r.All(ctx)
	var n int64
	for _, u := range all {
		if status == nil || u.UserStatus == *status {
			n++
		}
	}
	return n, nil
}

// mockEventRecorder collects recorded events.
type mockEventRecorder struct {
	mu     sync.Mutex
	events []auditentity.UserEvent

	// RecordFunc overrides Record when set.
	RecordFunc func(eventType auditentity.EventType, user *entity.User) error
}

func (m *mockEventRecorder) Record(_ context.Context, eventType auditentity.EventType, user *entity.User) (*auditentity.UserEvent, error) {
	if m.RecordFunc != nil {
		if err := m.RecordFunc(eventType, user); err != nil {
			return nil, err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ev := auditentity.UserEvent{
		ID:        uint(len(m.events) + 1),
		UserID:    user.ID,
		EventType: eventType,
		EventTime: time.Now(),
	}
	m.events = append(m.events, ev)
	return &ev, nil
}

func (m *mockEventRecorder) types() []auditentity.EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]auditentity.EventType, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.EventType)
	}
	return out
}

// mockUnitOfWork hands the same repositories to every callback. It does not
// roll back; tests that need rollback run against the gorm adapter.
type mockUnitOfWork struct {
	repos Repositories
	calls int
}

func (m *mockUnitOfWork) Do(_ context.Context, fn func(r Repositories) error) error {
	m.calls++
	return fn(m.repos)
}

// plainHasher prefixes passwords instead of hashing them.
type plainHasher struct{}

var errHashMismatch = errors.New("mismatch")

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hashed, password string) error {
	if hashed != "hashed:"+password {
		return errHashMismatch
	}
	return nil
}

// mockTokenGenerator is a mock implementation of TokenGenerator.
type mockTokenGenerator struct {
	GenerateTokenFunc func(userID uint, email, role, sessionID string) (string, error)
}

func (m *mockTokenGenerator) GenerateToken(userID uint, email, role, sessionID string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email, role, sessionID)
	}
	return "mock-jwt-token", nil
}

// mockMailer records delivered codes.
type mockMailer struct {
	mu   sync.Mutex
	sent []string

	SendFunc func(toEmail, code string) error
}

func (m *mockMailer) SendVerificationEmail(_ context.Context, toEmail, _ string, code string) error {
	if m.SendFunc != nil {
		return m.SendFunc(toEmail, code)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, toEmail+":"+code)
	return nil
}

// mockSessionRepository is a mock implementation of SessionRepository.
type mockSessionRepository struct {
	CreateFunc               func(session *entity.Session) error
	FindByIDFunc             func(id string) (*entity.Session, error)
	FindByUserIDFunc         func(userID uint) ([]*entity.Session, error)
	RevokeFunc               func(id string) error
	RevokeAllByUserIDFunc    func(userID uint) error
	DeleteExpiredFunc        func() (int64, error)
	CountByUserIDFunc        func(userID uint) (int64, error)
	DeleteOldestByUserIDFunc func(userID uint) error
}

func (m *mockSessionRepository) Create(_ context.Context, session *entity.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(session)
	}
	return nil
}

func (m *mockSessionRepository) FindByID(_ context.Context, id string) (*entity.Session, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return nil, ErrSessionNotFound
}

func (m *mockSessionRepository) FindByUserID(_ context.Context, userID uint) ([]*entity.Session, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(userID)
	}
	return nil, nil
}

func (m *mockSessionRepository) Revoke(_ context.Context, id string) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(id)
	}
	return nil
}

func (m *mockSessionRepository) RevokeAllByUserID(_ context.Context, userID uint) error {
	if m.RevokeAllByUserIDFunc != nil {
		return m.RevokeAllByUserIDFunc(userID)
	}
	return nil
}

func (m *mockSessionRepository) DeleteExpired(_ context.Context) (int64, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc()
	}
	return 0, nil
}

func (m *mockSessionRepository) CountByUserID(_ context.Context, userID uint) (int64, error) {
	if m.CountByUserIDFunc != nil {
		return m.CountByUserIDFunc(userID)
	}
	return 0, nil
}

func (m *mockSessionRepository) DeleteOldestByUserID(_ context.Context, userID uint) error {
	if m.DeleteOldestByUserIDFunc != nil {
		return m.DeleteOldestByUserIDFunc(userID)
	}
	return nil
}
