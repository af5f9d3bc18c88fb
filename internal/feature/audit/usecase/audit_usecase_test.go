package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountentity "account_backend/internal/feature/account/domain/entity"
	"account_backend/internal/feature/audit/domain"
	"account_backend/internal/feature/audit/domain/entity"
	"account_backend/internal/shared/pagination"
)

// mockEventRepository is a mock implementation of EventRepository.
type mockEventRepository struct {
	CreateFunc   func(event *entity.UserEvent) error
	FindByIDFunc func(id uint) (*entity.UserEvent, error)
	ListFunc     func(filter EventFilter, p pagination.Pageable) ([]entity.UserEvent, int64, error)
	CountFunc    func(filter EventFilter) (int64, error)
}

func (m *mockEventRepository) Create(_ context.Context, event *entity.UserEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(event)
	}
	event.ID = 1
	return nil
}

func (m *mockEventRepository) FindByID(_ context.Context, id uint) (*entity.UserEvent, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return nil, domain.ErrEventNotFound
}

func (m *mockEventRepository) List(_ context.Context, filter EventFilter, p pagination.Pageable) ([]entity.UserEvent, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(filter, p)
	}
	return nil, 0, nil
}

func (m *mockEventRepository) Count(_ context.Context, filter EventFilter) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(filter)
	}
	return 0, nil
}

func TestAuditUsecase_Listings(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	tests := []struct {
		name string
		call func(u *auditUsecase, p pagination.Pageable) (*pagination.Page[entity.UserEvent], error)
		want EventFilter
	}{
		{
			name: "all events",
			call: func(u *auditUsecase, p pagination.Pageable) (*pagination.Page[entity.UserEvent], error) {
				return u.ListEvents(ctx, p)
			},
			want: EventFilter{},
		},
		{
			name: "by user",
			call: func(u *auditUsecase, p pagination.Pageable) (*pagination.Page[entity.UserEvent], error) {
				return u.EventsByUser(ctx, 4, p)
			},
			want: EventFilter{UserID: ptr(uint(4))},
		},
		{
			name: "by type",
			call: func(u *auditUsecase, p pagination.Pageable) (*pagination.Page[entity.UserEvent], error) {
				return u.EventsByType(ctx, entity.EventUserDeleted, p)
			},
			want: EventFilter{Type: ptr(entity.EventUserDeleted)},
		},
		{
			name: "by date range",
			call: func(u *auditUsecase, p pagination.Pageable) (*pagination.Page[entity.UserEvent], error) {
				return u.EventsByDateRange(ctx, start, end, p)
			},
			want: EventFilter{Start: &start, End: &end},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotFilter EventFilter
			var gotPage pagination.Pageable
			repo := &mockEventRepository{ListFunc: func(f EventFilter, p pagination.Pageable) ([]entity.UserEvent, int64, error) {
				gotFilter, gotPage = f, p
				return []entity.UserEvent{{ID: 1}, {ID: 2}}, 12, nil
			}}

			page, err := tt.call(NewAuditUsecase(repo), pagination.Of(1, 2, pagination.Sort{}))
			require.NoError(t, err)
			assert.Equal(t, tt.want, gotFilter)
			assert.Equal(t, eventTimeDesc, gotPage.Sort, "default sort is newest first")
			assert.Len(t, page.Content, 2)
			assert.Equal(t, int64(12), page.TotalElements)
			assert.Equal(t, 6, page.TotalPages)
		})
	}
}

func TestAuditUsecase_EventsByFilters(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps an explicit sort", func(t *testing.T) {
		repo := &mockEventRepository{ListFunc: func(_ EventFilter, p pagination.Pageable) ([]entity.UserEvent, int64, error) {
			assert.Equal(t, pagination.Sort{Field: "id"}, p.Sort)
			return nil, 0, nil
		}}
		page, err := NewAuditUsecase(repo).EventsByFilters(ctx, EventFilter{}, pagination.Of(0, 10, pagination.Sort{Field: "id"}))
		require.NoError(t, err)
		assert.NotNil(t, page.Content)
	})

	t.Run("propagates storage errors", func(t *testing.T) {
		boom := errors.New("boom")
		repo := &mockEventRepository{ListFunc: func(EventFilter, pagination.Pageable) ([]entity.UserEvent, int64, error) {
			return nil, 0, boom
		}}
		_, err := NewAuditUsecase(repo).EventsByFilters(ctx, EventFilter{}, pagination.Of(0, 10, pagination.Sort{}))
		assert.ErrorIs(t, err, boom)
	})
}

func TestAuditUsecase_LatestForUser(t *testing.T) {
	repo := &mockEventRepository{ListFunc: func(f EventFilter, p pagination.Pageable) ([]entity.UserEvent, int64, error) {
		require.NotNil(t, f.UserID)
		assert.Equal(t, uint(9), *f.UserID)
		assert.Equal(t, pagination.Of(0, 10, eventTimeDesc), p)
		return nil, 0, nil
	}}

	events, err := NewAuditUsecase(repo).LatestForUser(context.Background(), 9)
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestAuditUsecase_GetAndCount(t *testing.T) {
	ctx := context.Background()
	repo := &mockEventRepository{
		FindByIDFunc: func(id uint) (*entity.UserEvent, error) {
			if id == 1 {
				return &entity.UserEvent{ID: 1}, nil
			}
			return nil, domain.ErrEventNotFound
		},
		CountFunc: func(f EventFilter) (int64, error) {
			if f.UserID != nil {
				return 3, nil
			}
			if f.Type != nil && *f.Type == entity.EventUserVerified {
				return 5, nil
			}
			return 0, nil
		},
	}
	uc := NewAuditUsecase(repo)

	event, err := uc.GetEvent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), event.ID)

	_, err = uc.GetEvent(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	n, err := uc.CountByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = uc.CountByType(ctx, entity.EventUserVerified)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}

func TestRecorder_Record(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.FixedZone("UTC+4", 4*3600))
	user := &accountentity.User{ID: 8, Username: "ada"}

	t.Run("stamps server time in UTC", func(t *testing.T) {
		var stored *entity.UserEvent
		repo := &mockEventRepository{CreateFunc: func(e *entity.UserEvent) error {
			stored = e
			e.ID = 42
			return nil
		}}
		rec := NewRecorder(repo, nil)
		rec.now = func() time.Time { return at }

		event, err := rec.Record(ctx, entity.EventUserRegistered, user)
		require.NoError(t, err)
		assert.Equal(t, uint(42), event.ID)
		assert.Equal(t, uint(8), stored.UserID)
		assert.Equal(t, entity.EventUserRegistered, stored.EventType)
		assert.Equal(t, time.UTC, stored.EventTime.Location())
		assert.True(t, at.Equal(stored.EventTime))
		assert.Same(t, user, event.User)
	})

	t.Run("requires a persisted user", func(t *testing.T) {
		repo := &mockEventRepository{CreateFunc: func(*entity.UserEvent) error {
			t.Fatal("must not write")
			return nil
		}}
		_, err := NewRecorder(repo, nil).Record(ctx, entity.EventUserVerified, &accountentity.User{})
		assert.Error(t, err)
		_, err = NewRecorder(repo, nil).Record(ctx, entity.EventUserVerified, nil)
		assert.Error(t, err)
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		boom := errors.New("disk full")
		repo := &mockEventRepository{CreateFunc: func(*entity.UserEvent) error { return boom }}
		_, err := NewRecorder(repo, nil).Record(ctx, entity.EventUserDeleted, user)
		assert.ErrorIs(t, err, boom)
	})
}

func ptr[T any](v T) *T {
	return &v
}
