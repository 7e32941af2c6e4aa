package athlete

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, a *Athlete) (*Athlete, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Athlete), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, a *Athlete) (*Athlete, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Athlete), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int) (*Athlete, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Athlete), args.Error(1)
}

func (m *MockRepository) GetByPIN(ctx context.Context, pin string) (*Athlete, error) {
	args := m.Called(ctx, pin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Athlete), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter ListFilter) ([]Athlete, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Athlete), args.Error(1)
}

func (m *MockRepository) SetStatus(ctx context.Context, id int, status Status) (*Athlete, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Athlete), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestService_CreateAthlete(t *testing.T) {
	t.Run("normalizes input", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(a *Athlete) bool {
			return a.FirstName == "Lucía" &&
				a.Email == nil &&
				*a.PIN == "1234" &&
				len(a.Tags) == 2 && a.Tags[0] == "competidor" && a.Tags[1] == "bjj"
		})).Return(&Athlete{ID: 1, FirstName: "Lucía", PIN: strPtr("1234")}, nil)

		a, err := NewService(repo).CreateAthlete(context.Background(), AthleteRequest{
			FirstName: "  Lucía ",
			Email:     strPtr("  "),
			PIN:       strPtr("1234"),
			Tags:      []string{"Competidor", " ", "BJJ"},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, a.ID)
		repo.AssertExpectations(t)
	})

	t.Run("tags default to empty array", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(a *Athlete) bool {
			return a.Tags != nil && len(a.Tags) == 0 && a.PIN == nil
		})).Return(&Athlete{ID: 2}, nil)

		_, err := NewService(repo).CreateAthlete(context.Background(), AthleteRequest{FirstName: "Ana"})

		require.NoError(t, err)
	})

	t.Run("rejects malformed pin before storage", func(t *testing.T) {
		repo := new(MockRepository)

		_, err := NewService(repo).CreateAthlete(context.Background(), AthleteRequest{FirstName: "Ana", PIN: strPtr("12a4")})

		assert.ErrorIs(t, err, ErrInvalidPIN)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("pin collision", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", mock.Anything, mock.Anything).
			Return(nil, &pq.Error{Code: "23505", Constraint: pinConstraint})

		_, err := NewService(repo).CreateAthlete(context.Background(), AthleteRequest{FirstName: "Ana", PIN: strPtr("1234")})

		assert.ErrorIs(t, err, ErrPINTaken)
	})
}

func TestService_UpdateAthlete(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil, sql.ErrNoRows)

		_, err := NewService(repo).UpdateAthlete(context.Background(), 5, AthleteRequest{FirstName: "Ana"})

		assert.ErrorIs(t, err, ErrAthleteNotFound)
	})

	t.Run("sets id", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(a *Athlete) bool { return a.ID == 5 })).
			Return(&Athlete{ID: 5}, nil)

		a, err := NewService(repo).UpdateAthlete(context.Background(), 5, AthleteRequest{FirstName: "Ana"})

		require.NoError(t, err)
		assert.Equal(t, 5, a.ID)
	})
}

func TestService_GetAthlete(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, 1).Return(nil, sql.ErrNoRows)
	repo.On("GetByID", mock.Anything, 2).Return(nil, errors.New("timeout"))
	svc := NewService(repo)

	_, err := svc.GetAthlete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrAthleteNotFound)

	_, err = svc.GetAthlete(context.Background(), 2)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrAthleteNotFound)
}

func TestService_FindByPIN(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByPIN", mock.Anything, "1234").Return(&Athlete{ID: 1, FirstName: "Lucía", PIN: strPtr("1234")}, nil)
	repo.On("GetByPIN", mock.Anything, "9999").Return(nil, sql.ErrNoRows)
	svc := NewService(repo)

	a, err := svc.FindByPIN(context.Background(), "1234")
	require.NoError(t, err)
	assert.Equal(t, 1, a.ID)

	_, err = svc.FindByPIN(context.Background(), "9999")
	assert.ErrorIs(t, err, ErrAthleteNotFound)

	_, err = svc.FindByPIN(context.Background(), "12a4")
	assert.ErrorIs(t, err, ErrAthleteNotFound)
	repo.AssertNotCalled(t, "GetByPIN", mock.Anything, "12a4")
}

func TestService_SetStatus(t *testing.T) {
	repo := new(MockRepository)
	repo.On("SetStatus", mock.Anything, 3, StatusInactive).Return(&Athlete{ID: 3, Status: StatusInactive}, nil)
	svc := NewService(repo)

	a, err := svc.SetStatus(context.Background(), 3, StatusInactive)
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, a.Status)

	_, err = svc.SetStatus(context.Background(), 3, Status("BANNED"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_ListAthletes(t *testing.T) {
	repo := new(MockRepository)
	repo.On("List", mock.Anything, ListFilter{Status: StatusActive, Tag: "kids"}).Return([]Athlete{{ID: 1}}, nil)
	svc := NewService(repo)

	athletes, err := svc.ListAthletes(context.Background(), ListFilter{Status: StatusActive, Tag: " Kids "})
	require.NoError(t, err)
	assert.Len(t, athletes, 1)

	_, err = svc.ListAthletes(context.Background(), ListFilter{Status: "GONE"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestAthlete_FullName(t *testing.T) {
	assert.Equal(t, "Lucía Pérez", (&Athlete{FirstName: "Lucía", LastName: "Pérez"}).FullName())
	assert.Equal(t, "Lucía", (&Athlete{FirstName: "Lucía"}).FullName())
}
