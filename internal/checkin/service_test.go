package checkin

import (
	"context"
	"errors"
	"testing"
	"time"

	"gymdesk/internal/athlete"
	"gymdesk/internal/attendance"
	"gymdesk/internal/class"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAthletes struct {
	mock.Mock
}

func (m *MockAthletes) GetAthlete(ctx context.Context, id int) (*athlete.Athlete, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*athlete.Athlete), args.Error(1)
}

func (m *MockAthletes) FindByPIN(ctx context.Context, pin string) (*athlete.Athlete, error) {
	args := m.Called(ctx, pin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*athlete.Athlete), args.Error(1)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, athleteID, classID int, method attendance.Method, now time.Time) (bool, error) {
	args := m.Called(ctx, athleteID, classID, method, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecorder) UsageFor(ctx context.Context, athleteID int) (*attendance.Usage, error) {
	args := m.Called(ctx, athleteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attendance.Usage), args.Error(1)
}

type fixture struct {
	svc      *service
	classes  *MockClasses
	athletes *MockAthletes
	recorder *MockRecorder
	now      time.Time
}

func newFixture(t *testing.T, late int, now time.Time) *fixture {
	t.Helper()
	f := &fixture{
		classes:  new(MockClasses),
		athletes: new(MockAthletes),
		recorder: new(MockRecorder),
		now:      now,
	}

	issuer, err := NewIssuer("test-checkin-secret")
	require.NoError(t, err)
	issuer.now = func() time.Time { return f.now }

	validator := NewValidator(f.classes, staticSettings{s: gymSettings(15, late)})
	f.svc = NewService(issuer, validator, f.athletes, f.recorder).(*service)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f *fixture) token(t *testing.T, c *class.Class) string {
	t.Helper()
	tok, _, err := f.svc.issuer.Issue(c)
	require.NoError(t, err)
	return tok
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

func lucia() *athlete.Athlete {
	return &athlete.Athlete{ID: 1, FirstName: "Lucía", LastName: "García", PIN: strPtr("1234"), Status: athlete.StatusActive}
}

func TestService_CheckInWithPin_FirstThenRepeat(t *testing.T) {
	f := newFixture(t, 40, time.Date(2024, 3, 5, 20, 5, 0, 0, madrid(t)))
	f.classes.On("GetClass", mock.Anything, 7).Return(muayThai(), nil)
	f.athletes.On("FindByPIN", mock.Anything, "1234").Return(lucia(), nil)
	f.recorder.On("Record", mock.Anything, 1, 7, attendance.MethodQRVerified, f.now).Return(true, nil).Once()
	f.recorder.On("Record", mock.Anything, 1, 7, attendance.MethodQRVerified, f.now).Return(false, nil).Once()
	f.recorder.On("UsageFor", mock.Anything, 1).Return(&attendance.Usage{WeeklyUsed: 1}, nil)
	tok := f.token(t, muayThai())

	first, err := f.svc.CheckInWithPin(context.Background(), "1234", tok)
	require.NoError(t, err)
	assert.True(t, first.Success)
	assert.False(t, first.AlreadyCheckedIn)
	assert.Equal(t, "¡Bienvenido/a, Lucía!", first.Message)
	assert.Equal(t, "Lucía García", first.AthleteName)
	assert.Equal(t, 1, first.Usage.WeeklyUsed)

	second, err := f.svc.CheckInWithPin(context.Background(), "1234", tok)
	require.NoError(t, err)
	assert.True(t, second.Success)
	assert.True(t, second.AlreadyCheckedIn)
	assert.Equal(t, "Bienvenido de nuevo, Lucía", second.Message)

	f.recorder.AssertNumberOfCalls(t, "Record", 2)
}

func TestService_CheckInWithPin_UnknownPinUsesGenericMessage(t *testing.T) {
	f := newFixture(t, 40, time.Date(2024, 3, 5, 20, 5, 0, 0, madrid(t)))
	f.classes.On("GetClass", mock.Anything, 7).Return(muayThai(), nil)
	f.athletes.On("FindByPIN", mock.Anything, "9999").Return(nil, athlete.ErrAthleteNotFound)
	f.athletes.On("GetAthlete", mock.Anything, 42).Return(nil, athlete.ErrAthleteNotFound)

	byPin, err := f.svc.CheckInWithPin(context.Background(), "9999", f.token(t, muayThai()))
	require.NoError(t, err)
	assert.False(t, byPin.Success)
	assert.Equal(t, KindInvalidPin, byPin.Kind)

	byID, err := f.svc.CheckInManual(context.Background(), 7, 42)
	require.NoError(t, err)
	assert.Equal(t, byPin.Message, byID.Message)
	f.recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CheckInWithPin_Refusals(t *testing.T) {
	loc := madrid(t)
	inWindow := time.Date(2024, 3, 5, 20, 5, 0, 0, loc)

	tests := []struct {
		name  string
		now   time.Time
		pin   string
		token func(f *fixture) string
		kind  Kind
	}{
		{
			name:  "short pin",
			now:   inWindow,
			pin:   "123",
			token: func(f *fixture) string { return f.token(t, muayThai()) },
			kind:  KindInvalidInput,
		},
		{
			name:  "letters in pin",
			now:   inWindow,
			pin:   "12a4",
			token: func(f *fixture) string { return f.token(t, muayThai()) },
			kind:  KindInvalidInput,
		},
		{
			name:  "bad token",
			now:   inWindow,
			pin:   "1234",
			token: func(*fixture) string { return "nope" },
			kind:  KindInvalidToken,
		},
		{
			name: "expired token",
			now:  inWindow,
			pin:  "1234",
			token: func(f *fixture) string {
				f.now = inWindow.Add(-2 * time.Minute)
				tok := f.token(t, muayThai())
				f.now = inWindow
				return tok
			},
			kind: KindInvalidToken,
		},
		{
			name:  "wrong day",
			now:   time.Date(2024, 3, 6, 20, 5, 0, 0, loc),
			pin:   "1234",
			token: func(f *fixture) string { return f.token(t, muayThai()) },
			kind:  KindWrongDay,
		},
		{
			name:  "too early",
			now:   time.Date(2024, 3, 5, 19, 0, 0, 0, loc),
			pin:   "1234",
			token: func(f *fixture) string { return f.token(t, muayThai()) },
			kind:  KindTooEarly,
		},
		{
			name:  "too late",
			now:   time.Date(2024, 3, 5, 21, 0, 0, 0, loc),
			pin:   "1234",
			token: func(f *fixture) string { return f.token(t, muayThai()) },
			kind:  KindTooLate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 40, tt.now)
			f.classes.On("GetClass", mock.Anything, 7).Return(muayThai(), nil)

			res, err := f.svc.CheckInWithPin(context.Background(), tt.pin, tt.token(f))

			require.NoError(t, err)
			assert.False(t, res.Success)
			assert.Equal(t, tt.kind, res.Kind)
			assert.NotEmpty(t, res.Message)
			f.athletes.AssertNotCalled(t, "FindByPIN", mock.Anything, mock.Anything)
		})
	}
}

func TestService_CheckInWithPin_MuayThaiLateWindow(t *testing.T) {
	f := newFixture(t, 180, time.Date(2024, 3, 5, 22, 30, 0, 0, madrid(t)))
	f.classes.On("GetClass", mock.Anything, 7).Return(muayThai(), nil)
	f.athletes.On("FindByPIN", mock.Anything, "1234").Return(lucia(), nil)
	f.recorder.On("Record", mock.Anything, 1, 7, attendance.MethodQRVerified, f.now).Return(true, nil)
	f.recorder.On("UsageFor", mock.Anything, 1).Return(&attendance.Usage{WeeklyUsed: 1}, nil)

	res, err := f.svc.CheckInWithPin(context.Background(), "1234", f.token(t, muayThai()))

	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestService_CheckInWithPin_InactiveAthlete(t *testing.T) {
	f := newFixture(t, 40, time.Date(2024, 3, 5, 20, 5, 0, 0, madrid(t)))
	suspended := lucia()
	suspended.Status = athlete.StatusSuspended
	f.classes.On("GetClass", mock.Anything, 7).Return(muayThai(), nil)
	f.athletes.On("FindByPIN", mock.Anything, "1234").Return(suspended, nil)

	res, err := f.svc.CheckInWithPin(context.Background(), "1234", f.token(t, muayThai()))

	require.NoError(t, err)
	assert.Equal(t, KindAthleteInactive, res.Kind)
	f.recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CheckInWithPin_StorageFailure(t *testing.T) {
	f := newFixture(t, 40, time.Date(2024, 3, 5, 20, 5, 0, 0, madrid(t)))
	f.classes.On("GetClass", mock.Anything, 7).Return(muayThai(), nil)
	f.athletes.On("FindByPIN", mock.Anything, "1234").Return(lucia(), nil)
	f.recorder.On("Record", mock.Anything, 1, 7, attendance.MethodQRVerified, f.now).Return(false, errors.New("deadlock detected"))

	res, err := f.svc.CheckInWithPin(context.Background(), "1234", f.token(t, muayThai()))

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, KindStorageFailure, res.Kind)
	assert.NotContains(t, res.Message, "deadlock")
}

func TestService_CheckInWithPin_OverWeeklyLimitStillSucceeds(t *testing.T) {
	f := newFixture(t, 40, time.Date(2024, 3, 5, 20, 5, 0, 0, madrid(t)))
	f.classes.On("GetClass", mock.Anything, 7).Return(muayThai(), nil)
	f.athletes.On("FindByPIN", mock.Anything, "1234").Return(lucia(), nil)
	f.recorder.On("Record", mock.Anything, 1, 7, attendance.MethodQRVerified, f.now).Return(true, nil)
	f.recorder.On("UsageFor", mock.Anything, 1).Return(&attendance.Usage{
		WeeklyUsed: 4, WeeklyLimit: intPtr(3), LimitReached: true,
	}, nil)

	res, err := f.svc.CheckInWithPin(context.Background(), "1234", f.token(t, muayThai()))

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, res.Usage.LimitReached)
}

func TestService_CheckInWithPin_LookupFailurePropagates(t *testing.T) {
	f := newFixture(t, 40, time.Date(2024, 3, 5, 20, 5, 0, 0, madrid(t)))
	f.classes.On("GetClass", mock.Anything, 7).Return(muayThai(), nil)
	f.athletes.On("FindByPIN", mock.Anything, "1234").Return(nil, errors.New("connection refused"))

	res, err := f.svc.CheckInWithPin(context.Background(), "1234", f.token(t, muayThai()))

	assert.Error(t, err)
	assert.Nil(t, res)
}

func TestService_CheckInManual_IgnoresWindow(t *testing.T) {
	// Thursday morning, nowhere near Tuesday's class.
	f := newFixture(t, 40, time.Date(2024, 3, 7, 9, 0, 0, 0, madrid(t)))
	f.classes.On("GetClass", mock.Anything, 7).Return(muayThai(), nil)
	f.athletes.On("GetAthlete", mock.Anything, 1).Return(lucia(), nil)
	f.recorder.On("Record", mock.Anything, 1, 7, attendance.MethodManual, f.now).Return(true, nil)
	f.recorder.On("UsageFor", mock.Anything, 1).Return(nil, errors.New("redis down"))

	res, err := f.svc.CheckInManual(context.Background(), 7, 1)

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Nil(t, res.Usage)
}

func TestService_CheckInManual_InactiveClass(t *testing.T) {
	f := newFixture(t, 40, time.Date(2024, 3, 5, 20, 5, 0, 0, madrid(t)))
	c := muayThai()
	c.Active = false
	f.classes.On("GetClass", mock.Anything, 7).Return(c, nil)

	res, err := f.svc.CheckInManual(context.Background(), 7, 1)

	require.NoError(t, err)
	assert.Equal(t, KindClassNotFound, res.Kind)
}

func TestService_IssueToken(t *testing.T) {
	f := newFixture(t, 40, time.Date(2024, 3, 5, 19, 50, 0, 0, time.UTC))
	inactive := muayThai()
	inactive.ID = 8
	inactive.Active = false
	f.classes.On("GetClass", mock.Anything, 7).Return(muayThai(), nil)
	f.classes.On("GetClass", mock.Anything, 8).Return(inactive, nil)

	tok, err := f.svc.IssueToken(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 25, tok.RefreshAfterSeconds)
	assert.Equal(t, f.now.Add(TokenTTL), tok.ExpiresAt)

	claims, err := f.svc.issuer.Verify(tok.Token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.ClassID)

	_, err = f.svc.IssueToken(context.Background(), 8)
	assert.ErrorIs(t, err, class.ErrClassNotFound)
}
