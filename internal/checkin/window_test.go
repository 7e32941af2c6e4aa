package checkin

import (
	"context"
	"errors"
	"testing"
	"time"

	"gymdesk/internal/class"
	"gymdesk/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func madrid(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)
	return loc
}

func gymSettings(early, late int) *settings.Settings {
	return &settings.Settings{Timezone: "Europe/Madrid", EarlyWindowMinutes: early, LateWindowMinutes: late}
}

func muayThai() *class.Class {
	return &class.Class{
		ID:        7,
		Name:      "Muay Thai",
		DayOfWeek: class.Tuesday,
		StartTime: class.ClockTime{Hour: 20, Minute: 0},
		EndTime:   class.ClockTime{Hour: 21, Minute: 30},
		Active:    true,
	}
}

func TestCheckWindow_WrongDayForEveryOtherWeekday(t *testing.T) {
	loc := madrid(t)
	cfg := gymSettings(15, 40)
	c := muayThai()

	// 2024-03-03 is a Sunday.
	for i := 0; i < 7; i++ {
		now := time.Date(2024, 3, 3+i, 20, 0, 0, 0, loc)
		werr := CheckWindow(c, cfg, now)

		if now.Weekday() == time.Tuesday {
			assert.Nil(t, werr, now.Weekday().String())
			continue
		}
		require.NotNil(t, werr, now.Weekday().String())
		assert.Equal(t, KindWrongDay, werr.Kind)
		assert.Contains(t, werr.Message, "martes")
	}
}

func TestCheckWindow_Boundaries(t *testing.T) {
	loc := madrid(t)
	cfg := gymSettings(15, 40)
	c := muayThai()
	start := time.Date(2024, 3, 5, 20, 0, 0, 0, loc)

	tests := []struct {
		name string
		now  time.Time
		kind Kind
	}{
		{"opens exactly early minutes before", start.Add(-15 * time.Minute), ""},
		{"one second before opening", start.Add(-15*time.Minute - time.Second), KindTooEarly},
		{"at start", start, ""},
		{"closes exactly late minutes after", start.Add(40 * time.Minute), ""},
		{"one second after closing", start.Add(40*time.Minute + time.Second), KindTooLate},
		{"far too early", start.Add(-3 * time.Hour), KindTooEarly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			werr := CheckWindow(c, cfg, tt.now)
			if tt.kind == "" {
				assert.Nil(t, werr)
				return
			}
			require.NotNil(t, werr)
			assert.Equal(t, tt.kind, werr.Kind)
		})
	}
}

func TestCheckWindow_TooEarlyMessageNamesWindow(t *testing.T) {
	loc := madrid(t)
	werr := CheckWindow(muayThai(), gymSettings(15, 40), time.Date(2024, 3, 5, 19, 0, 0, 0, loc))

	require.NotNil(t, werr)
	assert.Equal(t, "El check-in abre 15 minutos antes del inicio de la clase", werr.Message)
}

func TestCheckWindow_MuayThaiWideLateWindow(t *testing.T) {
	loc := madrid(t)
	cfg := gymSettings(15, 180)
	c := muayThai()

	assert.Nil(t, CheckWindow(c, cfg, time.Date(2024, 3, 5, 22, 30, 0, 0, loc)))

	werr := CheckWindow(c, cfg, time.Date(2024, 3, 6, 20, 5, 0, 0, loc))
	require.NotNil(t, werr)
	assert.Equal(t, KindWrongDay, werr.Kind)
	assert.Equal(t, "Esta clase es los martes, hoy es miércoles", werr.Message)
}

func TestCheckWindow_UsesGymTimezone(t *testing.T) {
	c := muayThai()
	cfg := gymSettings(15, 40)

	// 19:10 UTC in March is 20:10 in Madrid.
	assert.Nil(t, CheckWindow(c, cfg, time.Date(2024, 3, 5, 19, 10, 0, 0, time.UTC)))

	// 23:30 UTC on Tuesday is already Wednesday in Madrid.
	werr := CheckWindow(c, cfg, time.Date(2024, 3, 5, 23, 30, 0, 0, time.UTC))
	require.NotNil(t, werr)
	assert.Equal(t, KindWrongDay, werr.Kind)
}

type MockClasses struct {
	mock.Mock
}

func (m *MockClasses) GetClass(ctx context.Context, id int) (*class.Class, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*class.Class), args.Error(1)
}

type staticSettings struct {
	s   *settings.Settings
	err error
}

func (f staticSettings) Get(context.Context) (*settings.Settings, error) { return f.s, f.err }

func TestValidator_Validate(t *testing.T) {
	loc := madrid(t)
	inWindow := time.Date(2024, 3, 5, 20, 5, 0, 0, loc)

	inactive := muayThai()
	inactive.ID = 8
	inactive.Active = false

	classes := new(MockClasses)
	classes.On("GetClass", mock.Anything, 7).Return(muayThai(), nil)
	classes.On("GetClass", mock.Anything, 8).Return(inactive, nil)
	classes.On("GetClass", mock.Anything, 9).Return(nil, class.ErrClassNotFound)
	classes.On("GetClass", mock.Anything, 10).Return(nil, errors.New("connection reset"))

	v := NewValidator(classes, staticSettings{s: gymSettings(15, 40)})

	c, err := v.Validate(context.Background(), 7, inWindow)
	require.NoError(t, err)
	assert.Equal(t, 7, c.ID)

	for _, id := range []int{8, 9} {
		_, err = v.Validate(context.Background(), id, inWindow)
		var cerr *Error
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, KindClassNotFound, cerr.Kind)
	}

	_, err = v.Validate(context.Background(), 10, inWindow)
	var cerr *Error
	assert.Error(t, err)
	assert.False(t, errors.As(err, &cerr))
}

func TestValidator_SettingsFailurePropagates(t *testing.T) {
	classes := new(MockClasses)
	classes.On("GetClass", mock.Anything, 7).Return(muayThai(), nil)
	v := NewValidator(classes, staticSettings{err: errors.New("db down")})

	_, err := v.Validate(context.Background(), 7, time.Now())

	var cerr *Error
	assert.Error(t, err)
	assert.False(t, errors.As(err, &cerr))
}
