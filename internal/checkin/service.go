package checkin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gymdesk/internal/athlete"
	"gymdesk/internal/attendance"
	"gymdesk/internal/class"
	"gymdesk/internal/logger"
	"gymdesk/internal/metrics"
)

type AthleteLookup interface {
	GetAthlete(ctx context.Context, id int) (*athlete.Athlete, error)
	FindByPIN(ctx context.Context, pin string) (*athlete.Athlete, error)
}

type Recorder interface {
	Record(ctx context.Context, athleteID, classID int, method attendance.Method, now time.Time) (bool, error)
	UsageFor(ctx context.Context, athleteID int) (*attendance.Usage, error)
}

type Service interface {
	IssueToken(ctx context.Context, classID int) (*QRToken, error)
	// CheckInWithPin is the kiosk flow: a 4-digit PIN plus the token scanned
	// from the class QR code. Refusals come back as a Result, not an error.
	CheckInWithPin(ctx context.Context, pin, token string) (*Result, error)
	// CheckInManual is the staff flow. It skips the time window but still
	// requires an active class and an active athlete.
	CheckInManual(ctx context.Context, classID, athleteID int) (*Result, error)
}

type service struct {
	issuer    *Issuer
	validator *Validator
	athletes  AthleteLookup
	recorder  Recorder
	now       func() time.Time
}

func NewService(issuer *Issuer, validator *Validator, athletes AthleteLookup, recorder Recorder) Service {
	return &service{
		issuer:    issuer,
		validator: validator,
		athletes:  athletes,
		recorder:  recorder,
		now:       time.Now,
	}
}

func (s *service) IssueToken(ctx context.Context, classID int) (*QRToken, error) {
	c, err := s.validator.classes.GetClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	if !c.Active {
		return nil, class.ErrClassNotFound
	}

	token, expiresAt, err := s.issuer.Issue(c)
	if err != nil {
		return nil, fmt.Errorf("sign check-in token: %w", err)
	}
	metrics.RecordQRToken()

	return &QRToken{
		Token:               token,
		ClassID:             c.ID,
		ClassName:           c.Name,
		ExpiresAt:           expiresAt,
		RefreshAfterSeconds: int(RefreshAfter.Seconds()),
	}, nil
}

func (s *service) CheckInWithPin(ctx context.Context, pin, token string) (*Result, error) {
	method := attendance.MethodQRVerified

	if !athlete.ValidPIN(pin) {
		return s.refuse(method, errInvalidInput()), nil
	}

	claims, err := s.issuer.Verify(token)
	if err != nil {
		return s.refuse(method, errInvalidToken()), nil
	}

	now := s.now()
	c, err := s.validator.Validate(ctx, claims.ClassID, now)
	if r, err := s.refusal(method, err); r != nil || err != nil {
		return r, err
	}

	a, err := s.athletes.FindByPIN(ctx, pin)
	if errors.Is(err, athlete.ErrAthleteNotFound) {
		return s.refuse(method, errInvalidPin()), nil
	}
	if err != nil {
		return nil, err
	}

	return s.record(ctx, a, c.ID, method, now)
}

func (s *service) CheckInManual(ctx context.Context, classID, athleteID int) (*Result, error) {
	method := attendance.MethodManual

	c, err := s.validator.activeClass(ctx, classID)
	if r, err := s.refusal(method, err); r != nil || err != nil {
		return r, err
	}

	a, err := s.athletes.GetAthlete(ctx, athleteID)
	if errors.Is(err, athlete.ErrAthleteNotFound) {
		return s.refuse(method, errInvalidPin()), nil
	}
	if err != nil {
		return nil, err
	}

	return s.record(ctx, a, c.ID, method, s.now())
}

func (s *service) record(ctx context.Context, a *athlete.Athlete, classID int, method attendance.Method, now time.Time) (*Result, error) {
	if a.Status != athlete.StatusActive {
		return s.refuse(method, errAthleteInactive()), nil
	}

	created, err := s.recorder.Record(ctx, a.ID, classID, method, now)
	if err != nil {
		logger.Error("attendance insert failed",
			"athlete_id", a.ID,
			"class_id", classID,
			"method", method,
			"error", err,
		)
		return s.refuse(method, errStorageFailure()), nil
	}

	res := &Result{
		Success:          true,
		AthleteName:      a.FullName(),
		AlreadyCheckedIn: !created,
	}
	if created {
		res.Message = fmt.Sprintf("¡Bienvenido/a, %s!", a.FirstName)
		metrics.RecordCheckIn(string(method), "created")
		logger.Info("check-in recorded", "athlete_id", a.ID, "class_id", classID, "method", method)
	} else {
		res.Message = fmt.Sprintf("Bienvenido de nuevo, %s", a.FirstName)
		metrics.RecordCheckIn(string(method), "repeat")
	}

	usage, err := s.recorder.UsageFor(ctx, a.ID)
	if err != nil {
		logger.Warn("usage lookup failed", "athlete_id", a.ID, "error", err)
	} else {
		res.Usage = usage
	}

	return res, nil
}

// refusal splits a validator error into a refused Result or an
// infrastructure error.
func (s *service) refusal(method attendance.Method, err error) (*Result, error) {
	if err == nil {
		return nil, nil
	}
	var cerr *Error
	if errors.As(err, &cerr) {
		return s.refuse(method, cerr), nil
	}
	return nil, err
}

func (s *service) refuse(method attendance.Method, e *Error) *Result {
	metrics.RecordCheckIn(string(method), string(e.Kind))
	return refused(e)
}
