package checkin

import (
	"fmt"

	"gymdesk/internal/class"
)

// Kind classifies why a check-in was refused. A repeat check-in is not a
// failure and has no kind.
type Kind string

const (
	KindInvalidInput    Kind = "INVALID_INPUT"
	KindInvalidToken    Kind = "INVALID_TOKEN"
	KindClassNotFound   Kind = "CLASS_NOT_FOUND"
	KindWrongDay        Kind = "WRONG_DAY"
	KindTooEarly        Kind = "TOO_EARLY"
	KindTooLate         Kind = "TOO_LATE"
	KindInvalidPin      Kind = "INVALID_PIN"
	KindAthleteInactive Kind = "ATHLETE_INACTIVE"
	KindStorageFailure  Kind = "STORAGE_FAILURE"
)

// Error is a refused check-in with the message shown at the kiosk.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

func errInvalidInput() *Error {
	return &Error{Kind: KindInvalidInput, Message: "El PIN debe tener 4 dígitos"}
}

func errInvalidToken() *Error {
	return &Error{Kind: KindInvalidToken, Message: "Código QR inválido o expirado"}
}

func errClassNotFound() *Error {
	return &Error{Kind: KindClassNotFound, Message: "La clase no existe"}
}

func errWrongDay(classDay, today class.Weekday) *Error {
	return &Error{
		Kind:    KindWrongDay,
		Message: fmt.Sprintf("Esta clase es los %s, hoy es %s", classDay.Label(), today.Label()),
	}
}

func errTooEarly(early int) *Error {
	return &Error{
		Kind:    KindTooEarly,
		Message: fmt.Sprintf("El check-in abre %d minutos antes del inicio de la clase", early),
	}
}

func errTooLate() *Error {
	return &Error{Kind: KindTooLate, Message: "El tiempo para hacer check-in ha expirado"}
}

// Unknown PIN and unknown athlete share this message.
func errInvalidPin() *Error {
	return &Error{Kind: KindInvalidPin, Message: "PIN incorrecto o atleta no encontrado"}
}

func errAthleteInactive() *Error {
	return &Error{Kind: KindAthleteInactive, Message: "Tu cuenta está inactiva, contacta con el staff"}
}

func errStorageFailure() *Error {
	return &Error{Kind: KindStorageFailure, Message: "Error al registrar la asistencia, inténtalo de nuevo"}
}
