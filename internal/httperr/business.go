package httperr

import "errors"

const (
	CodeInvalidInterval     = "invalid_interval"
	CodeInvalidDate         = "invalid_date"
	CodeSlotConflict        = "slot_conflict"
	CodeSlotUnavailable     = "slot_unavailable"
	CodeMonthOutOfRange     = "month_out_of_range"
	CodeAppointmentNotFound = "appointment_not_found"
	CodeClientNotFound      = "client_not_found"
	CodeInvalidPhone        = "invalid_phone"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extracts the code of a wrapped BusinessError.
func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}
