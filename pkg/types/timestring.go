package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeFormat формат времени HH:MM
const TimeFormat = "15:04"

var ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")

// TimeString время в формате "HH:MM" без даты и секунд.
// Используется для границ окна бронирования и хранится в колонках TIME.
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывает дату и секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString парсит строку "HH:MM" в TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(TimeFormat, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return NewTimeString(t), nil
}

// String возвращает строковое представление "HH:MM"
func (ts TimeString) String() string {
	return string(ts)
}

// toTime парсит TimeString во внутреннее time.Time для сравнений
func (ts TimeString) toTime() (time.Time, error) {
	t, err := time.Parse(TimeFormat, string(ts))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return t, nil
}

// IsBefore возвращает true, если ts строго раньше other.
// Некорректные значения считаются "не раньше" - валидация выполняется выше.
func (ts TimeString) IsBefore(other TimeString) bool {
	a, err := ts.toTime()
	if err != nil {
		return false
	}
	b, err := other.toTime()
	if err != nil {
		return false
	}
	return a.Before(b)
}

// IsAfter возвращает true, если ts строго позже other
func (ts TimeString) IsAfter(other TimeString) bool {
	a, err := ts.toTime()
	if err != nil {
		return false
	}
	b, err := other.toTime()
	if err != nil {
		return false
	}
	return a.After(b)
}

// AddMinutes возвращает новый TimeString со сдвигом на minutes минут вперед
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	t, err := ts.toTime()
	if err != nil {
		return "", err
	}
	return NewTimeString(t.Add(time.Duration(minutes) * time.Minute)), nil
}

// Scan реализует sql.Scanner для чтения из колонок TIME
func (ts *TimeString) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*ts = ""
		return nil
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	case []byte:
		return ts.scanString(string(v))
	case string:
		return ts.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, value)
	}
}

func (ts *TimeString) scanString(s string) error {
	// Колонки TIME приходят как "HH:MM:SS" - отбрасываем секунды
	if len(s) > 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// Value реализует driver.Valuer для записи в колонки TIME
func (ts TimeString) Value() (driver.Value, error) {
	if ts == "" {
		return nil, nil
	}
	if _, err := ts.toTime(); err != nil {
		return nil, err
	}
	return string(ts), nil
}
