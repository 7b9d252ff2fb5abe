package model

import "time"

// DateOf отбрасывает время суток, оставляя календарную дату в UTC
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate сравнивает календарные даты. nil не совпадает ни с чем
func SameDate(a *time.Time, b time.Time) bool {
	if a == nil {
		return false
	}
	return DateOf(*a).Equal(DateOf(b))
}
