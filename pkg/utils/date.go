package utils

import "time"

// EndOfDay retorna o último instante representável do dia de date
func EndOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), date.Location())
}

func FirstDayOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// StartOfDay devolve o primeiro instante válido do dia civil em loc. Onde o horário
// de verão começa à meia-noite, o dia começa à 01:00.
func StartOfDay(year int, month time.Month, day int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}

	start := time.Date(year, month, day, 0, 0, 0, 0, loc)
	for hour := 1; start.Day() != day && hour < 24; hour++ {
		start = time.Date(year, month, day, hour, 0, 0, 0, loc)
	}
	return start
}

// ParseDateInLocation interpreta YYYY-MM-DD como o início do dia no fuso informado
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	civil, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return StartOfDay(civil.Year(), civil.Month(), civil.Day(), loc), nil
}
