package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateInLocation(t *testing.T) {
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	date, err := ParseDateInLocation("2024-03-10", saoPaulo)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, saoPaulo), date)

	date, err = ParseDateInLocation("2024-03-10", nil)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, date.Location())

	_, err = ParseDateInLocation("10/03/2024", time.UTC)
	assert.Error(t, err)
}

func TestEndOfDayAndFirstDayOfMonth(t *testing.T) {
	date := time.Date(2024, 2, 29, 13, 45, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 999999999, time.UTC), EndOfDay(date))
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), FirstDayOfMonth(date))
}

func TestStartOfDay_MidnightDaylightSaving(t *testing.T) {
	// Em 2018-11-04 a meia-noite não existe em São Paulo
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	start := StartOfDay(2018, time.November, 4, saoPaulo)
	assert.Equal(t, 4, start.Day())
	assert.Equal(t, 1, start.Hour())

	date, err := ParseDateInLocation("2018-11-04", saoPaulo)
	require.NoError(t, err)
	assert.True(t, start.Equal(date))

	assert.Equal(t, time.Date(2018, 11, 5, 0, 0, 0, 0, saoPaulo), StartOfDay(2018, time.November, 5, saoPaulo))
}
