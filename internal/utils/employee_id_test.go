package utils_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/SecuForce/guard_workforce_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatEmployeeID(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	id, err := utils.FormatEmployeeID("GRD", now)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^GRD-26\d{5}$`), id)
}

func TestFormatEmployeeID_YearWraps(t *testing.T) {
	now := time.Date(2107, 1, 1, 0, 0, 0, 0, time.UTC)

	id, err := utils.FormatEmployeeID("GRD", now)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^GRD-07\d{5}$`), id)
}

func TestGenerateSecureRandomDigits(t *testing.T) {
	digits, err := utils.GenerateSecureRandomDigits(5)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{5}$`), digits)

	_, err = utils.GenerateSecureRandomDigits(0)
	assert.Error(t, err)
}
