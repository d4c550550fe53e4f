package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/samiarebeca/coleta-inteligente/report"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func periodFromQuery(t *testing.T, query string) (report.Period, int) {
	t.Helper()

	var parsed report.Period
	app := fiber.New()
	app.Get("/report", func(c *fiber.Ctx) error {
		period, err := parseReportPeriod(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
		}
		parsed = period
		return c.SendStatus(200)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/report"+query, nil))
	if err != nil {
		t.Fatalf("app test error: %v", err)
	}
	return parsed, resp.StatusCode
}

func TestParseReportPeriod(t *testing.T) {
	period, status := periodFromQuery(t, "?month=6&year=2025")
	assert.Equal(t, 200, status)
	assert.Equal(t, report.Period{Month: 6, Year: 2025}, period)
}

func TestParseReportPeriodRejectsBadMonth(t *testing.T) {
	_, status := periodFromQuery(t, "?month=13&year=2025")
	assert.Equal(t, 400, status)

	_, status = periodFromQuery(t, "?month=0&year=2025")
	assert.Equal(t, 400, status)
}

func TestParseReportPeriodRejectsBadYear(t *testing.T) {
	_, status := periodFromQuery(t, "?month=6&year=1999")
	assert.Equal(t, 400, status)
}

func TestParseReportPeriodDefaultsToCurrentMonth(t *testing.T) {
	period, status := periodFromQuery(t, "")
	assert.Equal(t, 200, status)
	assert.True(t, period.Month >= 1 && period.Month <= 12)
	assert.True(t, period.Year >= 2000)
}
