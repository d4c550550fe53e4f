package handlers

import (
	"context"
	"log"
	"time"

	"github.com/samiarebeca/coleta-inteligente/database"
	"github.com/samiarebeca/coleta-inteligente/report"

	"github.com/gofiber/fiber/v2"
)

// parseReportPeriod reads month/year query parameters, defaulting to the
// current month.
func parseReportPeriod(c *fiber.Ctx) (report.Period, error) {
	now := time.Now().UTC()
	month := c.QueryInt("month", int(now.Month()))
	year := c.QueryInt("year", now.Year())

	if month < 1 || month > 12 {
		return report.Period{}, fiber.NewError(fiber.StatusBadRequest, "month must be between 1 and 12")
	}
	if year < 2000 || year > 2100 {
		return report.Period{}, fiber.NewError(fiber.StatusBadRequest, "year out of range")
	}
	return report.Period{Month: month, Year: year}, nil
}

// HandleGetMonthlyReport computes the monthly report for a period.
// GET /api/v1/admin/reports/monthly
func HandleGetMonthlyReport(c *fiber.Ctx) error {
	period, err := parseReportPeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	ctx := context.Background()
	start, end := period.Range()

	sales, err := fetchSalesForPeriod(ctx, start, end)
	if err != nil {
		log.Printf("Error fetching sales for %d/%d: %v", period.Month, period.Year, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch sales for report"})
	}

	entries, err := fetchEntriesForPeriod(ctx, start, end)
	if err != nil {
		log.Printf("Error fetching entries for %d/%d: %v", period.Month, period.Year, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch entries for report"})
	}

	goals, err := fetchGoalsForPeriod(ctx, period.Month, period.Year)
	if err != nil {
		log.Printf("Error fetching goals for %d/%d: %v", period.Month, period.Year, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch goals for report"})
	}

	result := report.ComputeReport(sales, entries, goals, period)

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"report":   result,
			"sections": report.SectionIDs,
		},
	})
}

// fetchSalesForPeriod loads the sales of [start, end) with material,
// subclassification and buyer names resolved.
func fetchSalesForPeriod(ctx context.Context, start, end time.Time) ([]report.SaleRecord, error) {
	rows, err := database.GetDB().Query(ctx, `
		SELECT s.id, s.created_at, m.name, COALESCE(sub.name, ''),
		       s.weight, s.price_per_kg, s.total_value, s.buyer_id
		FROM sales s
		JOIN materials m ON m.id = s.material_id
		LEFT JOIN material_subclassifications sub ON sub.id = s.subclassification_id
		WHERE s.created_at >= $1 AND s.created_at < $2
		ORDER BY s.created_at`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := make([]report.SaleRecord, 0)
	for rows.Next() {
		var s report.SaleRecord
		if err := rows.Scan(&s.ID, &s.Timestamp, &s.Material, &s.Subclass,
			&s.WeightKg, &s.PricePerKg, &s.TotalValue, &s.BuyerID); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

// fetchEntriesForPeriod loads the entries of [start, end).
func fetchEntriesForPeriod(ctx context.Context, start, end time.Time) ([]report.EntryRecord, error) {
	rows, err := database.GetDB().Query(ctx, `
		SELECT e.id, e.created_at, m.name, COALESCE(sub.name, ''), e.weight, e.origin_type
		FROM entries e
		JOIN materials m ON m.id = e.material_id
		LEFT JOIN material_subclassifications sub ON sub.id = e.subclassification_id
		WHERE e.created_at >= $1 AND e.created_at < $2
		ORDER BY e.created_at`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]report.EntryRecord, 0)
	for rows.Next() {
		var e report.EntryRecord
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Material, &e.Subclass, &e.WeightKg, &e.SourceType); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// fetchGoalsForPeriod loads the goal rows of a month/year.
func fetchGoalsForPeriod(ctx context.Context, month, year int) ([]report.Goal, error) {
	rows, err := database.GetDB().Query(ctx, `
		SELECT category_name, month, year, target_weight_kg
		FROM goals
		WHERE month = $1 AND year = $2`, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := make([]report.Goal, 0)
	for rows.Next() {
		var g report.Goal
		if err := rows.Scan(&g.Category, &g.Month, &g.Year, &g.TargetKg); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}
