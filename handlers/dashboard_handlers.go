package handlers

import (
	"context"
	"log"
	"time"

	"github.com/samiarebeca/coleta-inteligente/database"
	"github.com/samiarebeca/coleta-inteligente/models"
	"github.com/samiarebeca/coleta-inteligente/report"

	"github.com/gofiber/fiber/v2"
)

var monthLabels = []string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// HandleGetDashboardSummary fetches the admin dashboard headline figures:
// current-month intake/sold/revenue, all-time stock per material and a
// six-month revenue series.
// GET /api/v1/admin/dashboard/summary
func HandleGetDashboardSummary(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	now := time.Now().UTC()
	period := report.Period{Month: int(now.Month()), Year: now.Year()}
	monthStart, nextMonthStart := period.Range()

	var summary models.DashboardSummary

	// 1. Current-month totals
	err := db.QueryRow(ctx, `
		SELECT COALESCE(SUM(weight), 0)
		FROM entries
		WHERE created_at >= $1 AND created_at < $2`, monthStart, nextMonthStart).Scan(&summary.TotalEntryMonth)
	if err != nil {
		log.Printf("Error fetching month entry total: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch dashboard summary"})
	}

	err = db.QueryRow(ctx, `
		SELECT COALESCE(SUM(weight), 0), COALESCE(SUM(total_value), 0)
		FROM sales
		WHERE created_at >= $1 AND created_at < $2`, monthStart, nextMonthStart).Scan(&summary.TotalExitMonth, &summary.RevenueMonth)
	if err != nil {
		log.Printf("Error fetching month sales totals: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch dashboard summary"})
	}

	// 2. All-time stock per material: intake minus sales, clamped at zero
	rows, err := db.Query(ctx, `
		SELECT m.name,
		       COALESCE(e.total_in, 0) - COALESCE(s.total_out, 0) AS stock
		FROM materials m
		LEFT JOIN (SELECT material_id, SUM(weight) AS total_in FROM entries GROUP BY material_id) e ON e.material_id = m.id
		LEFT JOIN (SELECT material_id, SUM(weight) AS total_out FROM sales GROUP BY material_id) s ON s.material_id = m.id
		WHERE m.active = TRUE
		ORDER BY m.name`)
	if err != nil {
		log.Printf("Error fetching stock by material: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch dashboard summary"})
	}
	defer rows.Close()

	stock := []models.StockItem{}
	for rows.Next() {
		var item models.StockItem
		if err := rows.Scan(&item.Name, &item.WeightKg); err != nil {
			log.Printf("Error scanning stock row: %v", err)
			continue
		}
		if item.WeightKg <= 0 {
			continue
		}
		item.Color = report.MaterialColor(item.Name)
		stock = append(stock, item)
		summary.CurrentStock += item.WeightKg
	}
	summary.StockByMaterial = stock

	// 3. Six-month revenue series, oldest first
	series := make([]models.MonthRevenue, 0, 6)
	for i := 5; i >= 0; i-- {
		monthDate := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		p := report.Period{Month: int(monthDate.Month()), Year: monthDate.Year()}
		start, end := p.Range()

		var revenue float64
		if err := db.QueryRow(ctx, `
			SELECT COALESCE(SUM(total_value), 0)
			FROM sales
			WHERE created_at >= $1 AND created_at < $2`, start, end).Scan(&revenue); err != nil {
			log.Printf("Error fetching revenue for %d/%d: %v", p.Month, p.Year, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch dashboard summary"})
		}
		series = append(series, models.MonthRevenue{Month: monthLabels[p.Month-1], Revenue: revenue})
	}
	summary.MonthlyRevenue = series

	return c.JSON(fiber.Map{"status": "success", "data": summary})
}
