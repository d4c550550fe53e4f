package handlers

import (
	"context"
	"log"
	"time"

	"github.com/samiarebeca/coleta-inteligente/database"
	"github.com/samiarebeca/coleta-inteligente/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HandleListGoals lists the goals for a month/year (defaults to current).
// GET /api/v1/admin/goals
func HandleListGoals(c *fiber.Ctx) error {
	now := time.Now()
	month := c.QueryInt("month", int(now.Month()))
	year := c.QueryInt("year", now.Year())

	rows, err := database.GetDB().Query(context.Background(), `
		SELECT id, category_name, month, year, target_weight_kg, created_at, updated_at
		FROM goals
		WHERE month = $1 AND year = $2
		ORDER BY category_name`, month, year)
	if err != nil {
		log.Printf("Error listing goals for %d/%d: %v", month, year, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve goals"})
	}
	defer rows.Close()

	goals := make([]models.Goal, 0)
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.CategoryName, &g.Month, &g.Year, &g.TargetWeightKg, &g.CreatedAt, &g.UpdatedAt); err != nil {
			log.Printf("Error scanning goal row: %v", err)
			continue
		}
		goals = append(goals, g)
	}

	return c.JSON(fiber.Map{"status": "success", "data": goals})
}

// HandleUpsertGoal creates or replaces the target for a category/month/year.
// POST /api/v1/admin/goals
func HandleUpsertGoal(c *fiber.Ctx) error {
	var req models.UpsertGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}
	if req.CategoryName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Missing required field (category_name)"})
	}
	if req.Month < 1 || req.Month > 12 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "month must be between 1 and 12"})
	}
	if req.TargetWeightKg < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "target_weight_kg must not be negative"})
	}

	var g models.Goal
	query := `
		INSERT INTO goals (id, category_name, month, year, target_weight_kg)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (category_name, month, year)
		DO UPDATE SET target_weight_kg = EXCLUDED.target_weight_kg, updated_at = NOW()
		RETURNING id, category_name, month, year, target_weight_kg, created_at, updated_at`
	err := database.GetDB().QueryRow(context.Background(), query,
		uuid.NewString(), req.CategoryName, req.Month, req.Year, req.TargetWeightKg,
	).Scan(&g.ID, &g.CategoryName, &g.Month, &g.Year, &g.TargetWeightKg, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		log.Printf("Error upserting goal %s %d/%d: %v", req.CategoryName, req.Month, req.Year, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to save goal"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": g})
}

// HandleDeleteGoal removes a goal.
// DELETE /api/v1/admin/goals/:goalId
func HandleDeleteGoal(c *fiber.Ctx) error {
	goalID := c.Params("goalId")

	tag, err := database.GetDB().Exec(context.Background(), `DELETE FROM goals WHERE id = $1`, goalID)
	if err != nil {
		log.Printf("Error deleting goal %s: %v", goalID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to delete goal"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Goal not found"})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Goal deleted"})
}
