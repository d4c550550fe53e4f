package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/samiarebeca/coleta-inteligente/database"
	"github.com/samiarebeca/coleta-inteligente/models"
	"github.com/samiarebeca/coleta-inteligente/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validOriginTypes = map[string]bool{
	"cliente":        true,
	"catador_avulso": true,
}

// HandleCreateEntry registers a weighed intake.
// POST /api/v1/entries
func HandleCreateEntry(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var req models.CreateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}
	if req.MaterialID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Missing required field (material_id)"})
	}
	if req.WeightKg <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "weight_kg must be positive"})
	}
	if req.OriginType == "" {
		req.OriginType = "cliente"
	}
	if !validOriginTypes[req.OriginType] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid origin_type"})
	}

	var e models.Entry
	query := `
		INSERT INTO entries (id, material_id, subclassification_id, weight, origin_type, client_id, route_id, user_id, observation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, material_id, subclassification_id, weight, origin_type, client_id, route_id, user_id, observation, created_at`
	err := database.GetDB().QueryRow(context.Background(), query,
		uuid.NewString(), req.MaterialID, req.SubclassificationID, req.WeightKg,
		req.OriginType, req.ClientID, req.RouteID, userID, req.Observation,
	).Scan(&e.ID, &e.MaterialID, &e.SubclassificationID, &e.WeightKg, &e.OriginType,
		&e.ClientID, &e.RouteID, &e.UserID, &e.Observation, &e.CreatedAt)
	if err != nil {
		log.Printf("Error creating entry: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create entry"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": e})
}

// HandleListEntries lists entries with period/material/origin filters.
// GET /api/v1/entries
func HandleListEntries(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 10)
	offset := (page - 1) * pageSize

	where := ` WHERE 1=1`
	args := []interface{}{}

	if startDate := c.Query("startDate"); startDate != "" {
		if t, err := time.Parse("2006-01-02", startDate); err == nil {
			args = append(args, t)
			where += fmt.Sprintf(" AND e.created_at >= $%d", len(args))
		}
	}
	if endDate := c.Query("endDate"); endDate != "" {
		// The end bound is exclusive of the next day so the whole last
		// day is covered.
		if t, err := time.Parse("2006-01-02", endDate); err == nil {
			args = append(args, t.AddDate(0, 0, 1))
			where += fmt.Sprintf(" AND e.created_at < $%d", len(args))
		}
	}
	if materialID := c.Query("materialId"); materialID != "" {
		args = append(args, materialID)
		where += fmt.Sprintf(" AND e.material_id = $%d", len(args))
	}
	if originType := c.Query("originType"); originType != "" {
		args = append(args, originType)
		where += fmt.Sprintf(" AND e.origin_type = $%d", len(args))
	}

	var total int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM entries e`+where, args...).Scan(&total); err != nil {
		log.Printf("Error counting entries: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve entries"})
	}

	query := `
		SELECT e.id, e.material_id, m.name, e.subclassification_id, sub.name,
		       e.weight, e.origin_type, e.client_id, e.route_id, e.user_id, e.observation, e.created_at
		FROM entries e
		JOIN materials m ON m.id = e.material_id
		LEFT JOIN material_subclassifications sub ON sub.id = e.subclassification_id
	` + where + fmt.Sprintf(" ORDER BY e.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error listing entries: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve entries"})
	}
	defer rows.Close()

	entries := make([]models.Entry, 0)
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.ID, &e.MaterialID, &e.MaterialName, &e.SubclassificationID, &e.Subclassification,
			&e.WeightKg, &e.OriginType, &e.ClientID, &e.RouteID, &e.UserID, &e.Observation, &e.CreatedAt); err != nil {
			log.Printf("Error scanning entry row: %v", err)
			continue
		}
		entries = append(entries, e)
	}

	return c.JSON(fiber.Map{
		"status":     "success",
		"data":       entries,
		"pagination": utils.CreatePagination(total, page, pageSize),
	})
}

// HandleDeleteEntry removes an entry. Operators may only delete their own;
// admins may delete any.
// DELETE /api/v1/entries/:entryId
func HandleDeleteEntry(c *fiber.Ctx) error {
	entryID := c.Params("entryId")
	userID, _ := c.Locals("userID").(string)
	role, _ := c.Locals("userRole").(string)

	query := `DELETE FROM entries WHERE id = $1`
	args := []interface{}{entryID}
	if role != utils.RoleAdmin {
		query += ` AND user_id = $2`
		args = append(args, userID)
	}

	tag, err := database.GetDB().Exec(context.Background(), query, args...)
	if err != nil {
		log.Printf("Error deleting entry %s: %v", entryID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to delete entry"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Entry not found"})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Entry deleted"})
}
