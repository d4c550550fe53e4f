package handlers

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/samiarebeca/coleta-inteligente/database"
	"github.com/samiarebeca/coleta-inteligente/models"
	"github.com/samiarebeca/coleta-inteligente/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HandleCreateSale registers an outbound sale. The total value is computed
// here, once, and stored; reports sum the stored value without
// recomputing it.
// POST /api/v1/sales
func HandleCreateSale(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var req models.CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}
	if req.MaterialID == "" || req.BuyerID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Missing required fields (material_id, buyer_id)"})
	}
	if req.WeightKg <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "weight_kg must be positive"})
	}
	if req.PricePerKg < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "price_per_kg must not be negative"})
	}

	totalValue := math.Round(req.WeightKg*req.PricePerKg*100) / 100

	var s models.Sale
	query := `
		INSERT INTO sales (id, material_id, subclassification_id, weight, price_per_kg, total_value, buyer_id, user_id, observation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, material_id, subclassification_id, weight, price_per_kg, total_value, buyer_id, user_id, observation, created_at`
	err := database.GetDB().QueryRow(context.Background(), query,
		uuid.NewString(), req.MaterialID, req.SubclassificationID, req.WeightKg,
		req.PricePerKg, totalValue, req.BuyerID, userID, req.Observation,
	).Scan(&s.ID, &s.MaterialID, &s.SubclassificationID, &s.WeightKg, &s.PricePerKg,
		&s.TotalValue, &s.BuyerID, &s.UserID, &s.Observation, &s.CreatedAt)
	if err != nil {
		log.Printf("Error creating sale: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create sale"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": s})
}

// HandleListSales lists sales with period/buyer/material filters.
// GET /api/v1/sales
func HandleListSales(c *fiber.Ctx) error {
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
			where += fmt.Sprintf(" AND s.created_at >= $%d", len(args))
		}
	}
	if endDate := c.Query("endDate"); endDate != "" {
		if t, err := time.Parse("2006-01-02", endDate); err == nil {
			args = append(args, t.AddDate(0, 0, 1))
			where += fmt.Sprintf(" AND s.created_at < $%d", len(args))
		}
	}
	if buyerID := c.Query("buyerId"); buyerID != "" {
		args = append(args, buyerID)
		where += fmt.Sprintf(" AND s.buyer_id = $%d", len(args))
	}
	if materialID := c.Query("materialId"); materialID != "" {
		args = append(args, materialID)
		where += fmt.Sprintf(" AND s.material_id = $%d", len(args))
	}

	var total int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM sales s`+where, args...).Scan(&total); err != nil {
		log.Printf("Error counting sales: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve sales"})
	}

	query := `
		SELECT s.id, s.material_id, m.name, s.subclassification_id, sub.name,
		       s.weight, s.price_per_kg, s.total_value, s.buyer_id, b.name,
		       s.user_id, s.observation, s.created_at
		FROM sales s
		JOIN materials m ON m.id = s.material_id
		JOIN buyers b ON b.id = s.buyer_id
		LEFT JOIN material_subclassifications sub ON sub.id = s.subclassification_id
	` + where + fmt.Sprintf(" ORDER BY s.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error listing sales: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve sales"})
	}
	defer rows.Close()

	sales := make([]models.Sale, 0)
	for rows.Next() {
		var s models.Sale
		if err := rows.Scan(&s.ID, &s.MaterialID, &s.MaterialName, &s.SubclassificationID, &s.Subclassification,
			&s.WeightKg, &s.PricePerKg, &s.TotalValue, &s.BuyerID, &s.BuyerName,
			&s.UserID, &s.Observation, &s.CreatedAt); err != nil {
			log.Printf("Error scanning sale row: %v", err)
			continue
		}
		sales = append(sales, s)
	}

	return c.JSON(fiber.Map{
		"status":     "success",
		"data":       sales,
		"pagination": utils.CreatePagination(total, page, pageSize),
	})
}
