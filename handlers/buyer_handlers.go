package handlers

import (
	"context"
	"log"

	"github.com/samiarebeca/coleta-inteligente/database"
	"github.com/samiarebeca/coleta-inteligente/models"
	"github.com/samiarebeca/coleta-inteligente/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// HandleListBuyers lists buyers with pagination.
// GET /api/v1/buyers
func HandleListBuyers(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 10)
	offset := (page - 1) * pageSize

	var total int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM buyers WHERE active = TRUE`).Scan(&total); err != nil {
		log.Printf("Error counting buyers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve buyers"})
	}

	rows, err := db.Query(ctx, `
		SELECT id, name, phone, email, COALESCE(materials_of_interest, '{}'), active, created_at, updated_at
		FROM buyers
		WHERE active = TRUE
		ORDER BY name
		LIMIT $1 OFFSET $2`, pageSize, offset)
	if err != nil {
		log.Printf("Error listing buyers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve buyers"})
	}
	defer rows.Close()

	buyers := make([]models.Buyer, 0)
	for rows.Next() {
		var b models.Buyer
		if err := rows.Scan(&b.ID, &b.Name, &b.Phone, &b.Email, &b.MaterialsOfInterest, &b.Active, &b.CreatedAt, &b.UpdatedAt); err != nil {
			log.Printf("Error scanning buyer row: %v", err)
			continue
		}
		buyers = append(buyers, b)
	}

	return c.JSON(fiber.Map{
		"status":     "success",
		"data":       buyers,
		"pagination": utils.CreatePagination(total, page, pageSize),
	})
}

// HandleGetBuyerByID fetches a single buyer.
// GET /api/v1/buyers/:buyerId
func HandleGetBuyerByID(c *fiber.Ctx) error {
	buyerID := c.Params("buyerId")

	var b models.Buyer
	query := `
		SELECT id, name, phone, email, COALESCE(materials_of_interest, '{}'), active, created_at, updated_at
		FROM buyers WHERE id = $1`
	err := database.GetDB().QueryRow(context.Background(), query, buyerID).Scan(
		&b.ID, &b.Name, &b.Phone, &b.Email, &b.MaterialsOfInterest, &b.Active, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Buyer not found"})
		}
		log.Printf("Error fetching buyer %s: %v", buyerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve buyer"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": b})
}

// HandleCreateBuyer registers a new buyer.
// POST /api/v1/buyers
func HandleCreateBuyer(c *fiber.Ctx) error {
	var req models.CreateBuyerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Missing required field (name)"})
	}
	if req.MaterialsOfInterest == nil {
		req.MaterialsOfInterest = []string{}
	}

	var b models.Buyer
	query := `
		INSERT INTO buyers (id, name, phone, email, materials_of_interest)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, phone, email, COALESCE(materials_of_interest, '{}'), active, created_at, updated_at`
	err := database.GetDB().QueryRow(context.Background(), query,
		uuid.NewString(), req.Name, req.Phone, req.Email, req.MaterialsOfInterest,
	).Scan(&b.ID, &b.Name, &b.Phone, &b.Email, &b.MaterialsOfInterest, &b.Active, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		log.Printf("Error creating buyer: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create buyer"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": b})
}

// HandleUpdateBuyer updates an existing buyer.
// PUT /api/v1/buyers/:buyerId
func HandleUpdateBuyer(c *fiber.Ctx) error {
	buyerID := c.Params("buyerId")

	var req models.CreateBuyerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}

	var b models.Buyer
	query := `
		UPDATE buyers
		SET name = COALESCE(NULLIF($2, ''), name),
		    phone = COALESCE($3, phone),
		    email = COALESCE($4, email),
		    materials_of_interest = COALESCE($5, materials_of_interest),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, phone, email, COALESCE(materials_of_interest, '{}'), active, created_at, updated_at`
	err := database.GetDB().QueryRow(context.Background(), query,
		buyerID, req.Name, req.Phone, req.Email, req.MaterialsOfInterest,
	).Scan(&b.ID, &b.Name, &b.Phone, &b.Email, &b.MaterialsOfInterest, &b.Active, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Buyer not found"})
		}
		log.Printf("Error updating buyer %s: %v", buyerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update buyer"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": b})
}

// HandleDeleteBuyer deactivates a buyer (sales keep referencing it).
// DELETE /api/v1/buyers/:buyerId
func HandleDeleteBuyer(c *fiber.Ctx) error {
	buyerID := c.Params("buyerId")

	tag, err := database.GetDB().Exec(context.Background(),
		`UPDATE buyers SET active = FALSE, updated_at = NOW() WHERE id = $1`, buyerID)
	if err != nil {
		log.Printf("Error deactivating buyer %s: %v", buyerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to delete buyer"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Buyer not found"})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Buyer deactivated"})
}
