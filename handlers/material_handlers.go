package handlers

import (
	"context"
	"log"

	"github.com/samiarebeca/coleta-inteligente/database"
	"github.com/samiarebeca/coleta-inteligente/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var validMaterialCategories = map[string]bool{
	"papel":    true,
	"plastico": true,
	"metal":    true,
	"vidro":    true,
}

// HandleListMaterials lists materials, active ones by default.
// GET /api/v1/materials
func HandleListMaterials(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	query := `
		SELECT id, name, category, icon, color, price_per_kg, active, created_at, updated_at
		FROM materials
	`
	if !c.QueryBool("includeInactive", false) {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY category, name`

	rows, err := db.Query(ctx, query)
	if err != nil {
		log.Printf("Error listing materials: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve materials"})
	}
	defer rows.Close()

	materials := make([]models.Material, 0)
	for rows.Next() {
		var m models.Material
		if err := rows.Scan(&m.ID, &m.Name, &m.Category, &m.Icon, &m.Color, &m.PricePerKg, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
			log.Printf("Error scanning material row: %v", err)
			continue
		}
		materials = append(materials, m)
	}

	return c.JSON(fiber.Map{"status": "success", "data": materials})
}

// HandleGetMaterialByID fetches a single material.
// GET /api/v1/materials/:materialId
func HandleGetMaterialByID(c *fiber.Ctx) error {
	materialID := c.Params("materialId")

	var m models.Material
	query := `
		SELECT id, name, category, icon, color, price_per_kg, active, created_at, updated_at
		FROM materials WHERE id = $1`
	err := database.GetDB().QueryRow(context.Background(), query, materialID).Scan(
		&m.ID, &m.Name, &m.Category, &m.Icon, &m.Color, &m.PricePerKg, &m.Active, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Material not found"})
		}
		log.Printf("Error fetching material %s: %v", materialID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve material"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": m})
}

// HandleCreateMaterial adds a new material to the catalog.
// POST /api/v1/materials
func HandleCreateMaterial(c *fiber.Ctx) error {
	var req models.CreateMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}

	if req.Name == "" || req.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Missing required fields (name, category)"})
	}
	if !validMaterialCategories[req.Category] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid category"})
	}
	if req.Icon == "" {
		req.Icon = "recycling"
	}
	if req.Color == "" {
		req.Color = "#9ca3af"
	}

	var m models.Material
	query := `
		INSERT INTO materials (id, name, category, icon, color, price_per_kg)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, category, icon, color, price_per_kg, active, created_at, updated_at`
	err := database.GetDB().QueryRow(context.Background(), query,
		uuid.NewString(), req.Name, req.Category, req.Icon, req.Color, req.PricePerKg,
	).Scan(&m.ID, &m.Name, &m.Category, &m.Icon, &m.Color, &m.PricePerKg, &m.Active, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		log.Printf("Error creating material: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create material"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": m})
}

// HandleUpdateMaterial updates an existing material.
// PUT /api/v1/materials/:materialId
func HandleUpdateMaterial(c *fiber.Ctx) error {
	materialID := c.Params("materialId")

	var req models.CreateMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}
	if req.Category != "" && !validMaterialCategories[req.Category] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid category"})
	}

	var m models.Material
	query := `
		UPDATE materials
		SET name = COALESCE(NULLIF($2, ''), name),
		    category = COALESCE(NULLIF($3, ''), category),
		    icon = COALESCE(NULLIF($4, ''), icon),
		    color = COALESCE(NULLIF($5, ''), color),
		    price_per_kg = CASE WHEN $6 > 0 THEN $6 ELSE price_per_kg END,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, category, icon, color, price_per_kg, active, created_at, updated_at`
	err := database.GetDB().QueryRow(context.Background(), query,
		materialID, req.Name, req.Category, req.Icon, req.Color, req.PricePerKg,
	).Scan(&m.ID, &m.Name, &m.Category, &m.Icon, &m.Color, &m.PricePerKg, &m.Active, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Material not found"})
		}
		log.Printf("Error updating material %s: %v", materialID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update material"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": m})
}

// HandleDeleteMaterial deactivates a material. Entries and sales keep
// referencing it, so this is a soft delete.
// DELETE /api/v1/materials/:materialId
func HandleDeleteMaterial(c *fiber.Ctx) error {
	materialID := c.Params("materialId")

	tag, err := database.GetDB().Exec(context.Background(),
		`UPDATE materials SET active = FALSE, updated_at = NOW() WHERE id = $1`, materialID)
	if err != nil {
		log.Printf("Error deactivating material %s: %v", materialID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to delete material"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Material not found"})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Material deactivated"})
}

// HandleListSubclassifications lists the subclassifications of a material.
// GET /api/v1/materials/:materialId/subclassifications
func HandleListSubclassifications(c *fiber.Ctx) error {
	materialID := c.Params("materialId")

	rows, err := database.GetDB().Query(context.Background(), `
		SELECT id, material_id, name, price_modifier, active, created_at
		FROM material_subclassifications
		WHERE material_id = $1 AND active = TRUE
		ORDER BY name`, materialID)
	if err != nil {
		log.Printf("Error listing subclassifications for material %s: %v", materialID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve subclassifications"})
	}
	defer rows.Close()

	subs := make([]models.MaterialSubclassification, 0)
	for rows.Next() {
		var s models.MaterialSubclassification
		if err := rows.Scan(&s.ID, &s.MaterialID, &s.Name, &s.PriceModifier, &s.Active, &s.CreatedAt); err != nil {
			log.Printf("Error scanning subclassification row: %v", err)
			continue
		}
		subs = append(subs, s)
	}

	return c.JSON(fiber.Map{"status": "success", "data": subs})
}

// HandleCreateSubclassification adds a subclassification under a material.
// POST /api/v1/materials/:materialId/subclassifications
func HandleCreateSubclassification(c *fiber.Ctx) error {
	materialID := c.Params("materialId")

	var req models.CreateSubclassificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Missing required field (name)"})
	}
	if req.PriceModifier <= 0 {
		req.PriceModifier = 1.0
	}

	var s models.MaterialSubclassification
	query := `
		INSERT INTO material_subclassifications (id, material_id, name, price_modifier)
		VALUES ($1, $2, $3, $4)
		RETURNING id, material_id, name, price_modifier, active, created_at`
	err := database.GetDB().QueryRow(context.Background(), query,
		uuid.NewString(), materialID, req.Name, req.PriceModifier,
	).Scan(&s.ID, &s.MaterialID, &s.Name, &s.PriceModifier, &s.Active, &s.CreatedAt)
	if err != nil {
		log.Printf("Error creating subclassification for material %s: %v", materialID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create subclassification"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": s})
}
