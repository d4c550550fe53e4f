package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/samiarebeca/coleta-inteligente/database"
	"github.com/samiarebeca/coleta-inteligente/models"
	"github.com/samiarebeca/coleta-inteligente/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// HandleListUsers lists users with optional role filter and pagination.
// GET /api/v1/admin/users
func HandleListUsers(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 10)
	role := c.Query("role")
	offset := (page - 1) * pageSize

	countQuery := `SELECT COUNT(*) FROM users`
	query := `
		SELECT id, name, email, role, phone, is_active, created_at, updated_at
		FROM users
	`
	countArgs := []interface{}{}
	args := []interface{}{}

	if role != "" {
		countQuery += ` WHERE role = $1`
		query += ` WHERE role = $1`
		countArgs = append(countArgs, role)
		args = append(args, role)
	}

	var total int
	if err := db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Printf("Error counting users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve users"})
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve users"})
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Phone, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			log.Printf("Error scanning user row: %v", err)
			continue
		}
		users = append(users, u)
	}

	return c.JSON(fiber.Map{
		"status":     "success",
		"data":       users,
		"pagination": utils.CreatePagination(total, page, pageSize),
	})
}

// HandleGetUserByID fetches a single user.
// GET /api/v1/admin/users/:userId
func HandleGetUserByID(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var u models.User
	query := `
		SELECT id, name, email, role, phone, is_active, created_at, updated_at
		FROM users WHERE id = $1`
	err := database.GetDB().QueryRow(context.Background(), query, userID).Scan(
		&u.ID, &u.Name, &u.Email, &u.Role, &u.Phone, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "User not found"})
		}
		log.Printf("Error fetching user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve user"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": u})
}

// HandleUpdateUser updates a user's profile fields.
// PUT /api/v1/admin/users/:userId
func HandleUpdateUser(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var req struct {
		Name  string  `json:"name"`
		Email string  `json:"email"`
		Role  string  `json:"role"`
		Phone *string `json:"phone,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}

	if req.Role != "" {
		if _, ok := utils.ValidateAndNormalizeRole(req.Role); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid role"})
		}
	}

	var u models.User
	query := `
		UPDATE users
		SET name = COALESCE(NULLIF($2, ''), name),
		    email = COALESCE(NULLIF($3, ''), email),
		    role = COALESCE(NULLIF($4, ''), role),
		    phone = COALESCE($5, phone),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, email, role, phone, is_active, created_at, updated_at`
	err := database.GetDB().QueryRow(context.Background(), query, userID, req.Name, req.Email, req.Role, req.Phone).Scan(
		&u.ID, &u.Name, &u.Email, &u.Role, &u.Phone, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "User not found"})
		}
		log.Printf("Error updating user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update user"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": u})
}

// HandleSetUserStatus activates or deactivates a user account.
// PUT /api/v1/admin/users/:userId/status
func HandleSetUserStatus(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}

	tag, err := database.GetDB().Exec(context.Background(),
		`UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1`, userID, req.IsActive)
	if err != nil {
		log.Printf("Error setting status for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update user status"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "User not found"})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "User status updated"})
}

// HandleDeleteUser permanently removes a user.
// DELETE /api/v1/admin/users/:userId
func HandleDeleteUser(c *fiber.Ctx) error {
	userID := c.Params("userId")

	tag, err := database.GetDB().Exec(context.Background(), `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		log.Printf("Error deleting user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to delete user"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "User not found"})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "User deleted"})
}
