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

var validClientTypes = map[string]bool{
	"comercial":   true,
	"residencial": true,
	"industrial":  true,
}

// HandleListRoutes lists collection routes.
// GET /api/v1/routes
func HandleListRoutes(c *fiber.Ctx) error {
	rows, err := database.GetDB().Query(context.Background(), `
		SELECT id, name, day_of_week, active, created_at, updated_at
		FROM routes
		WHERE active = TRUE
		ORDER BY day_of_week, name`)
	if err != nil {
		log.Printf("Error listing routes: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve routes"})
	}
	defer rows.Close()

	routes := make([]models.Route, 0)
	for rows.Next() {
		var r models.Route
		if err := rows.Scan(&r.ID, &r.Name, &r.DayOfWeek, &r.Active, &r.CreatedAt, &r.UpdatedAt); err != nil {
			log.Printf("Error scanning route row: %v", err)
			continue
		}
		routes = append(routes, r)
	}

	return c.JSON(fiber.Map{"status": "success", "data": routes})
}

// HandleGetRouteByID fetches a route with its ordered collection points.
// GET /api/v1/routes/:routeId
func HandleGetRouteByID(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()
	routeID := c.Params("routeId")

	var r models.Route
	err := db.QueryRow(ctx, `
		SELECT id, name, day_of_week, active, created_at, updated_at
		FROM routes WHERE id = $1`, routeID).Scan(
		&r.ID, &r.Name, &r.DayOfWeek, &r.Active, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Route not found"})
		}
		log.Printf("Error fetching route %s: %v", routeID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve route"})
	}

	clients, err := fetchClientsForRoute(ctx, routeID)
	if err != nil {
		log.Printf("Error fetching clients for route %s: %v", routeID, err)
		r.Clients = []models.Client{}
	} else {
		r.Clients = clients
	}

	return c.JSON(fiber.Map{"status": "success", "data": r})
}

// HandleCreateRoute creates a collection route.
// POST /api/v1/routes
func HandleCreateRoute(c *fiber.Ctx) error {
	var req models.CreateRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Missing required field (name)"})
	}
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "day_of_week must be between 0 and 6"})
	}

	var r models.Route
	query := `
		INSERT INTO routes (id, name, day_of_week)
		VALUES ($1, $2, $3)
		RETURNING id, name, day_of_week, active, created_at, updated_at`
	err := database.GetDB().QueryRow(context.Background(), query, uuid.NewString(), req.Name, req.DayOfWeek).Scan(
		&r.ID, &r.Name, &r.DayOfWeek, &r.Active, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		log.Printf("Error creating route: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create route"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": r})
}

// HandleUpdateRoute updates a route's name, day or active flag.
// PUT /api/v1/routes/:routeId
func HandleUpdateRoute(c *fiber.Ctx) error {
	routeID := c.Params("routeId")

	var req struct {
		Name      string `json:"name"`
		DayOfWeek *int   `json:"day_of_week,omitempty"`
		Active    *bool  `json:"active,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}
	if req.DayOfWeek != nil && (*req.DayOfWeek < 0 || *req.DayOfWeek > 6) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "day_of_week must be between 0 and 6"})
	}

	var r models.Route
	query := `
		UPDATE routes
		SET name = COALESCE(NULLIF($2, ''), name),
		    day_of_week = COALESCE($3, day_of_week),
		    active = COALESCE($4, active),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, day_of_week, active, created_at, updated_at`
	err := database.GetDB().QueryRow(context.Background(), query, routeID, req.Name, req.DayOfWeek, req.Active).Scan(
		&r.ID, &r.Name, &r.DayOfWeek, &r.Active, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Route not found"})
		}
		log.Printf("Error updating route %s: %v", routeID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update route"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": r})
}

// HandleCreateClient adds a collection point to a route.
// POST /api/v1/routes/:routeId/clients
func HandleCreateClient(c *fiber.Ctx) error {
	routeID := c.Params("routeId")

	var req models.CreateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Missing required field (name)"})
	}
	if req.Type == "" {
		req.Type = "comercial"
	}
	if !validClientTypes[req.Type] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid client type"})
	}

	var cl models.Client
	query := `
		INSERT INTO clients (id, name, address, phone, type, route_id, order_in_route)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, address, phone, type, route_id, order_in_route, active, created_at, updated_at`
	err := database.GetDB().QueryRow(context.Background(), query,
		uuid.NewString(), req.Name, req.Address, req.Phone, req.Type, routeID, req.OrderInRoute,
	).Scan(&cl.ID, &cl.Name, &cl.Address, &cl.Phone, &cl.Type, &cl.RouteID, &cl.OrderInRoute, &cl.Active, &cl.CreatedAt, &cl.UpdatedAt)
	if err != nil {
		log.Printf("Error creating client on route %s: %v", routeID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create client"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": cl})
}

// HandleListClients lists the collection points of a route in visit order.
// GET /api/v1/routes/:routeId/clients
func HandleListClients(c *fiber.Ctx) error {
	routeID := c.Params("routeId")

	clients, err := fetchClientsForRoute(context.Background(), routeID)
	if err != nil {
		log.Printf("Error listing clients for route %s: %v", routeID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve clients"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": clients})
}

func fetchClientsForRoute(ctx context.Context, routeID string) ([]models.Client, error) {
	rows, err := database.GetDB().Query(ctx, `
		SELECT id, name, address, phone, type, route_id, order_in_route, active, created_at, updated_at
		FROM clients
		WHERE route_id = $1 AND active = TRUE
		ORDER BY order_in_route NULLS LAST, name`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]models.Client, 0)
	for rows.Next() {
		var cl models.Client
		if err := rows.Scan(&cl.ID, &cl.Name, &cl.Address, &cl.Phone, &cl.Type, &cl.RouteID, &cl.OrderInRoute, &cl.Active, &cl.CreatedAt, &cl.UpdatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, cl)
	}
	return clients, rows.Err()
}
