package handlers

import (
	"context"
	"log"
	"time"

	"github.com/samiarebeca/coleta-inteligente/database"
	"github.com/samiarebeca/coleta-inteligente/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var validPointStatuses = map[string]bool{
	"pendente":     true,
	"realizado":    true,
	"nao_coletado": true,
}

// HandleStartRouteCollection starts a driver run for a route: creates the
// route_collections row and seeds a pending status for every active point.
// POST /api/v1/collections
func HandleStartRouteCollection(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	userID, _ := c.Locals("userID").(string)

	var req struct {
		RouteID        string `json:"route_id"`
		CollectionDate string `json:"collection_date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}
	if req.RouteID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Missing required field (route_id)"})
	}

	collectionDate := time.Now().UTC()
	if req.CollectionDate != "" {
		parsed, err := time.Parse("2006-01-02", req.CollectionDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid collection_date format (expected YYYY-MM-DD)"})
		}
		collectionDate = parsed
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to start transaction"})
	}
	defer tx.Rollback(ctx)

	var collection models.RouteCollection
	err = tx.QueryRow(ctx, `
		INSERT INTO route_collections (id, route_id, user_id, collection_date, started_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, route_id, user_id, collection_date, started_at, finished_at, created_at`,
		uuid.NewString(), req.RouteID, userID, collectionDate,
	).Scan(&collection.ID, &collection.RouteID, &collection.UserID, &collection.CollectionDate,
		&collection.StartedAt, &collection.FinishedAt, &collection.CreatedAt)
	if err != nil {
		log.Printf("Error starting collection for route %s: %v", req.RouteID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to start route collection"})
	}

	clientRows, err := tx.Query(ctx, `SELECT id FROM clients WHERE route_id = $1 AND active = TRUE`, req.RouteID)
	if err != nil {
		log.Printf("Error fetching clients for route %s: %v", req.RouteID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to start route collection"})
	}
	clientIDs := make([]string, 0)
	for clientRows.Next() {
		var id string
		if err := clientRows.Scan(&id); err != nil {
			clientRows.Close()
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to start route collection"})
		}
		clientIDs = append(clientIDs, id)
	}
	clientRows.Close()

	for _, clientID := range clientIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO collection_point_status (id, route_collection_id, client_id)
			VALUES ($1, $2, $3)`, uuid.NewString(), collection.ID, clientID); err != nil {
			log.Printf("Error seeding point status for client %s: %v", clientID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to start route collection"})
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to commit transaction"})
	}

	points, err := fetchCollectionPoints(ctx, collection.ID)
	if err != nil {
		log.Printf("Error fetching points for collection %s: %v", collection.ID, err)
		collection.Points = []models.CollectionPointStatus{}
	} else {
		collection.Points = points
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": collection})
}

// HandleUpdatePointStatus marks one collection point within a run.
// PUT /api/v1/collections/:collectionId/points/:pointId
func HandleUpdatePointStatus(c *fiber.Ctx) error {
	collectionID := c.Params("collectionId")
	pointID := c.Params("pointId")

	var req models.UpdatePointStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}
	if !validPointStatuses[req.Status] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid status"})
	}

	var p models.CollectionPointStatus
	query := `
		UPDATE collection_point_status
		SET status = $3,
		    observation = COALESCE($4, observation),
		    collected_at = CASE WHEN $3 = 'realizado' THEN NOW() ELSE collected_at END,
		    updated_at = NOW()
		WHERE id = $2 AND route_collection_id = $1
		RETURNING id, route_collection_id, client_id, status, observation, collected_at, created_at, updated_at`
	err := database.GetDB().QueryRow(context.Background(), query, collectionID, pointID, req.Status, req.Observation).Scan(
		&p.ID, &p.RouteCollectionID, &p.ClientID, &p.Status, &p.Observation, &p.CollectedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Collection point not found"})
		}
		log.Printf("Error updating point %s in collection %s: %v", pointID, collectionID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update collection point"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": p})
}

// HandleFinishRouteCollection closes a driver run.
// PUT /api/v1/collections/:collectionId/finish
func HandleFinishRouteCollection(c *fiber.Ctx) error {
	collectionID := c.Params("collectionId")

	var collection models.RouteCollection
	query := `
		UPDATE route_collections
		SET finished_at = NOW()
		WHERE id = $1 AND finished_at IS NULL
		RETURNING id, route_id, user_id, collection_date, started_at, finished_at, created_at`
	err := database.GetDB().QueryRow(context.Background(), query, collectionID).Scan(
		&collection.ID, &collection.RouteID, &collection.UserID, &collection.CollectionDate,
		&collection.StartedAt, &collection.FinishedAt, &collection.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Collection not found or already finished"})
		}
		log.Printf("Error finishing collection %s: %v", collectionID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to finish route collection"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": collection})
}

// HandleListMyCollections lists the caller's runs, most recent first.
// GET /api/v1/collections
func HandleListMyCollections(c *fiber.Ctx) error {
	ctx := context.Background()
	userID, _ := c.Locals("userID").(string)

	rows, err := database.GetDB().Query(ctx, `
		SELECT id, route_id, user_id, collection_date, started_at, finished_at, created_at
		FROM route_collections
		WHERE user_id = $1
		ORDER BY collection_date DESC, created_at DESC
		LIMIT 50`, userID)
	if err != nil {
		log.Printf("Error listing collections for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve collections"})
	}
	defer rows.Close()

	collections := make([]models.RouteCollection, 0)
	for rows.Next() {
		var rc models.RouteCollection
		if err := rows.Scan(&rc.ID, &rc.RouteID, &rc.UserID, &rc.CollectionDate, &rc.StartedAt, &rc.FinishedAt, &rc.CreatedAt); err != nil {
			log.Printf("Error scanning collection row: %v", err)
			continue
		}
		collections = append(collections, rc)
	}

	return c.JSON(fiber.Map{"status": "success", "data": collections})
}

func fetchCollectionPoints(ctx context.Context, collectionID string) ([]models.CollectionPointStatus, error) {
	rows, err := database.GetDB().Query(ctx, `
		SELECT cps.id, cps.route_collection_id, cps.client_id, cl.name, cps.status,
		       cps.observation, cps.collected_at, cps.created_at, cps.updated_at
		FROM collection_point_status cps
		JOIN clients cl ON cl.id = cps.client_id
		WHERE cps.route_collection_id = $1
		ORDER BY cl.order_in_route NULLS LAST, cl.name`, collectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := make([]models.CollectionPointStatus, 0)
	for rows.Next() {
		var p models.CollectionPointStatus
		if err := rows.Scan(&p.ID, &p.RouteCollectionID, &p.ClientID, &p.ClientName, &p.Status,
			&p.Observation, &p.CollectedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
