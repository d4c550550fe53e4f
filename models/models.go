package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// --- JWT & Auth ---

type JwtClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type RegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	Phone    *string `json:"phone,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --- Core Models ---

// Buyer purchases sorted material from the cooperative.
type Buyer struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Phone               *string   `json:"phone,omitempty"`
	Email               *string   `json:"email,omitempty"`
	MaterialsOfInterest []string  `json:"materials_of_interest"`
	Active              bool      `json:"active"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Material is a recyclable material type handled by the cooperative.
type Material struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Icon       string    `json:"icon"`
	Color      string    `json:"color"`
	PricePerKg float64   `json:"price_per_kg"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MaterialSubclassification refines a material (e.g. PET Cristal under PET)
// with a price modifier applied at registration time.
type MaterialSubclassification struct {
	ID            string    `json:"id"`
	MaterialID    string    `json:"material_id"`
	Name          string    `json:"name"`
	PriceModifier float64   `json:"price_modifier"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

// Route is a recurring collection route.
type Route struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	DayOfWeek int       `json:"day_of_week"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Clients   []Client  `json:"clients,omitempty"`
}

// Client is a collection point visited along a route.
type Client struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Address      *string   `json:"address,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	Type         string    `json:"type"`
	RouteID      *string   `json:"route_id,omitempty"`
	OrderInRoute *int      `json:"order_in_route,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RouteCollection is one driver run of a route on a given date.
type RouteCollection struct {
	ID             string                  `json:"id"`
	RouteID        string                  `json:"route_id"`
	UserID         *string                 `json:"user_id,omitempty"`
	CollectionDate time.Time               `json:"collection_date"`
	StartedAt      *time.Time              `json:"started_at,omitempty"`
	FinishedAt     *time.Time              `json:"finished_at,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	Points         []CollectionPointStatus `json:"points,omitempty"`
}

// CollectionPointStatus tracks one collection point within a run.
type CollectionPointStatus struct {
	ID                string     `json:"id"`
	RouteCollectionID string     `json:"route_collection_id"`
	ClientID          string     `json:"client_id"`
	ClientName        *string    `json:"client_name,omitempty"`
	Status            string     `json:"status"`
	Observation       *string    `json:"observation,omitempty"`
	CollectedAt       *time.Time `json:"collected_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Entry is a weighed intake of material registered at the scale.
type Entry struct {
	ID                  string    `json:"id"`
	MaterialID          string    `json:"material_id"`
	MaterialName        *string   `json:"material_name,omitempty"`
	SubclassificationID *string   `json:"subclassification_id,omitempty"`
	Subclassification   *string   `json:"subclassification,omitempty"`
	WeightKg            float64   `json:"weight_kg"`
	OriginType          string    `json:"origin_type"`
	ClientID            *string   `json:"client_id,omitempty"`
	RouteID             *string   `json:"route_id,omitempty"`
	UserID              string    `json:"user_id"`
	Observation         *string   `json:"observation,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// Sale is an outbound transaction to a buyer. TotalValue is computed once
// at registration and stored; reporting sums it as-is.
type Sale struct {
	ID                  string    `json:"id"`
	MaterialID          string    `json:"material_id"`
	MaterialName        *string   `json:"material_name,omitempty"`
	SubclassificationID *string   `json:"subclassification_id,omitempty"`
	Subclassification   *string   `json:"subclassification,omitempty"`
	WeightKg            float64   `json:"weight_kg"`
	PricePerKg          float64   `json:"price_per_kg"`
	TotalValue          float64   `json:"total_value"`
	BuyerID             string    `json:"buyer_id"`
	BuyerName           *string   `json:"buyer_name,omitempty"`
	UserID              string    `json:"user_id"`
	Observation         *string   `json:"observation,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// Goal is a monthly target weight for a reporting category.
type Goal struct {
	ID             string    `json:"id"`
	CategoryName   string    `json:"category_name"`
	Month          int       `json:"month"`
	Year           int       `json:"year"`
	TargetWeightKg float64   `json:"target_weight_kg"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// --- API Request Structs ---

type CreateBuyerRequest struct {
	Name                string   `json:"name"`
	Phone               *string  `json:"phone,omitempty"`
	Email               *string  `json:"email,omitempty"`
	MaterialsOfInterest []string `json:"materials_of_interest"`
}

type CreateMaterialRequest struct {
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Icon       string  `json:"icon"`
	Color      string  `json:"color"`
	PricePerKg float64 `json:"price_per_kg"`
}

type CreateSubclassificationRequest struct {
	Name          string  `json:"name"`
	PriceModifier float64 `json:"price_modifier"`
}

type CreateRouteRequest struct {
	Name      string `json:"name"`
	DayOfWeek int    `json:"day_of_week"`
}

type CreateClientRequest struct {
	Name         string  `json:"name"`
	Address      *string `json:"address,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Type         string  `json:"type"`
	RouteID      *string `json:"route_id,omitempty"`
	OrderInRoute *int    `json:"order_in_route,omitempty"`
}

type CreateEntryRequest struct {
	MaterialID          string  `json:"material_id"`
	SubclassificationID *string `json:"subclassification_id,omitempty"`
	WeightKg            float64 `json:"weight_kg"`
	OriginType          string  `json:"origin_type"`
	ClientID            *string `json:"client_id,omitempty"`
	RouteID             *string `json:"route_id,omitempty"`
	Observation         *string `json:"observation,omitempty"`
}

type CreateSaleRequest struct {
	MaterialID          string  `json:"material_id"`
	SubclassificationID *string `json:"subclassification_id,omitempty"`
	WeightKg            float64 `json:"weight_kg"`
	PricePerKg          float64 `json:"price_per_kg"`
	BuyerID             string  `json:"buyer_id"`
	Observation         *string `json:"observation,omitempty"`
}

type UpsertGoalRequest struct {
	CategoryName   string  `json:"category_name"`
	Month          int     `json:"month"`
	Year           int     `json:"year"`
	TargetWeightKg float64 `json:"target_weight_kg"`
}

type UpdatePointStatusRequest struct {
	Status      string  `json:"status"`
	Observation *string `json:"observation,omitempty"`
}
