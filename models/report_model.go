package models

import "time"

// --- Dashboard ---

type DashboardSummary struct {
	TotalEntryMonth float64        `json:"totalEntryMonth"`
	TotalExitMonth  float64        `json:"totalExitMonth"`
	CurrentStock    float64        `json:"currentStock"`
	RevenueMonth    float64        `json:"revenueMonth"`
	StockByMaterial []StockItem    `json:"stockByMaterial"`
	MonthlyRevenue  []MonthRevenue `json:"monthlyRevenue"`
}

// StockItem is the current stock of one material: all-time intake minus
// all-time sales, clamped at zero.
type StockItem struct {
	Name     string  `json:"name"`
	WeightKg float64 `json:"weight_kg"`
	Color    string  `json:"color"`
}

// MonthRevenue is one point of the six-month revenue series.
type MonthRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// --- CSV Export ---

// SaleExportRow is one flattened sale for the tabular export. It is a
// direct per-record dump; no aggregation is re-done for it.
type SaleExportRow struct {
	Date       time.Time
	Material   string
	Subclass   string
	WeightKg   float64
	PricePerKg float64
	TotalValue float64
	BuyerName  string
}

// --- AI Insights ---

// ReportInsights is the Gemini-generated narrative for a monthly report.
type ReportInsights struct {
	Period          string    `json:"period"`
	GeneratedAt     time.Time `json:"generated_at"`
	Summary         string    `json:"summary"`
	Highlights      []string  `json:"highlights"`
	AttentionPoints []string  `json:"attention_points"`
}
