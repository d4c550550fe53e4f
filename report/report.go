// Package report computes the monthly report for the cooperative: revenue
// and weight totals, per-material distributions and goal progress. It is a
// pure computation over records already scoped to one calendar month; the
// data-access side lives in the handlers.
package report

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Period is a calendar month/year window.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Range returns the half-open UTC interval [monthStart, nextMonthStart)
// covering the period. Using the next month's first instant as the
// exclusive bound keeps late-evening records on the last day inside the
// window.
func (p Period) Range() (time.Time, time.Time) {
	start := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// SaleRecord is an outbound transaction as stored by the sales screens.
type SaleRecord struct {
	ID         string
	Timestamp  time.Time
	Material   string
	Subclass   string
	WeightKg   float64
	PricePerKg float64
	TotalValue float64
	BuyerID    string
}

// EntryRecord is a weighed intake as stored by the scale operators.
type EntryRecord struct {
	ID         string
	Timestamp  time.Time
	Material   string
	Subclass   string
	WeightKg   float64
	SourceType string
}

// Goal is a monthly target weight for a reporting category.
type Goal struct {
	Category string
	Month    int
	Year     int
	TargetKg float64
}

// MaterialShare is one slice of a distribution: absolute value, share of
// the total and the assigned chart color.
type MaterialShare struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

// CategoryProgress is goal attainment for one reporting category.
type CategoryProgress struct {
	Label     string  `json:"label"`
	CurrentKg float64 `json:"currentKg"`
	TargetKg  float64 `json:"targetKg"`
	Progress  float64 `json:"progress"`
	Color     string  `json:"color"`
}

// Result is the full monthly report.
type Result struct {
	Period              Period             `json:"period"`
	TotalRevenue        float64            `json:"totalRevenue"`
	TotalWeightSold     float64            `json:"totalWeightSold"`
	TotalWeightReceived float64            `json:"totalWeightReceived"`
	RevenueByMaterial   []MaterialShare    `json:"revenueByMaterial"`
	WeightByMaterial    []MaterialShare    `json:"weightByMaterial"`
	GoalsProgress       []CategoryProgress `json:"goalsProgress"`
}

// SectionIDs are the stable identifiers of the report sections the client
// captures for document export.
var SectionIDs = []string{
	"report-summary",
	"report-revenue-by-material",
	"report-weight-by-material",
	"report-goals-progress",
}

// group accumulates per-material sums under a normalized key.
type group struct {
	key      string
	display  string
	revenue  float64
	weightKg float64
}

// sanitize coerces malformed numeric fields to 0 so a report with partial
// bad data is still produced.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ComputeReport aggregates one month of sales and entries into totals,
// distributions and goal progress. The inputs are assumed already filtered
// to the period; goals are matched by category name only. Entries feed the
// received-weight headline figure, while both distributions come from
// sales. Stored total values are trusted as given, never recomputed from
// weight and price.
func ComputeReport(sales []SaleRecord, entries []EntryRecord, goals []Goal, period Period) Result {
	result := Result{
		Period:            period,
		RevenueByMaterial: []MaterialShare{},
		WeightByMaterial:  []MaterialShare{},
	}

	groups := make(map[string]*group)
	order := make([]string, 0, len(sales))

	for _, s := range sales {
		weight := sanitize(s.WeightKg)
		value := sanitize(s.TotalValue)

		result.TotalRevenue += value
		result.TotalWeightSold += weight

		key := normalizeName(s.Material)
		g, ok := groups[key]
		if !ok {
			g = &group{key: key, display: strings.TrimSpace(s.Material)}
			groups[key] = g
			order = append(order, key)
		}
		g.revenue += value
		g.weightKg += weight
	}

	for _, e := range entries {
		result.TotalWeightReceived += sanitize(e.WeightKg)
	}

	// Both views use the revenue total as the percentage base.
	result.RevenueByMaterial = buildDistribution(groups, order, result.TotalRevenue, func(g *group) float64 { return g.revenue })
	result.WeightByMaterial = buildDistribution(groups, order, result.TotalRevenue, func(g *group) float64 { return g.weightKg })
	result.GoalsProgress = resolveGoals(groups, goals)

	return result
}

// buildDistribution turns the accumulated groups into a sorted share list.
// Zero-valued groups are skipped so a material that nets to nothing never
// shows up in the legend; when the total is zero every share keeps a zero
// percentage.
func buildDistribution(groups map[string]*group, order []string, total float64, value func(*group) float64) []MaterialShare {
	shares := make([]MaterialShare, 0, len(groups))
	for _, key := range order {
		g := groups[key]
		v := value(g)
		if v == 0 {
			continue
		}
		share := MaterialShare{
			Name:  g.display,
			Value: v,
			Color: MaterialColor(g.key),
		}
		if total > 0 {
			share.Percentage = round1(100 * v / total)
		}
		shares = append(shares, share)
	}

	// Descending by value, material name breaks ties so identical inputs
	// in any order produce the same report.
	sort.SliceStable(shares, func(i, j int) bool {
		if shares[i].Value != shares[j].Value {
			return shares[i].Value > shares[j].Value
		}
		return normalizeName(shares[i].Name) < normalizeName(shares[j].Name)
	})

	return shares
}

// resolveGoals pairs each of the four categories with its summed current
// weight and the stored target. A category without a goal row keeps a zero
// target and reports zero progress, never a division by zero.
func resolveGoals(groups map[string]*group, goals []Goal) []CategoryProgress {
	progress := make([]CategoryProgress, 0, len(Categories))
	for _, cat := range Categories {
		p := CategoryProgress{Label: cat.Label, Color: cat.Color}

		// Walk the alias list rather than the map so the summation order
		// is fixed and repeated runs stay bit-identical.
		for _, alias := range cat.Aliases {
			if g, ok := groups[alias]; ok {
				p.CurrentKg += g.weightKg
			}
		}

		for _, goal := range goals {
			if cat.matchesGoalName(goal.Category) {
				p.TargetKg = sanitize(goal.TargetKg)
				break
			}
		}

		if p.TargetKg > 0 {
			p.Progress = round1(100 * p.CurrentKg / p.TargetKg)
		}

		progress = append(progress, p)
	}
	return progress
}
