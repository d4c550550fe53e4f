package report

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
	"time"
)

func saleOf(material string, weightKg, totalValue float64) SaleRecord {
	return SaleRecord{
		Material:   material,
		WeightKg:   weightKg,
		TotalValue: totalValue,
		Timestamp:  time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
	}
}

func metalProgress(t *testing.T, r Result) CategoryProgress {
	t.Helper()
	for _, p := range r.GoalsProgress {
		if p.Label == "Metal" {
			return p
		}
	}
	t.Fatalf("no Metal entry in goals progress: %+v", r.GoalsProgress)
	return CategoryProgress{}
}

func TestComputeReportExampleMonth(t *testing.T) {
	sales := []SaleRecord{
		saleOf("PET", 100, 120),
		saleOf("Alumínio", 50, 250),
	}
	goals := []Goal{{Category: "Metal", Month: 6, Year: 2025, TargetKg: 200}}

	r := ComputeReport(sales, nil, goals, Period{Month: 6, Year: 2025})

	if r.TotalRevenue != 370 {
		t.Fatalf("total revenue = %v; want 370", r.TotalRevenue)
	}
	if r.TotalWeightSold != 150 {
		t.Fatalf("total weight sold = %v; want 150", r.TotalWeightSold)
	}

	if len(r.RevenueByMaterial) != 2 {
		t.Fatalf("revenue list has %d entries; want 2", len(r.RevenueByMaterial))
	}
	if r.RevenueByMaterial[0].Name != "Alumínio" || r.RevenueByMaterial[0].Value != 250 {
		t.Fatalf("revenue[0] = %+v; want Alumínio with 250", r.RevenueByMaterial[0])
	}
	if r.RevenueByMaterial[0].Percentage != 67.6 || r.RevenueByMaterial[1].Percentage != 32.4 {
		t.Fatalf("revenue percentages = %v, %v; want 67.6, 32.4",
			r.RevenueByMaterial[0].Percentage, r.RevenueByMaterial[1].Percentage)
	}

	// The weight list sorts by weight but keeps revenue as percentage base.
	if r.WeightByMaterial[0].Name != "PET" || r.WeightByMaterial[0].Value != 100 {
		t.Fatalf("weight[0] = %+v; want PET with 100", r.WeightByMaterial[0])
	}
	if r.WeightByMaterial[0].Percentage != 27.0 || r.WeightByMaterial[1].Percentage != 13.5 {
		t.Fatalf("weight percentages = %v, %v; want 27.0, 13.5",
			r.WeightByMaterial[0].Percentage, r.WeightByMaterial[1].Percentage)
	}

	metal := metalProgress(t, r)
	if metal.CurrentKg != 50 || metal.TargetKg != 200 || metal.Progress != 25 {
		t.Fatalf("metal progress = %+v; want current 50, target 200, progress 25", metal)
	}
	for _, p := range r.GoalsProgress {
		if p.Label == "Metal" {
			continue
		}
		if p.TargetKg != 0 || p.Progress != 0 {
			t.Fatalf("category without a goal reported progress: %+v", p)
		}
	}
}

func TestComputeReportRevenuePercentagesSumTo100(t *testing.T) {
	sales := []SaleRecord{
		saleOf("Papelão", 33.3, 17.77),
		saleOf("PET", 12.1, 41.03),
		saleOf("Vidro", 250, 75.5),
		saleOf("Cobre", 3.7, 99.99),
		saleOf("Jornal", 18, 5.46),
	}

	r := ComputeReport(sales, nil, nil, Period{Month: 3, Year: 2025})

	sum := 0.0
	for _, share := range r.RevenueByMaterial {
		sum += share.Percentage
	}
	if math.Abs(sum-100) > 0.1 {
		t.Fatalf("revenue percentages sum to %v; want 100 ± 0.1", sum)
	}
}

func TestComputeReportEmptyInputs(t *testing.T) {
	r := ComputeReport(nil, nil, nil, Period{Month: 1, Year: 2025})

	if r.TotalRevenue != 0 || r.TotalWeightSold != 0 || r.TotalWeightReceived != 0 {
		t.Fatalf("expected zero totals, got %+v", r)
	}
	if r.RevenueByMaterial == nil || len(r.RevenueByMaterial) != 0 {
		t.Fatalf("expected empty revenue list, got %v", r.RevenueByMaterial)
	}
	if r.WeightByMaterial == nil || len(r.WeightByMaterial) != 0 {
		t.Fatalf("expected empty weight list, got %v", r.WeightByMaterial)
	}

	// The four fixed categories always show up, all at zero.
	if len(r.GoalsProgress) != len(Categories) {
		t.Fatalf("goals progress has %d entries; want %d", len(r.GoalsProgress), len(Categories))
	}
	for _, p := range r.GoalsProgress {
		if p.CurrentKg != 0 || p.TargetKg != 0 || p.Progress != 0 {
			t.Fatalf("expected zeroed progress, got %+v", p)
		}
	}
}

func TestComputeReportDeterministic(t *testing.T) {
	sales := []SaleRecord{
		saleOf("PET", 10.1, 12.34),
		saleOf("Vidro", 20.2, 56.78),
		saleOf("pet", 30.3, 90.12),
		saleOf("Alumínio", 40.4, 34.56),
	}
	entries := []EntryRecord{
		{Material: "Papelão", WeightKg: 77.7},
		{Material: "Vidro", WeightKg: 11.1},
	}
	goals := []Goal{
		{Category: "plastico", TargetKg: 100},
		{Category: "vidro", TargetKg: 50},
	}
	period := Period{Month: 6, Year: 2025}

	first := ComputeReport(sales, entries, goals, period)
	second := ComputeReport(sales, entries, goals, period)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated runs differ:\n%+v\n%+v", first, second)
	}
}

func TestComputeReportInputOrderInvariant(t *testing.T) {
	sales := []SaleRecord{
		saleOf("PET", 10, 100),
		saleOf("Vidro", 20, 200),
		saleOf("Papelão", 30, 300),
		saleOf("Ferro", 40, 400),
		saleOf("Jornal", 5, 50),
	}
	period := Period{Month: 6, Year: 2025}

	want := ComputeReport(sales, nil, nil, period)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]SaleRecord, len(sales))
		copy(shuffled, sales)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := ComputeReport(shuffled, nil, nil, period)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("shuffle %d changed the report:\n%+v\n%+v", i, got, want)
		}
	}

	// Case variants merge into one group regardless of which record comes
	// first; totals never move.
	variants := []SaleRecord{saleOf("PET", 10, 100), saleOf("pet", 5, 50)}
	forward := ComputeReport(variants, nil, nil, period)
	reversed := ComputeReport([]SaleRecord{variants[1], variants[0]}, nil, nil, period)
	if forward.TotalRevenue != reversed.TotalRevenue || forward.TotalWeightSold != reversed.TotalWeightSold {
		t.Fatalf("totals moved under reordering: %+v vs %+v", forward, reversed)
	}
	if len(forward.RevenueByMaterial) != 1 || len(reversed.RevenueByMaterial) != 1 {
		t.Fatalf("case variants did not merge: %+v vs %+v", forward.RevenueByMaterial, reversed.RevenueByMaterial)
	}
}

func TestComputeReportZeroTargetGoal(t *testing.T) {
	sales := []SaleRecord{saleOf("Ferro", 80, 160)}
	goals := []Goal{{Category: "metal", TargetKg: 0}}

	r := ComputeReport(sales, nil, goals, Period{Month: 6, Year: 2025})

	metal := metalProgress(t, r)
	if metal.CurrentKg != 80 {
		t.Fatalf("metal current = %v; want 80", metal.CurrentKg)
	}
	if metal.Progress != 0 {
		t.Fatalf("metal progress = %v; want 0 for zero target", metal.Progress)
	}
}

func TestComputeReportMalformedNumbers(t *testing.T) {
	sales := []SaleRecord{
		saleOf("Vidro", math.NaN(), 30),
		saleOf("Vidro", 10, math.Inf(1)),
		saleOf("PET", -5, -12),
	}

	r := ComputeReport(sales, nil, nil, Period{Month: 6, Year: 2025})

	if r.TotalRevenue != 30 {
		t.Fatalf("total revenue = %v; want 30", r.TotalRevenue)
	}
	if r.TotalWeightSold != 10 {
		t.Fatalf("total weight sold = %v; want 10", r.TotalWeightSold)
	}
	// PET nets to zero on both axes and must not appear in either list.
	for _, share := range r.RevenueByMaterial {
		if share.Name == "PET" {
			t.Fatalf("zero-valued PET leaked into revenue list: %+v", r.RevenueByMaterial)
		}
	}
	for _, share := range r.WeightByMaterial {
		if share.Name == "PET" {
			t.Fatalf("zero-valued PET leaked into weight list: %+v", r.WeightByMaterial)
		}
	}
}

func TestComputeReportMergesNameVariants(t *testing.T) {
	sales := []SaleRecord{
		saleOf("Vidro ", 10, 100),
		saleOf("vidro", 5, 50),
	}

	r := ComputeReport(sales, nil, nil, Period{Month: 6, Year: 2025})

	if len(r.RevenueByMaterial) != 1 {
		t.Fatalf("expected one merged group, got %v", r.RevenueByMaterial)
	}
	got := r.RevenueByMaterial[0]
	if got.Name != "Vidro" {
		t.Fatalf("display name = %q; want first-seen trimmed form 'Vidro'", got.Name)
	}
	if got.Value != 150 {
		t.Fatalf("merged revenue = %v; want 150", got.Value)
	}
}

func TestComputeReportEntriesFeedReceivedWeightOnly(t *testing.T) {
	entries := []EntryRecord{
		{Material: "Papelão", WeightKg: 120},
		{Material: "Vidro", WeightKg: 30},
	}

	r := ComputeReport(nil, entries, nil, Period{Month: 6, Year: 2025})

	if r.TotalWeightReceived != 150 {
		t.Fatalf("total weight received = %v; want 150", r.TotalWeightReceived)
	}
	if len(r.RevenueByMaterial) != 0 || len(r.WeightByMaterial) != 0 {
		t.Fatalf("entries must not produce distribution groups: %+v", r)
	}
}

func TestPeriodRange(t *testing.T) {
	start, end := Period{Month: 12, Year: 2025}.Range()

	if !start.Equal(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v; want 2025-12-01T00:00:00Z", start)
	}
	if !end.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("end = %v; want 2026-01-01T00:00:00Z", end)
	}

	lastInstant := time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)
	if !lastInstant.Before(end) || lastInstant.Before(start) {
		t.Fatalf("late new-year's-eve record fell outside the window")
	}
}
