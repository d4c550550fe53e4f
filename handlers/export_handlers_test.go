package handlers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/samiarebeca/coleta-inteligente/models"
)

func TestWriteSalesCSV(t *testing.T) {
	rows := []models.SaleExportRow{
		{
			Date:       time.Date(2025, 6, 3, 14, 30, 0, 0, time.UTC),
			Material:   "PET",
			Subclass:   "PET Cristal",
			WeightKg:   100,
			PricePerKg: 1.2,
			TotalValue: 120,
			BuyerName:  "Recicla SP",
		},
		{
			Date:       time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
			Material:   "Alumínio",
			WeightKg:   50.5,
			PricePerKg: 5,
			TotalValue: 252.5,
			BuyerName:  "Metais & Cia, Ltda",
		},
	}

	var buf bytes.Buffer
	if err := writeSalesCSV(&buf, rows); err != nil {
		t.Fatalf("writeSalesCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != "data,material,subclasse,peso_kg,preco_kg,valor_total,comprador" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "2025-06-03 14:30,PET,PET Cristal,100,1.2,120,Recicla SP" {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
	// The buyer name contains a comma and must come out quoted.
	if lines[2] != `2025-06-10 09:00,Alumínio,,50.5,5,252.5,"Metais & Cia, Ltda"` {
		t.Fatalf("unexpected second row: %q", lines[2])
	}
}

func TestWriteSalesCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := writeSalesCSV(&buf, nil); err != nil {
		t.Fatalf("writeSalesCSV: %v", err)
	}
	if got := strings.TrimRight(buf.String(), "\n"); got != "data,material,subclasse,peso_kg,preco_kg,valor_total,comprador" {
		t.Fatalf("expected header only, got %q", got)
	}
}
