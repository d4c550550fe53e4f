package handlers

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"time"

	"github.com/samiarebeca/coleta-inteligente/database"
	"github.com/samiarebeca/coleta-inteligente/models"

	"github.com/gofiber/fiber/v2"
)

// HandleExportSalesCSV dumps the period's sales as a CSV download. Each
// sale becomes one row; nothing is aggregated and no row is filtered out,
// so the export always matches the stored records.
// GET /api/v1/admin/reports/monthly/export/csv
func HandleExportSalesCSV(c *fiber.Ctx) error {
	period, err := parseReportPeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	start, end := period.Range()
	exportRows, err := fetchSaleExportRows(context.Background(), start, end)
	if err != nil {
		log.Printf("Error fetching sales for CSV export %d/%d: %v", period.Month, period.Year, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to export sales"})
	}

	var buf bytes.Buffer
	if err := writeSalesCSV(&buf, exportRows); err != nil {
		log.Printf("Error writing CSV for %d/%d: %v", period.Month, period.Year, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to export sales"})
	}

	filename := fmt.Sprintf("vendas-%04d-%02d.csv", period.Year, period.Month)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

// writeSalesCSV serializes the export rows with a header line.
func writeSalesCSV(w io.Writer, rows []models.SaleExportRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"data", "material", "subclasse", "peso_kg", "preco_kg", "valor_total", "comprador"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Date.Format("2006-01-02 15:04"),
			row.Material,
			row.Subclass,
			strconv.FormatFloat(row.WeightKg, 'f', -1, 64),
			strconv.FormatFloat(row.PricePerKg, 'f', -1, 64),
			strconv.FormatFloat(row.TotalValue, 'f', -1, 64),
			row.BuyerName,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func fetchSaleExportRows(ctx context.Context, start, end time.Time) ([]models.SaleExportRow, error) {
	rows, err := database.GetDB().Query(ctx, `
		SELECT s.created_at, m.name, COALESCE(sub.name, ''),
		       s.weight, s.price_per_kg, s.total_value, b.name
		FROM sales s
		JOIN materials m ON m.id = s.material_id
		JOIN buyers b ON b.id = s.buyer_id
		LEFT JOIN material_subclassifications sub ON sub.id = s.subclassification_id
		WHERE s.created_at >= $1 AND s.created_at < $2
		ORDER BY s.created_at`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	export := make([]models.SaleExportRow, 0)
	for rows.Next() {
		var row models.SaleExportRow
		if err := rows.Scan(&row.Date, &row.Material, &row.Subclass,
			&row.WeightKg, &row.PricePerKg, &row.TotalValue, &row.BuyerName); err != nil {
			return nil, err
		}
		export = append(export, row)
	}
	return export, rows.Err()
}
