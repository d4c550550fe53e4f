package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/samiarebeca/coleta-inteligente/config"
	"github.com/samiarebeca/coleta-inteligente/models"
	"github.com/samiarebeca/coleta-inteligente/report"

	"github.com/gofiber/fiber/v2"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// HandleGetReportInsights generates a short management narrative for the
// monthly report using Gemini. A failure here never touches the report
// itself; the client shows a one-shot error and may retry.
// POST /api/v1/admin/reports/monthly/insights
func HandleGetReportInsights(c *fiber.Ctx) error {
	period, err := parseReportPeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	ctx := context.Background()
	start, end := period.Range()

	sales, err := fetchSalesForPeriod(ctx, start, end)
	if err != nil {
		log.Printf("Error fetching sales for insights %d/%d: %v", period.Month, period.Year, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch report data"})
	}
	entries, err := fetchEntriesForPeriod(ctx, start, end)
	if err != nil {
		log.Printf("Error fetching entries for insights %d/%d: %v", period.Month, period.Year, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch report data"})
	}
	goals, err := fetchGoalsForPeriod(ctx, period.Month, period.Year)
	if err != nil {
		log.Printf("Error fetching goals for insights %d/%d: %v", period.Month, period.Year, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch report data"})
	}

	result := report.ComputeReport(sales, entries, goals, period)
	prompt := constructInsightsPrompt(result)

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.AppConfig.GeminiAPIKey))
	if err != nil {
		log.Printf("Error creating Gemini client: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to connect to AI service"})
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.5-flash-lite")
	model.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockNone},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Printf("Error from Gemini API: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to generate insights from AI"})
	}

	insights, err := parseInsightsResponse(resp, result.Period)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	return c.JSON(fiber.Map{"status": "success", "data": insights})
}

// constructInsightsPrompt summarizes the computed report for the model.
func constructInsightsPrompt(result report.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Total revenue: R$ %.2f\n", result.TotalRevenue)
	fmt.Fprintf(&sb, "Total weight sold: %.1f kg\n", result.TotalWeightSold)
	fmt.Fprintf(&sb, "Total weight received: %.1f kg\n", result.TotalWeightReceived)

	sb.WriteString("Revenue by material:\n")
	for _, share := range result.RevenueByMaterial {
		fmt.Fprintf(&sb, "- %s: R$ %.2f (%.1f%%)\n", share.Name, share.Value, share.Percentage)
	}
	sb.WriteString("Goal progress:\n")
	for _, p := range result.GoalsProgress {
		fmt.Fprintf(&sb, "- %s: %.1f kg of %.1f kg (%.1f%%)\n", p.Label, p.CurrentKg, p.TargetKg, p.Progress)
	}

	jsonFormat := `{"summary":"string","highlights":["string",...],"attention_points":["string",...]}`

	return fmt.Sprintf(`
        You are a management analyst for a recycling cooperative. Based on the
        monthly figures below, write a brief analysis in Brazilian Portuguese.

        **Period:** %02d/%d

        **Monthly figures:**
        %s

        **Required Output:**
        You must provide a single, minified JSON object with the following exact structure. Do not include any markdown formatting, backticks, or explanatory text before or after the JSON object.

        %s
    `, result.Period.Month, result.Period.Year, sb.String(), jsonFormat)
}

func extractJSON(rawString string) string {
	start := strings.Index(rawString, "{")
	end := strings.LastIndex(rawString, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return rawString[start : end+1]
}

// parseInsightsResponse parses the JSON from Gemini into a structured response.
func parseInsightsResponse(resp *genai.GenerateContentResponse, period report.Period) (*models.ReportInsights, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content received from AI")
	}

	var geminiText string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			geminiText += string(txt)
		}
	}

	if geminiText == "" {
		return nil, fmt.Errorf("no text content received from AI")
	}

	jsonStr := extractJSON(geminiText)
	if jsonStr == "" {
		log.Printf("Could not extract JSON from Gemini response: %s", geminiText)
		return nil, fmt.Errorf("failed to parse AI response format")
	}

	var geminiJSON struct {
		Summary         string   `json:"summary"`
		Highlights      []string `json:"highlights"`
		AttentionPoints []string `json:"attention_points"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &geminiJSON); err != nil {
		log.Printf("Error parsing Gemini JSON: %v\nRaw JSON: %s", err, jsonStr)
		return nil, fmt.Errorf("failed to parse AI insights data")
	}

	return &models.ReportInsights{
		Period:          fmt.Sprintf("%02d/%d", period.Month, period.Year),
		GeneratedAt:     time.Now(),
		Summary:         geminiJSON.Summary,
		Highlights:      geminiJSON.Highlights,
		AttentionPoints: geminiJSON.AttentionPoints,
	}, nil
}
