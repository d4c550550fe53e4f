package report

import "strings"

// Category is one of the four fixed umbrella groups that raw material
// names roll up into for goal tracking.
type Category struct {
	Label string
	// GoalNames lists every name a goal row may have been stored under.
	// Goal rows predate the fixed category list and exist under several
	// historical spellings.
	GoalNames []string
	// Aliases lists the material names that count toward this category.
	Aliases []string
	Color   string
}

// Categories holds the four reporting categories in display order.
var Categories = []Category{
	{
		Label:     "Metal",
		GoalNames: []string{"metal"},
		Aliases:   []string{"alumínio", "aluminio", "cobre", "ferro", "metal", "aço", "aco", "latão", "latao"},
		Color:     "#eab308",
	},
	{
		Label:     "Vidro",
		GoalNames: []string{"vidro"},
		Aliases:   []string{"vidro", "vidro transparente", "vidro verde", "vidro âmbar", "vidro ambar"},
		Color:     "#16a34a",
	},
	{
		Label:     "Papel/Papelão",
		GoalNames: []string{"papel", "papel/papelão", "papel/papelao", "papelão", "papelao"},
		Aliases:   []string{"papel", "papelão", "papelao", "papel branco", "papel misto", "jornal", "revista"},
		Color:     "#3b82f6",
	},
	{
		Label:     "Plástico",
		GoalNames: []string{"plástico", "plastico"},
		Aliases:   []string{"plástico", "plastico", "pet", "pet cristal", "pet colorido", "pead", "pp", "pvc", "filme"},
		Color:     "#dc2626",
	},
}

// FallbackColor is used for materials missing from the color table.
const FallbackColor = "#9ca3af"

// materialColors maps normalized material names to chart hues: blue shades
// for paper, red shades for plastic, yellow shades for metal, green shades
// for glass.
var materialColors = map[string]string{
	"papel":        "#2563eb",
	"papelão":      "#3b82f6",
	"papelao":      "#3b82f6",
	"papel branco": "#60a5fa",
	"papel misto":  "#93c5fd",
	"jornal":       "#1d4ed8",
	"revista":      "#1e40af",

	"plástico":     "#dc2626",
	"plastico":     "#dc2626",
	"pet":          "#ef4444",
	"pet cristal":  "#f87171",
	"pet colorido": "#b91c1c",
	"pead":         "#fca5a5",
	"pp":           "#991b1b",
	"pvc":          "#7f1d1d",
	"filme":        "#fecaca",

	"metal":    "#eab308",
	"alumínio": "#facc15",
	"aluminio": "#facc15",
	"ferro":    "#ca8a04",
	"cobre":    "#a16207",
	"aço":      "#fde047",
	"aco":      "#fde047",
	"latão":    "#fbbf24",
	"latao":    "#fbbf24",

	"vidro":              "#16a34a",
	"vidro transparente": "#22c55e",
	"vidro verde":        "#15803d",
	"vidro âmbar":        "#4ade80",
	"vidro ambar":        "#4ade80",
}

// normalizeName trims and case-folds a material name. It is the grouping
// key for every matching step: color lookup, alias matching and goal-row
// lookup.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// MaterialColor returns the chart color for a material name. Unknown
// materials get the neutral fallback; this lookup never fails.
func MaterialColor(name string) string {
	if c, ok := materialColors[normalizeName(name)]; ok {
		return c
	}
	return FallbackColor
}

// matchesGoalName reports whether a goal row name refers to the category.
// The comparison accepts the display label too.
func (c Category) matchesGoalName(name string) bool {
	normalized := normalizeName(name)
	if normalized == normalizeName(c.Label) {
		return true
	}
	for _, g := range c.GoalNames {
		if g == normalized {
			return true
		}
	}
	return false
}
