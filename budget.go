package main

import (
	"math"
	"strings"
)

type budgetShare struct {
	category   string
	percentage float64
}

// Static splits per event type, in display order.
var budgetSplits = map[string][]budgetShare{
	"wedding": {
		{"venue", 30}, {"catering", 25}, {"photography", 15}, {"decoration", 10},
		{"entertainment", 10}, {"flowers", 5}, {"other", 5},
	},
	"corporate": {
		{"venue", 35}, {"catering", 30}, {"audio_visual", 15}, {"decoration", 10},
		{"transportation", 5}, {"other", 5},
	},
	"birthday": {
		{"venue", 25}, {"catering", 30}, {"decoration", 20}, {"entertainment", 15},
		{"photography", 5}, {"other", 5},
	},
	"conference": {
		{"venue", 40}, {"catering", 25}, {"audio_visual", 20}, {"decoration", 10},
		{"transportation", 3}, {"other", 2},
	},
}

var defaultBudgetSplit = []budgetShare{
	{"venue", 30}, {"catering", 25}, {"decoration", 15}, {"entertainment", 10},
	{"photography", 10}, {"other", 10},
}

var categoryDescriptions = map[string]string{
	"venue":          "Location rental, setup fees, and basic facilities",
	"catering":       "Food, beverages, service staff, and equipment",
	"photography":    "Professional photographer, videographer, and editing",
	"decoration":     "Flowers, lighting, centerpieces, and themed decorations",
	"entertainment":  "DJ, live music, performers, or entertainment systems",
	"audio_visual":   "Sound systems, microphones, projectors, and lighting",
	"transportation": "Guest transportation, parking, and logistics",
	"flowers":        "Bouquets, arrangements, and floral decorations",
	"security":       "Event security personnel and crowd management",
	"other":          "Miscellaneous expenses and contingency fund",
}

var generalTips = []string{
	"Book venues during off-peak days (Sunday-Thursday) for better rates",
	"Consider buffet-style catering instead of plated meals to reduce costs",
	"Use local vendors to save on transportation and logistics",
	"Book vendors 2-3 months in advance for early bird discounts",
	"Mix fresh flowers with artificial ones for decoration savings",
}

const maxTips = 5

type BudgetLine struct {
	Category    string  `json:"category"`
	Percentage  float64 `json:"percentage"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type BudgetRecommendation struct {
	Recommendations []BudgetLine `json:"recommendations"`
	CostSavingTips  []string     `json:"cost_saving_tips"`
	TotalBudget     float64      `json:"total_budget"`
	Currency        string       `json:"currency"`
}

// RecommendBudget splits totalBudget using the table for eventType, falling
// back to the default split for unknown types.
func RecommendBudget(eventType string, attendees int, totalBudget float64) (BudgetRecommendation, error) {
	if totalBudget < 0 || math.IsNaN(totalBudget) || math.IsInf(totalBudget, 0) {
		return BudgetRecommendation{}, invalid("total_budget must be a non-negative number")
	}
	if attendees < 0 {
		return BudgetRecommendation{}, invalid("attendees must be at least 0")
	}

	split, ok := budgetSplits[strings.ToLower(eventType)]
	if !ok {
		split = defaultBudgetSplit
	}

	lines := make([]BudgetLine, 0, len(split))
	for _, s := range split {
		lines = append(lines, BudgetLine{
			Category:    strings.ToUpper(strings.Replace(s.category, "_", " ", 1)),
			Percentage:  s.percentage,
			Amount:      math.Round(totalBudget * s.percentage / 100),
			Description: describeCategory(s.category),
		})
	}

	return BudgetRecommendation{
		Recommendations: lines,
		CostSavingTips:  costSavingTips(strings.ToLower(eventType), attendees, totalBudget),
		TotalBudget:     totalBudget,
		Currency:        "AED",
	}, nil
}

func describeCategory(category string) string {
	if d, ok := categoryDescriptions[category]; ok {
		return d
	}
	return "Additional event-related expenses"
}

// costSavingTips puts the tips specific to the budget and event type ahead
// of the general ones. The order is deliberate: with the general list first,
// the cap of five would cut every contextual tip and each caller would get
// the same five general tips.
func costSavingTips(eventType string, attendees int, budget float64) []string {
	var tips []string
	if attendees > 0 && budget/float64(attendees) < 100 {
		tips = append(tips,
			"Consider home venues or community halls for significant savings",
			"Ask friends/family to help with photography and videography",
			"Use DIY decorations and centerpieces",
		)
	}
	switch eventType {
	case "wedding":
		tips = append(tips,
			"Consider weekday weddings for 20-30% venue discounts",
			"Limit guest list to close family and friends",
			"Use seasonal flowers and local suppliers",
		)
	case "corporate":
		tips = append(tips,
			"Partner with other companies for shared event costs",
			"Use company facilities or partner venues",
			"Focus budget on networking opportunities and quality catering",
		)
	}
	tips = append(tips, generalTips...)
	if len(tips) > maxTips {
		tips = tips[:maxTips]
	}
	return tips
}
