package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tkonrad/gridironbot/internal/domain"
)

// Fallback game lines when the page text doesn't give up a total or spread.
// A league-average total and a field-goal home favorite keep the estimators
// in a sane regime instead of aborting the event.
const (
	fallbackTotal  = 44.0
	fallbackSpread = -3.0
)

var (
	americanRe = regexp.MustCompile(`([+\-]?\d{3,4})`)
	totalRe    = regexp.MustCompile(`(?i)(?:total|o/u)\s*([0-9]{2}(?:\.5)?)`)
	spreadRe   = regexp.MustCompile(`[-+](?:\d+\.\d|\d+)`)
	passTDRe   = regexp.MustCompile(`(?i)1\+\s*(?:pass(?:ing)?\s*)?td`)
	recOverRe  = regexp.MustCompile(`(?i)over\s*(3\.5|4\.5)`)
	priceCutRe = regexp.MustCompile(`[+\-]\d{3,4}`)
)

// parseAmerican extracts the first American price from a text blob. Sportsbook
// cells render en-dashes for minus signs, so those are normalized first.
// Magnitudes below 100 are not prices and are rejected.
func parseAmerican(s string) (int, bool) {
	s = strings.ReplaceAll(s, "–", "-")
	m := americanRe.FindString(strings.ReplaceAll(s, " ", ""))
	if m == "" {
		return 0, false
	}
	a, err := strconv.Atoi(m)
	if err != nil || (a > -100 && a < 100) {
		return 0, false
	}
	return a, true
}

// parseGameLines pulls the posted total and spread out of raw page text,
// falling back to league-typical values when either is missing.
func parseGameLines(text string) domain.GameContext {
	lower := strings.ToLower(text)

	total := fallbackTotal
	if m := totalRe.FindStringSubmatch(lower); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			total = v
		}
	}

	spread := fallbackSpread
	if m := spreadRe.FindString(lower); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			spread = v
		}
	}

	return domain.GameContext{TotalPoints: total, SpreadPoints: spread}
}

// stripPrice removes the trailing price from an outcome cell's text, leaving
// the selection label.
func stripPrice(s string) string {
	s = strings.ReplaceAll(s, "–", "-")
	if loc := priceCutRe.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}

// classify turns one outcome cell's text into a quote, or nothing when the
// cell isn't a market this engine prices. Classification is intentionally
// text-based: sportsbook DOM classnames churn, button copy doesn't.
func classify(text string) (domain.Quote, bool) {
	price, ok := parseAmerican(text)
	if !ok {
		return domain.Quote{}, false
	}
	label := stripPrice(text)

	switch {
	case passTDRe.MatchString(text):
		return domain.Quote{
			Market: domain.MarketPassTD,
			Label:  label,
			Slot:   domain.SlotFavorite,
			Price:  price,
		}, true
	case recOverRe.MatchString(text):
		line := 4.5
		if m := recOverRe.FindStringSubmatch(text); m != nil && m[1] == "3.5" {
			line = 3.5
		}
		return domain.Quote{
			Market: domain.MarketReceptionsOver,
			Label:  label,
			Slot:   domain.SlotCoinFlip,
			Price:  price,
			Line:   line,
		}, true
	case price < 0 && label != "":
		// Bare negative price with a team label: treat as a moneyline
		// favorite row.
		return domain.Quote{
			Market: domain.MarketMoneyline,
			Label:  label,
			Slot:   domain.SlotFavorite,
			Price:  price,
		}, true
	default:
		return domain.Quote{}, false
	}
}
