package planner

import (
	"specialcare/internal/models"
)

// SelectDay picks the activities for one day: up to two per focus area,
// windowed by how far the day is into the plan, then topped up from the
// attention/average tier to at least two and capped at five
func (b *Builder) SelectDay(areas []models.Domain, tier models.PerformanceLevel, day, totalDays, age int, lang string) []models.Activity {
	return b.selectDay(b.Catalog(lang), areas, tier, day, totalDays, normalizeAge(age))
}

func (b *Builder) selectDay(cat *Catalog, areas []models.Domain, tier models.PerformanceLevel, day, totalDays, age int) []models.Activity {
	var out []models.Activity
	for _, area := range areas {
		pool := cat.Pool(area, tier)
		if len(pool) == 0 {
			continue
		}
		eligible := suitable(pool, age)
		if len(eligible) == 0 {
			gap := &CatalogGap{Domain: area, Tier: tier, Age: age}
			b.log.Warn("no age-appropriate activity, using unfiltered tier",
				"error", gap, "domain", string(area), "tier", string(tier), "age", age)
			eligible = pool
		}
		out = append(out, dayWindow(eligible, day, totalDays)...)
	}

	if len(out) < minDayActivities {
		for _, a := range suitable(cat.Pool(fallbackDomain, fallbackTier), age) {
			if len(out) >= minDayActivities {
				break
			}
			if !containsActivity(out, a.Key) {
				out = append(out, a)
			}
		}
	}
	if len(out) > maxDayActivities {
		out = out[:maxDayActivities]
	}
	return out
}

func suitable(pool []models.Activity, age int) []models.Activity {
	var out []models.Activity
	for _, a := range pool {
		if a.SuitableFor(age) {
			out = append(out, a)
		}
	}
	return out
}

// dayWindow picks items[0:2] in the first third of a plan, items[1:3] in the
// middle third and the last two items in the final third. Lists too short
// for a window are used whole
func dayWindow(items []models.Activity, day, totalDays int) []models.Activity {
	if totalDays <= 0 {
		totalDays = 1
	}
	progress := float64(day) / float64(totalDays)
	n := len(items)

	var sel []models.Activity
	switch {
	case progress < earlyPhaseEnd:
		sel = items[:min(perAreaActivities, n)]
	case progress < midPhaseEnd:
		if n >= 3 {
			sel = items[1:3]
		} else {
			sel = items
		}
	default:
		if n >= perAreaActivities {
			sel = items[n-perAreaActivities:]
		} else {
			sel = items
		}
	}
	if len(sel) > perAreaActivities {
		sel = sel[:perAreaActivities]
	}
	return append([]models.Activity(nil), sel...)
}

func containsActivity(list []models.Activity, key string) bool {
	for _, a := range list {
		if a.Key == key {
			return true
		}
	}
	return false
}
