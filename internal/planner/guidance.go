package planner

import (
	"strings"

	"specialcare/internal/i18n"
	"specialcare/internal/models"
)

const stepIndent = "   "

// RenderGuidance builds the parent guidance text for one day
func (b *Builder) RenderGuidance(areas []models.Domain, day int, activities []models.Activity, lang string) string {
	return b.renderGuidance(areas, day, activities, b.resolveLanguage(lang))
}

func (b *Builder) renderGuidance(areas []models.Domain, day int, activities []models.Activity, lang string) string {
	t := func(key string, params i18n.Params) string {
		return b.tr.T(lang, key, params)
	}

	lines := []string{t("guidance.day_title", i18n.Params{"day": day}), ""}

	if models.ContainsDomain(areas, models.DomainAttention) {
		lines = append(lines,
			t("guidance.attention_focus", nil),
			"- "+t("guidance.quiet_environment", nil),
			"- "+t("guidance.encourage_completion", nil),
			"- "+t("guidance.positive_feedback", nil),
			"",
		)
	}

	lines = append(lines, t("guidance.today_activities", nil))
	for i, a := range activities {
		lines = append(lines,
			t("guidance.activity_line", i18n.Params{"index": i + 1, "name": a.Name, "duration": a.Duration}),
			stepIndent+t("guidance.description", nil)+a.Description,
		)
		if a.Online {
			lines = append(lines, stepIndent+t("guidance.can_play_online", nil))
		}
		if a.Instructions != "" {
			lines = append(lines, stepIndent+t("guidance.detailed_steps", nil))
			for _, step := range strings.Split(a.Instructions, "\n") {
				if strings.TrimSpace(step) != "" {
					lines = append(lines, stepIndent+step)
				}
			}
		}
	}

	lines = append(lines,
		"",
		t("guidance.notes", nil),
		"- "+t("guidance.adjust_time", nil),
		"- "+t("guidance.take_breaks", nil),
		"- "+t("guidance.record_performance", nil),
		"- "+t("guidance.online_game_hint", nil),
	)
	return strings.Join(lines, "\n")
}
