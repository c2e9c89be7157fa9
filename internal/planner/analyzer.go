package planner

import (
	"specialcare/internal/models"
)

// assessment is the scored view of a test history
type assessment struct {
	byDomain map[models.Domain][]float64
	// Every bucketed score, so a split age-adaptive result counts twice
	pooled []float64
	// One score per usable result
	perResult  []float64
	hasHistory bool
}

func (b *Builder) assess(history []models.TestResult) assessment {
	a := assessment{
		byDomain:   make(map[models.Domain][]float64),
		hasHistory: len(history) > 0,
	}
	for i := range history {
		r := &history[i]
		if !r.ValidScore() {
			b.skipResult(i, r, "missing or out-of-range score")
			continue
		}
		score := *r.Score
		domains := r.TestType.Classify(score, b.th.AgeAdaptiveSplit)
		if len(domains) == 0 && r.Capability.Valid() {
			domains = []models.Domain{r.Capability}
		}
		if len(domains) == 0 {
			b.skipResult(i, r, "unknown test type")
			continue
		}
		for _, d := range domains {
			a.byDomain[d] = append(a.byDomain[d], score)
		}
		a.perResult = append(a.perResult, score)
	}
	for _, d := range models.Domains {
		a.pooled = append(a.pooled, a.byDomain[d]...)
	}
	return a
}

func (b *Builder) skipResult(index int, r *models.TestResult, reason string) {
	err := &InputDataError{Index: index, ResultID: r.ID, TestType: r.TestType, Reason: reason}
	b.log.Warn("skipping test result", "error", err, "result_id", r.ID, "test_type", string(r.TestType), "reason", reason)
}

func (a assessment) mean(d models.Domain) (float64, bool) {
	return mean(a.byDomain[d])
}

func mean(scores []float64) (float64, bool) {
	if len(scores) == 0 {
		return 0, false
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores)), true
}

// Analyze returns the ordered focus areas for a child: 1 to 3 domains,
// first found first kept. Domains flagged by scores come before domains
// implied by reported problems. Age does not change the rule table
func (b *Builder) Analyze(history []models.TestResult, problems []string, age int) []models.Domain {
	return b.analyze(b.assess(history), problems)
}

func (b *Builder) analyze(a assessment, problems []string) []models.Domain {
	var areas []models.Domain
	add := func(d models.Domain) {
		if !models.ContainsDomain(areas, d) {
			areas = append(areas, d)
		}
	}

	for _, d := range models.Domains {
		if avg, ok := a.mean(d); ok && avg < b.th.ModerateBelow {
			add(d)
		}
	}

	for _, tag := range problems {
		p, ok := models.ParseProblem(tag)
		if !ok {
			b.log.Debug("ignoring unrecognized problem tag", "problem", tag)
			continue
		}
		if d, ok := p.Domain(); ok {
			add(d)
		}
	}

	if avg, ok := mean(a.pooled); ok && avg >= b.th.EnrichmentAt && len(problems) == 0 {
		add(models.DomainAttention)
		add(models.DomainCognitive)
	}

	if len(areas) == 0 {
		switch {
		case !a.hasHistory && len(problems) > 0:
			areas = []models.Domain{models.DomainAttention, models.DomainCognitive}
		case a.hasHistory:
			areas = []models.Domain{models.DomainAttention}
		default:
			areas = []models.Domain{models.DomainAttention, models.DomainCognitive}
		}
	}

	if len(areas) > maxFocusAreas {
		areas = areas[:maxFocusAreas]
	}
	return areas
}
