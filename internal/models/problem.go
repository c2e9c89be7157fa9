package models

import "strings"

// Problem is a recognized caregiver-reported difficulty
type Problem string

const (
	ProblemAttentionDeficit   Problem = "attention_deficit"
	ProblemHyperactivity      Problem = "hyperactivity"
	ProblemMoodSwings         Problem = "mood_swings"
	ProblemSocialDifficulty   Problem = "social_difficulty"
	ProblemLearningDifficulty Problem = "learning_difficulty"
	ProblemLanguageDelay      Problem = "language_delay"
	ProblemBehaviorIssue      Problem = "behavior_issue"
	ProblemPoorCoordination   Problem = "poor_coordination"
	ProblemPoorMemory         Problem = "poor_memory"
)

// Domain maps a problem to the developmental area it implies
func (p Problem) Domain() (Domain, bool) {
	switch p {
	case ProblemAttentionDeficit, ProblemHyperactivity:
		return DomainAttention, true
	case ProblemMoodSwings, ProblemSocialDifficulty, ProblemBehaviorIssue:
		return DomainSocial, true
	case ProblemLearningDifficulty, ProblemLanguageDelay, ProblemPoorMemory:
		return DomainCognitive, true
	case ProblemPoorCoordination:
		return DomainMotor, true
	}
	return "", false
}

// problemAliases holds the spellings caregivers and older clients submit
var problemAliases = map[Problem][]string{
	ProblemAttentionDeficit:   {"attention deficit", "inattention", "注意力不集中"},
	ProblemHyperactivity:      {"hyperactivity", "hyperactive", "多动"},
	ProblemMoodSwings:         {"mood swings", "emotional swings", "情绪波动大"},
	ProblemSocialDifficulty:   {"social difficulty", "社交困难"},
	ProblemLearningDifficulty: {"learning difficulty", "学习困难"},
	ProblemLanguageDelay:      {"language delay", "语言发育迟缓"},
	ProblemBehaviorIssue:      {"behavior issue", "behavior problem", "行为问题"},
	ProblemPoorCoordination:   {"poor coordination", "运动协调性差"},
	ProblemPoorMemory:         {"poor memory", "记忆力差"},
}

// ParseProblem normalizes a free-text tag to a known problem
func ParseProblem(tag string) (Problem, bool) {
	normalized := strings.ToLower(strings.TrimSpace(tag))
	if normalized == "" {
		return "", false
	}
	candidate := Problem(strings.ReplaceAll(normalized, " ", "_"))
	if _, ok := candidate.Domain(); ok {
		return candidate, true
	}
	for p, aliases := range problemAliases {
		for _, alias := range aliases {
			if alias == normalized {
				return p, true
			}
		}
	}
	return "", false
}
