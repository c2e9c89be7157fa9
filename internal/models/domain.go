package models

// Domain is a developmental area a plan can focus on
type Domain string

const (
	DomainAttention Domain = "attention"
	DomainCognitive Domain = "cognitive"
	DomainSocial    Domain = "social"
	DomainMotor     Domain = "motor"
)

// Domains lists the domain vocabulary in discovery order
var Domains = []Domain{DomainAttention, DomainCognitive, DomainSocial, DomainMotor}

// Valid reports whether d belongs to the domain vocabulary
func (d Domain) Valid() bool {
	switch d {
	case DomainAttention, DomainCognitive, DomainSocial, DomainMotor:
		return true
	}
	return false
}

// ContainsDomain reports whether d is present in areas
func ContainsDomain(areas []Domain, d Domain) bool {
	for _, a := range areas {
		if a == d {
			return true
		}
	}
	return false
}

// TestType tags the kind of test a result came from
type TestType string

const (
	TestSchulte         TestType = "schulte"
	TestAttention       TestType = "attention"
	TestColorMatch      TestType = "color_match"
	TestSoundPlay       TestType = "sound_play"
	TestSimpleAttention TestType = "simple_attention"
	TestObservation     TestType = "observation_test"

	TestCognitive   TestType = "cognitive"
	TestMemory      TestType = "memory"
	TestMemoryCards TestType = "memory_cards"
	TestPuzzle      TestType = "online_puzzle"

	TestSocial TestType = "social"

	TestAgeAdaptive     TestType = "age_adaptive"
	TestShapeSort       TestType = "shape_sort"
	TestPatternComplete TestType = "pattern_complete"
	TestColorShape      TestType = "color_shape_test"
)

// TestFamily groups test types by how their scores are bucketed
type TestFamily int

const (
	FamilyUnknown TestFamily = iota
	FamilyAttention
	FamilyCognitive
	FamilySocial
	FamilyAgeAdaptive
)

// Family maps a test type to its scoring family
func (t TestType) Family() TestFamily {
	switch t {
	case TestSchulte, TestAttention, TestColorMatch, TestSoundPlay, TestSimpleAttention, TestObservation:
		return FamilyAttention
	case TestCognitive, TestMemory, TestMemoryCards, TestPuzzle:
		return FamilyCognitive
	case TestSocial:
		return FamilySocial
	case TestAgeAdaptive, TestShapeSort, TestPatternComplete, TestColorShape:
		return FamilyAgeAdaptive
	}
	return FamilyUnknown
}

// Classify returns the domains a score of this test type contributes to.
// Age-adaptive tests count toward cognitive only when score >= split
func (t TestType) Classify(score, split float64) []Domain {
	switch t.Family() {
	case FamilyAttention:
		return []Domain{DomainAttention}
	case FamilyCognitive:
		return []Domain{DomainCognitive}
	case FamilySocial:
		return []Domain{DomainSocial}
	case FamilyAgeAdaptive:
		if score >= split {
			return []Domain{DomainAttention, DomainCognitive}
		}
		return []Domain{DomainAttention}
	}
	return nil
}
