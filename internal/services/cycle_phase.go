package services

const (
	PhaseMenstrual  = "menstrual"
	PhaseFollicular = "follicular"
	PhaseOvulatory  = "ovulatory"
	PhaseLuteal     = "luteal"
)

type phaseRule struct {
	label   string
	matches func(cycleDay int, periodLength int) bool
}

// phaseRules is evaluated top-down; the first matching rule wins. The
// follicular and ovulatory ranges deliberately overlap at day 14 (follicular
// wins there) and ovulatory runs through day 16.
var phaseRules = []phaseRule{
	{PhaseMenstrual, func(cycleDay int, periodLength int) bool { return cycleDay <= periodLength }},
	{PhaseFollicular, func(cycleDay int, _ int) bool { return cycleDay <= 14 }},
	{PhaseOvulatory, func(cycleDay int, _ int) bool { return cycleDay >= 14 && cycleDay <= 16 }},
}

// ClassifyCyclePhase maps a cycle day onto a phase label; days past the
// ovulatory window are luteal.
func ClassifyCyclePhase(cycleDay int, periodLength int) string {
	for _, rule := range phaseRules {
		if rule.matches(cycleDay, periodLength) {
			return rule.label
		}
	}
	return PhaseLuteal
}
