package services

import "testing"

func TestClassifyCyclePhase(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name         string
		cycleDay     int
		periodLength int
		want         string
	}{
		{name: "first day", cycleDay: 1, periodLength: 5, want: PhaseMenstrual},
		{name: "last period day", cycleDay: 5, periodLength: 5, want: PhaseMenstrual},
		{name: "early follicular", cycleDay: 6, periodLength: 5, want: PhaseFollicular},
		{name: "mid follicular", cycleDay: 10, periodLength: 5, want: PhaseFollicular},
		{name: "day fourteen stays follicular", cycleDay: 14, periodLength: 5, want: PhaseFollicular},
		{name: "ovulatory window", cycleDay: 15, periodLength: 5, want: PhaseOvulatory},
		{name: "end of ovulatory window", cycleDay: 16, periodLength: 5, want: PhaseOvulatory},
		{name: "early luteal", cycleDay: 17, periodLength: 5, want: PhaseLuteal},
		{name: "late luteal", cycleDay: 28, periodLength: 5, want: PhaseLuteal},
		{name: "long period wins over follicular", cycleDay: 12, periodLength: 12, want: PhaseMenstrual},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			got := ClassifyCyclePhase(testCase.cycleDay, testCase.periodLength)
			if got != testCase.want {
				t.Fatalf("day %d (period %d): expected %s, got %s",
					testCase.cycleDay, testCase.periodLength, testCase.want, got)
			}
		})
	}
}
