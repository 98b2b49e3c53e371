package services

import "testing"

func TestMLConfidenceLabel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		quality float64
		want    string
	}{
		{quality: 9.2, want: ConfidenceHigh},
		{quality: 7, want: ConfidenceHigh},
		{quality: 6.9, want: ConfidenceMedium},
		{quality: 4, want: ConfidenceMedium},
		{quality: 3.9, want: ConfidenceLow},
		{quality: 0, want: ConfidenceLow},
	}

	for _, testCase := range cases {
		if got := MLConfidenceLabel(testCase.quality); got != testCase.want {
			t.Fatalf("quality %v: expected %s, got %s", testCase.quality, testCase.want, got)
		}
	}
}

func TestForecastFromML(t *testing.T) {
	t.Parallel()

	prediction := MLPrediction{
		Predictions:       map[int]int{1: 3, 2: 7},
		HighPainDays:      []int{2},
		PredictionQuality: 8,
	}

	forecast := ForecastFromML(prediction, 31)

	if forecast.ModelType != "random_forest" {
		t.Fatalf("expected random_forest model type, got %s", forecast.ModelType)
	}
	if forecast.Confidence != ConfidenceHigh {
		t.Fatalf("expected high confidence for quality 8, got %s", forecast.Confidence)
	}
	if forecast.PredictedCycleLength != 31 {
		t.Fatalf("expected cycle length 31, got %d", forecast.PredictedCycleLength)
	}
	if forecast.Predictions[2] != 7 {
		t.Fatalf("expected predictions carried through")
	}

	empty := ForecastFromML(MLPrediction{}, 28)
	if empty.Predictions == nil {
		t.Fatalf("expected a non-nil predictions map")
	}
}
