package services

// MLPrediction is the raw output of an external pain model.
type MLPrediction struct {
	Predictions       map[int]int
	HighPainDays      []int
	MediumPainDays    []int
	PredictionQuality float64
}

// MLPredictor produces per-day pain forecasts from a trained model. The
// observed-pattern forecast is used whenever no predictor is configured or a
// prediction attempt fails.
type MLPredictor interface {
	PredictPain(userID uint) (MLPrediction, error)
}

const mlModelType = "random_forest"

// MLConfidenceLabel grades model output by its reported quality score rather
// than by sample count.
func MLConfidenceLabel(quality float64) string {
	switch {
	case quality >= 7:
		return ConfidenceHigh
	case quality >= 4:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// ForecastFromML reshapes a model prediction into the common forecast form.
func ForecastFromML(prediction MLPrediction, predictedCycleLength int) PainForecast {
	predictions := prediction.Predictions
	if predictions == nil {
		predictions = map[int]int{}
	}
	return PainForecast{
		Predictions:          predictions,
		HighPainDays:         prediction.HighPainDays,
		MediumPainDays:       prediction.MediumPainDays,
		PredictionQuality:    prediction.PredictionQuality,
		PredictedCycleLength: predictedCycleLength,
		Confidence:           MLConfidenceLabel(prediction.PredictionQuality),
		ModelType:            mlModelType,
	}
}
