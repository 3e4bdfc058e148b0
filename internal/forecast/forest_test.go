package forecast

import (
	"math"
	"testing"
)

func trainingData() ([][]float64, []float64) {
	var x [][]float64
	var y []float64
	for i := 0; i < 40; i++ {
		f1 := float64(i)
		f2 := math.Sin(float64(i) / 3)
		x = append(x, []float64{f1, f2})
		y = append(y, 2*f1+5*f2+10)
	}
	return x, y
}

func TestFitForestDeterministic(t *testing.T) {
	x, y := trainingData()
	p := DefaultForestParams()

	f1, err := FitForest(x, y, p)
	if err != nil {
		t.Fatalf("Unexpected fit error: %v", err)
	}
	f2, err := FitForest(x, y, p)
	if err != nil {
		t.Fatalf("Unexpected fit error: %v", err)
	}

	probe := []float64{20.5, math.Sin(20.5 / 3)}
	if f1.Predict(probe) != f2.Predict(probe) {
		t.Errorf("Same data and seed produced different predictions: %f vs %f",
			f1.Predict(probe), f2.Predict(probe))
	}
}

func TestFitForestSeedChangesPrediction(t *testing.T) {
	x, y := trainingData()
	p1 := DefaultForestParams()
	p2 := DefaultForestParams()
	p2.Seed = 7

	f1, _ := FitForest(x, y, p1)
	f2, _ := FitForest(x, y, p2)

	probe := []float64{11.5, math.Sin(11.5 / 3)}
	if f1.Predict(probe) == f2.Predict(probe) {
		t.Log("Different seeds produced identical predictions; acceptable but unexpected")
	}
}

func TestFitForestEmptyTraining(t *testing.T) {
	if _, err := FitForest(nil, nil, DefaultForestParams()); err != ErrInsufficientData {
		t.Errorf("Expected ErrInsufficientData, got %v", err)
	}
}

func TestForestInterpolates(t *testing.T) {
	x, y := trainingData()
	f, err := FitForest(x, y, DefaultForestParams())
	if err != nil {
		t.Fatalf("Unexpected fit error: %v", err)
	}

	// Prediction near a training point should be near its target.
	pred := f.Predict(x[20])
	if math.Abs(pred-y[20]) > 10 {
		t.Errorf("Prediction %f too far from target %f", pred, y[20])
	}
}

func TestForestConstantTarget(t *testing.T) {
	x := [][]float64{{1}, {2}, {3}, {4}}
	y := []float64{7, 7, 7, 7}
	f, err := FitForest(x, y, DefaultForestParams())
	if err != nil {
		t.Fatalf("Unexpected fit error: %v", err)
	}
	if got := f.Predict([]float64{2.5}); got != 7 {
		t.Errorf("Expected constant prediction 7, got %f", got)
	}
}
