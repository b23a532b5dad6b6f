package train

import "github.com/katalvlaran/gohmm/model"

// IterationLog records one EM iteration's diagnostics.
type IterationLog struct {
	Iteration     int
	NumSkipped    int
	LogLikelihood float64
	Delta         float64
}

// Result is returned by BaumWelch and ViterbiTrain.
type Result struct {
	Model            *model.Model
	Iterations       []IterationLog
	TotalImprovement float64
}
