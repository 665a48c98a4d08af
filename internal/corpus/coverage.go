package corpus

import (
	"github.com/samber/lo"

	"autocorrect/internal/vocab"
)

const (
	DefaultTrainRatio = 0.9
	DefaultSampleSize = 1000
)

// Split cuts tokens at ratio: the head is for training, the tail is held out.
func Split(tokens []string, ratio float64) (train, heldOut []string) {
	ratio = min(max(ratio, 0), 1)
	idx := int(float64(len(tokens)) * ratio)
	return tokens[:idx], tokens[idx:]
}

// CoverageReport tells how much of a held-out sample the vocabulary knows.
type CoverageReport struct {
	SampleSize int     `json:"sample_size"`
	Known      int     `json:"known"`
	Unknown    int     `json:"unknown"`
	Accuracy   float64 `json:"accuracy"` // percent of the sample that is known
}

// Coverage checks a random sample of up to sampleSize held-out tokens against
// m. A sampleSize <= 0 samples everything.
func Coverage(m *vocab.Model, heldOut []string, sampleSize int) CoverageReport {
	if sampleSize <= 0 || sampleSize > len(heldOut) {
		sampleSize = len(heldOut)
	}
	if sampleSize == 0 {
		return CoverageReport{}
	}
	sample := lo.Samples(heldOut, sampleSize)
	known := lo.CountBy(sample, m.Contains)
	return CoverageReport{
		SampleSize: sampleSize,
		Known:      known,
		Unknown:    sampleSize - known,
		Accuracy:   float64(known) / float64(sampleSize) * 100,
	}
}
