package sales

// Classification is the High/Medium/Low bucket derived from sales volume.
type Classification string

const (
	ClassificationHigh   Classification = "High"
	ClassificationMedium Classification = "Medium"
	ClassificationLow    Classification = "Low"
)

// Volume thresholds for the classification buckets.
const (
	HighVolumeThreshold   = 7000
	MediumVolumeThreshold = 3000
)

// Classify maps a sales volume to its classification bucket. Total over
// all volumes; the same function backs record construction and every view
// that buckets by classification.
func Classify(volume int64) Classification {
	switch {
	case volume >= HighVolumeThreshold:
		return ClassificationHigh
	case volume >= MediumVolumeThreshold:
		return ClassificationMedium
	default:
		return ClassificationLow
	}
}
