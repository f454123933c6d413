package sales

import "strings"

// Segment is the product line bucket derived from the model name.
type Segment string

const (
	SegmentSUV     Segment = "SUV"
	SegmentISeries Segment = "i-Series"
	SegmentMSeries Segment = "M-Series"
	SegmentSedan   Segment = "Sedan"
	SegmentOther   Segment = "Other"
)

// SegmentOf maps a model name to its segment by naming convention:
// X-prefixed models are SUVs, i-prefixed are the i-Series, M-prefixed the
// M-Series, everything else a sedan.
func SegmentOf(model string) Segment {
	switch {
	case model == "":
		return SegmentOther
	case strings.HasPrefix(model, "X"):
		return SegmentSUV
	case strings.HasPrefix(model, "i"):
		return SegmentISeries
	case strings.HasPrefix(model, "M"):
		return SegmentMSeries
	default:
		return SegmentSedan
	}
}
