package sales

import "testing"

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		volume int64
		want   Classification
	}{
		{7001, ClassificationHigh},
		{7000, ClassificationHigh},
		{6999, ClassificationMedium},
		{3000, ClassificationMedium},
		{2999, ClassificationLow},
		{1, ClassificationLow},
	}
	for _, tc := range cases {
		if got := Classify(tc.volume); got != tc.want {
			t.Fatalf("Classify(%d) = %s, want %s", tc.volume, got, tc.want)
		}
	}
}

func TestSegmentOf(t *testing.T) {
	cases := []struct {
		model string
		want  Segment
	}{
		{"X5", SegmentSUV},
		{"XM", SegmentSUV},
		{"i4", SegmentISeries},
		{"iX", SegmentISeries},
		{"M3", SegmentMSeries},
		{"3 Series", SegmentSedan},
		{"7 Series", SegmentSedan},
		{"", SegmentOther},
	}
	for _, tc := range cases {
		if got := SegmentOf(tc.model); got != tc.want {
			t.Fatalf("SegmentOf(%q) = %s, want %s", tc.model, got, tc.want)
		}
	}
}
