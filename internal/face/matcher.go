package face

import (
	"math"

	"github.com/aegis-auth/aegis-server/internal/model"
)

// EncodingLength is the length of the vectors produced by the encoder
// service (dlib's 128-dimensional face embedding).
const EncodingLength = 128

// DefaultMatchThreshold mirrors the upstream face_recognition library
// default. Matching is nearest-neighbor style, not exact equality, so the
// threshold must stay a fixed documented constant.
const DefaultMatchThreshold = 0.6

var _ model.FaceMatcher = (*Matcher)(nil)

// Matcher compares face encodings by Euclidean distance against a fixed
// threshold.
type Matcher struct {
	threshold float64
}

// NewMatcher creates a matcher with the given distance threshold.
// Non-positive thresholds fall back to the default.
func NewMatcher(threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}
	return &Matcher{threshold: threshold}
}

// Matches reports whether the distance between two encodings is within the
// threshold. Encodings of mismatched length never match.
func (m *Matcher) Matches(a, b []float64) bool {
	if len(a) == 0 || len(a) != len(b) {
		return false
	}
	return Distance(a, b) <= m.threshold
}

// Distance returns the Euclidean distance between two encodings of equal
// length.
func Distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
