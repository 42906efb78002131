// Package metric provides distance functions for float32 vectors.
package metric

import "math"

// Func calculates the distance between two vectors of equal length.
// Smaller values mean closer vectors.
type Func func(v1, v2 []float32) (float32, error)

// Type selects a distance function.
type Type int

const (
	// TypeSquaredL2 is the squared Euclidean distance.
	TypeSquaredL2 Type = iota
	// TypeCosine is the cosine distance (1 - cosine similarity).
	TypeCosine
)

// String returns a string representation of the metric type.
func (t Type) String() string {
	switch t {
	case TypeSquaredL2:
		return "SquaredL2"
	case TypeCosine:
		return "Cosine"
	default:
		return "Unknown"
	}
}

// New returns the distance function for the given type, or nil for an
// unknown type.
func New(t Type) Func {
	switch t {
	case TypeSquaredL2:
		return SquaredL2
	case TypeCosine:
		return CosineDistance
	default:
		return nil
	}
}

// SizeMismatchError reports vectors of different lengths.
type SizeMismatchError struct {
	Len1, Len2 int
}

// Error returns the error message for a size mismatch.
func (e *SizeMismatchError) Error() string {
	return "vector sizes do not match"
}

// Dot calculates the dot product of two float32 slices of equal length.
func Dot(v1, v2 []float32) float32 {
	var sum float32
	for i := range v1 {
		sum += v1[i] * v2[i]
	}
	return sum
}

// Magnitude calculates the magnitude (length) of a float32 slice.
func Magnitude(v []float32) float32 {
	return float32(math.Sqrt(float64(Dot(v, v))))
}

// SquaredL2 calculates the squared L2 distance between two float32 slices.
func SquaredL2(v1, v2 []float32) (float32, error) {
	if len(v1) != len(v2) {
		return 0, &SizeMismatchError{Len1: len(v1), Len2: len(v2)}
	}

	var sum float32
	for i := range v1 {
		d := v1[i] - v2[i]
		sum += d * d
	}
	return sum, nil
}

// CosineSimilarity calculates the cosine similarity between two float32
// slices. Zero-magnitude inputs yield similarity 0.
func CosineSimilarity(v1, v2 []float32) (float32, error) {
	if len(v1) != len(v2) {
		return 0, &SizeMismatchError{Len1: len(v1), Len2: len(v2)}
	}

	magA := Magnitude(v1)
	magB := Magnitude(v2)
	if magA == 0 || magB == 0 {
		return 0, nil
	}
	return Dot(v1, v2) / (magA * magB), nil
}

// CosineDistance calculates 1 - cosine similarity, so it sorts the same
// direction as SquaredL2.
func CosineDistance(v1, v2 []float32) (float32, error) {
	sim, err := CosineSimilarity(v1, v2)
	if err != nil {
		return 0, err
	}
	return 1 - sim, nil
}
