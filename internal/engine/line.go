package engine

// Point is one vertex of a recognized text region.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Line is one OCR-recognized text span. The engine never mutates a Line.
type Line struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"` // 0..1
	Box        []Point `json:"box,omitempty"`
}

// RawLine is the debug echo of a Line with the polygon dropped.
type RawLine struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// candidate is an ephemeral scoring unit used while an extractor compares
// competing matches. Discarded once the winner is chosen.
type candidate[T any] struct {
	value T
	conf  float64
}

// stage is one step of an extractor's fallback chain. Stages are tried in
// order; the first to report ok short-circuits the rest.
type stage[T any] func(lines []Line) (candidate[T], bool)

// runStages applies a fallback chain over the line list.
func runStages[T any](lines []Line, stages []stage[T]) (candidate[T], bool) {
	for _, s := range stages {
		if c, ok := s(lines); ok {
			return c, true
		}
	}
	var zero candidate[T]
	return zero, false
}
