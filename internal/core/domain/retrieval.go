package domain

import "math"

// NoAnswerSentinel is the literal answer returned when the indexed documents
// cannot support a grounded answer.
const NoAnswerSentinel = "I don't know"

// NoSearchResults is the literal digest returned when the web search yields
// no organic results. It is distinguishable from a search error.
const NoSearchResults = "No good search result found."

// ChunkPayload is the payload stored next to each vector in the index.
type ChunkPayload struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// IndexEntry is the persisted unit in the vector index.
type IndexEntry struct {
	ID      string       `json:"id"`
	Vector  []float32    `json:"vector"`
	Payload ChunkPayload `json:"payload"`
}

// RetrievedChunk is a query-scoped search hit, ordered by descending score.
type RetrievedChunk struct {
	Text   string  `json:"text"`
	Source string  `json:"source"`
	Score  float64 `json:"score"`
}

type Answer struct {
	Text    string           `json:"text"`
	Route   Route            `json:"route"`
	Sources []RetrievedChunk `json:"sources,omitempty"`
}

// RoundScore fixes similarity scores to four decimal digits so that answers
// and test fixtures are reproducible across index versions.
func RoundScore(score float64) float64 {
	return math.Round(score*10000) / 10000
}
