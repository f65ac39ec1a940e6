package ollama

import (
	"fmt"
	"strings"

	"github.com/avoronov/docqa/internal/core/domain"
)

// buildAnswerPrompt concatenates chunk texts in retrieval-rank order,
// separated by blank lines, and instructs the model to stay inside them.
func buildAnswerPrompt(question string, chunks []domain.RetrievedChunk) string {
	texts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		texts = append(texts, chunk.Text)
	}
	context := strings.Join(texts, "\n\n")

	return fmt.Sprintf(`You are a helpful academic assistant.

Using ONLY the context below, write a clear and well-structured paragraph
(3-5 sentences) that fully answers the question.

Do NOT use bullet points.
Explain like a project report.

If the answer is not present in the context, say "%s".

Context:
%s

Question:
%s

Answer:
`, domain.NoAnswerSentinel, context, question)
}

func buildWebSummaryPrompt(question, digest string) string {
	return fmt.Sprintf(`Using the web search results below, answer clearly and concisely.

Question:
%s

Search Results:
%s

Answer:
`, question, digest)
}

func buildRoutePrompt(query string) string {
	return fmt.Sprintf(`You are a routing classifier.

Decide whether the user's question should be answered using:
- "documents" -> internal documents / PDFs / notes
- "web" -> general knowledge or current information

Return ONLY one word: documents or web.

Question:
%s

Answer:
`, query)
}
