package httpadapter

import (
	"net/http"

	"github.com/avoronov/docqa/internal/core/domain"
)

// statusRules maps domain error kinds to HTTP statuses. Order matters:
// the first matching kind wins, so more specific kinds come first.
var statusRules = []struct {
	kind   error
	status int
}{
	{domain.ErrInvalidInput, http.StatusBadRequest},
	{domain.ErrDocumentNotFound, http.StatusNotFound},
	{domain.ErrIndexUnavailable, http.StatusServiceUnavailable},
	{domain.ErrTemporary, http.StatusServiceUnavailable},
	{domain.ErrEmbeddingFailed, http.StatusBadGateway},
	{domain.ErrGenerationFailed, http.StatusBadGateway},
	{domain.ErrClassificationFailed, http.StatusBadGateway},
	{domain.ErrSearchUnavailable, http.StatusBadGateway},
}

func mapErrorToHTTPStatus(err error) int {
	for _, rule := range statusRules {
		if domain.IsKind(err, rule.kind) {
			return rule.status
		}
	}
	return http.StatusInternalServerError
}
