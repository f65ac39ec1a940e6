package domain

import "strings"

// Route labels which answering path serves a query.
type Route string

const (
	RouteDocuments Route = "documents"
	RouteWeb       Route = "web"
)

// ParseRouteReply maps a raw classifier reply to a route. The classifier is
// asked for a single token, but replies are free text in practice, so the
// match is a case-insensitive substring check. Anything that does not mention
// the document path falls through to web: the broader path is the safer
// default on ambiguous output.
func ParseRouteReply(reply string) Route {
	lowered := strings.ToLower(reply)
	if strings.Contains(lowered, "rag") || strings.Contains(lowered, "document") {
		return RouteDocuments
	}
	return RouteWeb
}
