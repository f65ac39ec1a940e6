package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/avoronov/docqa/internal/core/domain"
)

type classifierFake struct {
	reply string
	err   error
}

func (f *classifierFake) ClassifyQuery(context.Context, string) (string, error) {
	return f.reply, f.err
}

func TestRouteReplies(t *testing.T) {
	cases := []struct {
		name  string
		reply string
		want  domain.Route
	}{
		{name: "plain web", reply: "web", want: domain.RouteWeb},
		{name: "rag mention routes to documents", reply: "RAG please", want: domain.RouteDocuments},
		{name: "documents keyword", reply: "Documents.", want: domain.RouteDocuments},
		{name: "unrelated reply defaults to web", reply: "banana", want: domain.RouteWeb},
		{name: "empty reply defaults to web", reply: "", want: domain.RouteWeb},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := NewRouteUseCase(&classifierFake{reply: tc.reply})
			route, err := uc.Route(context.Background(), "some question")
			if err != nil {
				t.Fatalf("Route() error = %v", err)
			}
			if route != tc.want {
				t.Fatalf("reply %q: expected %s, got %s", tc.reply, tc.want, route)
			}
		})
	}
}

func TestRouteClassifierErrorPropagates(t *testing.T) {
	classifyErr := domain.WrapError(domain.ErrClassificationFailed, "classify", errors.New("model offline"))
	uc := NewRouteUseCase(&classifierFake{err: classifyErr})

	_, err := uc.Route(context.Background(), "some question")
	if !domain.IsKind(err, domain.ErrClassificationFailed) {
		t.Fatalf("expected ErrClassificationFailed, got %v", err)
	}
}
