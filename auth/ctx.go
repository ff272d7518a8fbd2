package auth

import (
	"context"
)

// Subject is the request identity context: the identifier resolved from a
// validated token plus the authority list downstream checks consult. The
// token carries no role claim, so the authority list stays empty; route
// policy distinguishes only authenticated from anonymous callers.
type Subject struct {
	ID          string
	Authorities []string
}

// Authenticated reports whether a subject identifier was resolved.
func (s *Subject) Authenticated() bool {
	return s != nil && s.ID != ""
}

var subjectCtxKey = &contextKey{"subject"}

type contextKey struct {
	name string
}

// WithSubject sets the Subject in the given context
func WithSubject(ctx context.Context, subject *Subject) context.Context {
	return context.WithValue(ctx, subjectCtxKey, subject)
}

// SubjectFromContext finds the subject from the context.
func SubjectFromContext(ctx context.Context) (*Subject, bool) {
	raw, ok := ctx.Value(subjectCtxKey).(*Subject)
	return raw, ok
}
