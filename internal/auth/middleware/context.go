package auth

import "context"

type subjectKey struct{}

// WithSubject records the authenticated user id (the JWT "sub" claim)
// on the context. JWTMiddleware calls this once per request; handlers
// that scope data per user, such as attempt ownership checks, read it
// back with SubjectFromContext.
func WithSubject(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, subjectKey{}, sub)
}

// SubjectFromContext returns the user id set by WithSubject, or ""
// when the request never passed through JWTMiddleware.
func SubjectFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(subjectKey{}).(string); ok {
		return s
	}
	return ""
}
