package policy

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

//go:embed authz.rego
var authzModule string

const authzQuery = "data.trainstation.authz.allow"

// Request is the input document the policy is evaluated against.
type Request struct {
	Method   string
	Resource string
	UserID   uint
	IsStaff  bool
}

func (r Request) input() map[string]any {
	return map[string]any{
		"method":   r.Method,
		"resource": r.Resource,
		"user": map[string]any{
			"id":       int(r.UserID),
			"is_staff": r.IsStaff,
		},
	}
}

// Authorizer evaluates the compiled access policy.
type Authorizer struct {
	query rego.PreparedEvalQuery
}

func New(ctx context.Context) (*Authorizer, error) {
	query, err := rego.New(
		rego.Query(authzQuery),
		rego.Module("authz.rego", authzModule),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("compile policy: %w", err)
	}
	return &Authorizer{query: query}, nil
}

func (a *Authorizer) Allow(ctx context.Context, req Request) (bool, error) {
	rs, err := a.query.Eval(ctx, rego.EvalInput(req.input()))
	if err != nil {
		return false, fmt.Errorf("evaluate policy: %w", err)
	}
	return rs.Allowed(), nil
}
