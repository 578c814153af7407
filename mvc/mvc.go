// Package mvc defines the minimal capability ports a controller action
// interacts with: a resource for model access, a responder for rendering
// and redirecting, and a request carrying the submitted parameters.
//
// The interfaces are intentionally small. They describe only the operation
// set the ctrlspec macros assert against, so a test double or a real
// adapter can supply them without pulling in a web framework.
package mvc

import "context"

// Resource is the model-layer capability surface of a controller action.
//
// Save reports false when the entity was rejected on business grounds,
// for example a failed validation. The error return is reserved for
// infrastructure failures.
type Resource[ENT any] interface {
	FindAll(ctx context.Context, c Criteria) ([]ENT, error)
	FindByID(ctx context.Context, id string) (ENT, bool, error)
	Init(attrs Attrs) ENT
	Save(ctx context.Context, ptr *ENT) (bool, error)
}

// Responder is the response-building capability surface of a controller action.
//
// Assign captures a named value for the view layer,
// the same way a controller exposes values to its template.
type Responder interface {
	Assign(name string, value any)
	Render(template string) error
	RedirectTo(location string) error
}

// Request represents the incoming request of the action under test.
type Request interface {
	Context() context.Context
	Params() Params
}

// Controller serves a single action against the given responder and request.
type Controller interface {
	Serve(Responder, Request) error
}

// ControllerFunc turns an ordinary function into a Controller.
type ControllerFunc func(Responder, Request) error

func (fn ControllerFunc) Serve(p Responder, r Request) error {
	return fn(p, r)
}

// Params holds the submitted request parameters.
type Params map[string]any

// Lookup returns the parameter stored under the given name.
func (p Params) Lookup(name string) (any, bool) {
	v, ok := p[name]
	return v, ok
}

// String returns the parameter under the given name as a string,
// or the zero string when it is absent or not a string.
func (p Params) String(name string) string {
	v, ok := p[name]
	if !ok {
		return ""
	}
	str, ok := v.(string)
	if !ok {
		return ""
	}
	return str
}

// Attrs is a named attribute set used to initialise an entity.
type Attrs map[string]any

// Filter restricts a query to entities whose fields match the given values.
type Filter map[string]any

// Criteria expresses the constraints of a FindAll query.
//
// The zero Criteria means an unconstrained query.
type Criteria struct {
	Filter Filter
	Limit  int
	Offset int
}

// IsZero reports whether the criteria carries no constraint at all.
func (c Criteria) IsZero() bool {
	return len(c.Filter) == 0 && c.Limit == 0 && c.Offset == 0
}
