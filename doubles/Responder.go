package doubles

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go.llib.dev/ctrlspec"
	"go.llib.dev/ctrlspec/mvc"
)

func NewResponder() *Responder {
	return &Responder{assigns: map[string]any{}}
}

// Responder is a recording double for mvc.Responder.
// It captures assignments, rendered template names and redirect locations,
// and lets assertions query them after the request fired.
type Responder struct {
	// RenderErr and RedirectErr are returned by the respective operations,
	// for driving the error paths of an action.
	RenderErr   error
	RedirectErr error

	assigns   map[string]any
	rendered  []string
	redirects []string
}

func (r *Responder) Assign(name string, value any) {
	r.assigns[name] = value
}

func (r *Responder) Render(template string) error {
	r.rendered = append(r.rendered, template)
	return r.RenderErr
}

func (r *Responder) RedirectTo(location string) error {
	r.redirects = append(r.redirects, location)
	return r.RedirectErr
}

// AssignedValue implements ctrlspec.ResponseRecorder.
func (r *Responder) AssignedValue(name string) (any, bool) {
	v, ok := r.assigns[name]
	return v, ok
}

// Rendered implements ctrlspec.ResponseRecorder.
// It returns the rendered template names in rendering order.
func (r *Responder) Rendered() []string {
	return append([]string(nil), r.rendered...)
}

// LastRendered returns the template rendered last.
func (r *Responder) LastRendered() (string, bool) {
	if len(r.rendered) == 0 {
		return "", false
	}
	return r.rendered[len(r.rendered)-1], true
}

// RedirectedTo implements ctrlspec.ResponseRecorder.
// When the action redirected more than once, the last location wins.
func (r *Responder) RedirectedTo() (string, bool) {
	if len(r.redirects) == 0 {
		return "", false
	}
	return r.redirects[len(r.redirects)-1], true
}

// MatchAssigned asserts that the value captured under the given name equals
// the expected one.
func (r *Responder) MatchAssigned(tb testing.TB, name string, expected any) {
	tb.Helper()
	got, ok := r.AssignedValue(name)
	require.True(tb, ok, "no value was assigned under %q", name)
	require.Equal(tb, expected, got)
}

var _ interface {
	mvc.Responder
	ctrlspec.ResponseRecorder
} = (*Responder)(nil)
