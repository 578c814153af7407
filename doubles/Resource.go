// Package doubles provides the test doubles the ctrlspec macros assert
// against: a recording resource standing in for the model layer, a recording
// responder standing in for the view layer, and a request value object.
//
// Doubles are created fresh for every example and discarded after it;
// the Let constructors take care of registration and lifecycle.
package doubles

import (
	"context"

	"go.llib.dev/ctrlspec"
	"go.llib.dev/ctrlspec/mvc"
)

// NewResource returns a resource double with permissive defaults:
// lookups succeed and Save reports acceptance.
func NewResource[ENT any]() *Resource[ENT] {
	return &Resource[ENT]{ItemFound: true, SaveOK: true}
}

// Resource is a recording double for mvc.Resource.
//
// The exported fields are the stubbed responses; assign them before the
// request fires. Every operation is recorded, so the macros can verify what
// the action under test invoked.
type Resource[ENT any] struct {
	// Collection is served by FindAll.
	Collection []ENT
	// Item is served by FindByID and Init.
	Item ENT
	// ItemFound is the found report of FindByID.
	ItemFound bool
	// InitFunc optionally replaces the default Init behaviour
	// of serving the stubbed Item.
	InitFunc func(mvc.Attrs) ENT
	// SaveOK is the acceptance report of Save.
	SaveOK bool

	FindAllErr  error
	FindByIDErr error
	SaveErr     error

	calls         []ctrlspec.Call
	assignable    any
	hasAssignable bool
}

func (d *Resource[ENT]) FindAll(ctx context.Context, c mvc.Criteria) ([]ENT, error) {
	d.record(ctrlspec.Call{Op: ctrlspec.OpFindAll, Criteria: c})
	if d.FindAllErr != nil {
		return nil, d.FindAllErr
	}
	return d.Collection, nil
}

func (d *Resource[ENT]) FindByID(ctx context.Context, id string) (ENT, bool, error) {
	d.record(ctrlspec.Call{Op: ctrlspec.OpFindByID, ID: id})
	if d.FindByIDErr != nil {
		var zero ENT
		return zero, false, d.FindByIDErr
	}
	return d.Item, d.ItemFound, nil
}

func (d *Resource[ENT]) Init(attrs mvc.Attrs) ENT {
	d.record(ctrlspec.Call{Op: ctrlspec.OpInit, Attrs: attrs})
	if d.InitFunc != nil {
		return d.InitFunc(attrs)
	}
	return d.Item
}

func (d *Resource[ENT]) Save(ctx context.Context, ptr *ENT) (bool, error) {
	ok := d.SaveOK && d.SaveErr == nil
	d.record(ctrlspec.Call{Op: ctrlspec.OpSave, OK: ok})
	return d.SaveOK, d.SaveErr
}

// CallsOf implements ctrlspec.Collaborator.
func (d *Resource[ENT]) CallsOf(op ctrlspec.Op) []ctrlspec.Call {
	var calls []ctrlspec.Call
	for _, c := range d.calls {
		if c.Op == op {
			calls = append(calls, c)
		}
	}
	return calls
}

// AssignableResult implements ctrlspec.Collaborator.
func (d *Resource[ENT]) AssignableResult() (any, bool) {
	return d.assignable, d.hasAssignable
}

// Calls returns every recorded operation in invocation order.
func (d *Resource[ENT]) Calls() []ctrlspec.Call {
	return append([]ctrlspec.Call(nil), d.calls...)
}

func (d *Resource[ENT]) record(c ctrlspec.Call) {
	d.calls = append(d.calls, c)
}

func (d *Resource[ENT]) setAssignable(v any) {
	d.assignable = v
	d.hasAssignable = true
}

var _ interface {
	mvc.Resource[struct{}]
	ctrlspec.Collaborator
} = (*Resource[struct{}])(nil)
