package doubles

import (
	"go.llib.dev/testcase"

	"go.llib.dev/ctrlspec"
)

// LetResource declares a fresh resource double per example and registers it
// under the given symbol, without arming any expectation on it.
//
// When the same symbol is registered twice within one example,
// the later registration wins for every subsequent lookup.
func LetResource[ENT any](s *testcase.Spec, sym ctrlspec.Symbol, init func(t *testcase.T) *Resource[ENT]) testcase.Var[*Resource[ENT]] {
	return letCollaborator(s, sym, func(t *testcase.T) *Resource[ENT] {
		if init == nil {
			return NewResource[ENT]()
		}
		return init(t)
	})
}

// LetFindAll declares a resource double per example serving the made
// collection from FindAll, registered under the given symbol.
//
// Creating the double also arms the expectation that a FindAll happens,
// satisfying the before half of any macro that references the symbol later.
func LetFindAll[ENT any](s *testcase.Spec, sym ctrlspec.Symbol, mk func(t *testcase.T) []ENT) testcase.Var[*Resource[ENT]] {
	ctrlspec.VerifyExpectations(s)
	return letCollaborator(s, sym, func(t *testcase.T) *Resource[ENT] {
		d := NewResource[ENT]()
		d.Collection = mk(t)
		d.setAssignable(d.Collection)
		ctrlspec.Expect(t, ctrlspec.Expectation{
			Macro:  "doubles.LetFindAll",
			Target: sym,
			Op:     ctrlspec.OpFindAll,
		})
		return d
	})
}

// LetFindByID declares a resource double per example serving the made entity
// from FindByID, registered under the given symbol.
//
// Creating the double also arms the expectation that a FindByID happens.
func LetFindByID[ENT any](s *testcase.Spec, sym ctrlspec.Symbol, mk func(t *testcase.T) ENT) testcase.Var[*Resource[ENT]] {
	ctrlspec.VerifyExpectations(s)
	return letCollaborator(s, sym, func(t *testcase.T) *Resource[ENT] {
		d := NewResource[ENT]()
		d.Item = mk(t)
		d.ItemFound = true
		d.setAssignable(d.Item)
		ctrlspec.Expect(t, ctrlspec.Expectation{
			Macro:  "doubles.LetFindByID",
			Target: sym,
			Op:     ctrlspec.OpFindByID,
		})
		return d
	})
}

// LetInit declares a resource double per example serving the made entity from
// Init, registered under the given symbol. Save accepts by default.
//
// Creating the double also arms the expectation that an Init happens.
func LetInit[ENT any](s *testcase.Spec, sym ctrlspec.Symbol, mk func(t *testcase.T) ENT) testcase.Var[*Resource[ENT]] {
	ctrlspec.VerifyExpectations(s)
	return letCollaborator(s, sym, func(t *testcase.T) *Resource[ENT] {
		d := NewResource[ENT]()
		d.Item = mk(t)
		d.setAssignable(d.Item)
		ctrlspec.Expect(t, ctrlspec.Expectation{
			Macro:  "doubles.LetInit",
			Target: sym,
			Op:     ctrlspec.OpInit,
		})
		return d
	})
}

// LetResponder declares a fresh responder double per example and registers it
// as the example's response recorder.
func LetResponder(s *testcase.Spec) testcase.Var[*Responder] {
	return testcase.Let(s, func(t *testcase.T) *Responder {
		rec := NewResponder()
		ctrlspec.SetResponder(t, rec)
		return rec
	}).EagerLoading(s)
}

// letCollaborator eagerly builds the double so its registration and armed
// expectations are in place before the shared request can fire.
func letCollaborator[ENT any](s *testcase.Spec, sym ctrlspec.Symbol, init func(t *testcase.T) *Resource[ENT]) testcase.Var[*Resource[ENT]] {
	return testcase.Let(s, func(t *testcase.T) *Resource[ENT] {
		d := init(t)
		ctrlspec.RegisterCollaborator(t, sym, d)
		return d
	}).EagerLoading(s)
}
