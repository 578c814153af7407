// Package ctrlspec provides declarative expectation macros for testing
// mvc.Controller implementations with the testcase spec framework.
//
// A macro is a group level call that expands into the example blocks a spec
// author would otherwise write by hand. Each expanded check has two halves:
// an expectation armed on a collaborator before the shared request fires,
// and an assertion on the outcome after it fired.
//
//	s := testcase.NewSpec(t)
//
//	notes := doubles.LetFindAll(s, "notes", func(t *testcase.T) []Note {
//		return fixtures.Collection[Note](3)
//	})
//	_ = doubles.LetResponder(s)
//
//	ctrlspec.Request(s, func(t *testcase.T) {
//		// invoke the controller action under test exactly once
//	})
//
//	ctrlspec.ItFindsAllAndAssigns(s, "notes")
//
// Composite macros are the literal concatenation of their simple parts,
// so manual composition is always available as a fallback.
package ctrlspec

import (
	"fmt"

	"go.llib.dev/ctrlspec/mvc"
)

// Symbol identifies a collaborator and its assignment target within a spec.
// It plays the role the instance variable name plays in a hand written spec.
type Symbol string

// Op enumerates the collaborator operations a macro can set expectations on.
type Op string

const (
	OpFindAll  Op = "FindAll"
	OpFindByID Op = "FindByID"
	OpInit     Op = "Init"
	OpSave     Op = "Save"
)

// Call is the record of a single collaborator operation invocation.
// Only the fields relevant to the recorded Op are populated.
type Call struct {
	Op       Op
	Criteria mvc.Criteria // FindAll
	ID       string       // FindByID
	Attrs    mvc.Attrs    // Init
	OK       bool         // Save outcome
}

// Expectation is the before-phase half of an expanded check: a collaborator
// operation that must be observed by the end of the example.
//
// A nil Match accepts any call of the given Op. Exactly constrains the number
// of matching calls when positive; zero means at least one.
type Expectation struct {
	// Macro is the name of the macro (or wrapper) that armed the expectation.
	// It is carried into every failure message so the author can trace a
	// failure back to the one line macro call.
	Macro   string
	Target  Symbol
	Op      Op
	Match   func(Call) bool
	Exactly int
	// Describe is the human readable form of the Match constraint.
	Describe string
}

func (e Expectation) matches(c Call) bool {
	if c.Op != e.Op {
		return false
	}
	if e.Match == nil {
		return true
	}
	return e.Match(c)
}

func (e Expectation) String() string {
	var constraint string
	if e.Describe != "" {
		constraint = fmt.Sprintf(" (%s)", e.Describe)
	}
	return fmt.Sprintf("%s: %s on %q%s", e.Macro, e.Op, e.Target, constraint)
}

// Collaborator is the view the macros need of a registered test double:
// what was invoked on it, and what result it would hand to the action.
//
// The doubles package supplies implementations; anything satisfying this
// interface can be registered and asserted against.
type Collaborator interface {
	// CallsOf returns the recorded calls of the given operation,
	// in invocation order.
	CallsOf(op Op) []Call
	// AssignableResult returns the stubbed value the collaborator serves to
	// the action, which is what an assignment macro expects to be captured.
	AssignableResult() (any, bool)
}

// ResponseRecorder is the view the macros need of the responder double.
type ResponseRecorder interface {
	AssignedValue(name string) (any, bool)
	Rendered() []string
	RedirectedTo() (string, bool)
}
