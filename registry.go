package ctrlspec

import (
	"fmt"
	"strings"

	"go.llib.dev/testcase"
)

// Per example state. testcase rebuilds Vars for every example,
// so collaborators, expectations and the responder never leak between examples.
var (
	collaborators = testcase.Var[map[Symbol]Collaborator]{
		ID: "ctrlspec:collaborators",
		Init: func(t *testcase.T) map[Symbol]Collaborator {
			return map[Symbol]Collaborator{}
		},
	}
	expectations = testcase.Var[*[]Expectation]{
		ID: "ctrlspec:expectations",
		Init: func(t *testcase.T) *[]Expectation {
			return &[]Expectation{}
		},
	}
	responder = testcase.Var[*ResponseRecorder]{
		ID: "ctrlspec:responder",
		Init: func(t *testcase.T) *ResponseRecorder {
			return new(ResponseRecorder)
		},
	}
)

// RegisterCollaborator makes a collaborator visible to the macros under the
// given symbol for the current example.
//
// Registering twice under the same symbol within one example is
// last-write-wins: the later collaborator shadows the earlier for every
// subsequent lookup. This mirrors how duplicated let blocks behave in a hand
// written spec, and is deliberately not guarded against.
func RegisterCollaborator(t *testcase.T, sym Symbol, c Collaborator) {
	t.Helper()
	collaborators.Get(t)[sym] = c
}

// LookupCollaborator returns the collaborator registered under the symbol
// in the current example.
func LookupCollaborator(t *testcase.T, sym Symbol) (Collaborator, bool) {
	t.Helper()
	c, ok := collaborators.Get(t)[sym]
	return c, ok
}

// SetResponder registers the response recorder of the current example.
func SetResponder(t *testcase.T, rec ResponseRecorder) {
	t.Helper()
	*responder.Get(t) = rec
}

// LookupResponder returns the response recorder of the current example.
func LookupResponder(t *testcase.T) (ResponseRecorder, bool) {
	t.Helper()
	rec := *responder.Get(t)
	return rec, rec != nil
}

// Expect arms a before-phase expectation for the current example.
// The expectation is verified after the shared request fired,
// either by the macro that armed it or by the end of example verification.
func Expect(t *testcase.T, exp Expectation) {
	t.Helper()
	list := expectations.Get(t)
	*list = append(*list, exp)
}

// ArmedExpectations returns the expectations armed so far in the current
// example, in arming order.
func ArmedExpectations(t *testcase.T) []Expectation {
	t.Helper()
	return append([]Expectation(nil), *expectations.Get(t)...)
}

// VerifyExpectations installs an end of example verification of every armed
// expectation, the same role a mock controller's Finish call plays.
// Examples that already failed are not verified again to keep the original
// failure message in focus.
func VerifyExpectations(s *testcase.Spec) {
	s.After(func(t *testcase.T) {
		t.Helper()
		if t.Failed() {
			return
		}
		verifyArmed(t)
	})
}

func verifyArmed(t *testcase.T) {
	t.Helper()
	for _, exp := range *expectations.Get(t) {
		verifyExpectation(t, exp)
	}
}

func verifyExpectation(t *testcase.T, exp Expectation) {
	t.Helper()
	c, ok := LookupCollaborator(t, exp.Target)
	if !ok {
		t.Fatal(misconfiguration(exp.Macro, exp.Target))
		return
	}
	if msg, ok := unmet(exp, c.CallsOf(exp.Op)); !ok {
		t.Fatal(msg)
	}
}

// unmet checks an expectation against the recorded calls and, when it is not
// satisfied, renders the failure message. Pure so the message construction is
// testable on its own.
func unmet(exp Expectation, calls []Call) (string, bool) {
	var matching int
	for _, c := range calls {
		if exp.matches(c) {
			matching++
		}
	}
	switch {
	case matching == 0:
		return fmt.Sprintf("%s: expected to be invoked, but it was not%s",
			exp, invocationSummary(exp.Op, calls)), false
	case exp.Exactly > 0 && matching != exp.Exactly:
		return fmt.Sprintf("%s: expected exactly %d matching invocation(s), got %d",
			exp, exp.Exactly, matching), false
	}
	return "", true
}

func invocationSummary(op Op, calls []Call) string {
	if len(calls) == 0 {
		return ""
	}
	var descs []string
	for _, c := range calls {
		descs = append(descs, describeCall(c))
	}
	return fmt.Sprintf("; observed %s invocations: %s", op, strings.Join(descs, ", "))
}

func describeCall(c Call) string {
	switch c.Op {
	case OpFindAll:
		if c.Criteria.IsZero() {
			return "FindAll(<unconstrained>)"
		}
		return fmt.Sprintf("FindAll(%+v)", c.Criteria)
	case OpFindByID:
		return fmt.Sprintf("FindByID(%q)", c.ID)
	case OpInit:
		return fmt.Sprintf("Init(%v)", c.Attrs)
	case OpSave:
		return fmt.Sprintf("Save() -> %v", c.OK)
	default:
		return string(c.Op)
	}
}

func misconfiguration(macro string, sym Symbol) string {
	return fmt.Sprintf("%s: no collaborator is registered under %q; "+
		"create one with the doubles package before the request fires", macro, sym)
}
