package ctrlspec

import (
	"fmt"

	"github.com/google/go-cmp/cmp"

	"go.llib.dev/testcase"
)

// Built-in macro names, as they appear in the macro registry
// and in every failure message.
const (
	MacroFindsAll            = "finds all"
	MacroFindsByID           = "finds by id"
	MacroAssigns             = "assigns"
	MacroFindsAllAndAssigns  = "finds all and assigns"
	MacroFindsByIDAndAssigns = "finds by id and assigns"
	MacroInitializes         = "initializes"
	MacroSaves               = "saves"
	MacroInitializesAndSaves = "initializes and saves"
	MacroRenders             = "renders"
	MacroRedirectsTo         = "redirects to"
)

// ItFindsAll expands into an example that expects a FindAll invocation on the
// target's collaborator, constrained by the given options.
func ItFindsAll(s *testcase.Spec, target Symbol, opts ...Option) {
	c := toMacroConfig(opts)
	expandExpectation(s, MacroFindsAll, target, func(t *testcase.T) Expectation {
		return Expectation{
			Macro:    MacroFindsAll,
			Target:   target,
			Op:       OpFindAll,
			Match:    c.criteriaMatch(),
			Describe: c.criteriaDescribe(),
		}
	})
}

// ItFindsByID expands into an example that expects a FindByID invocation on
// the target's collaborator, constrained to WithID when given.
func ItFindsByID(s *testcase.Spec, target Symbol, opts ...Option) {
	c := toMacroConfig(opts)
	expandExpectation(s, MacroFindsByID, target, func(t *testcase.T) Expectation {
		return Expectation{
			Macro:    MacroFindsByID,
			Target:   target,
			Op:       OpFindByID,
			Match:    c.idMatch(),
			Describe: c.idDescribe(),
		}
	})
}

// ItInitializes expands into an example that expects an Init invocation on
// the target's collaborator. WithParams and WithParamsVar constrain the
// submitted attributes.
func ItInitializes(s *testcase.Spec, target Symbol, opts ...Option) {
	c := toMacroConfig(opts)
	expandExpectation(s, MacroInitializes, target, func(t *testcase.T) Expectation {
		return Expectation{
			Macro:    MacroInitializes,
			Target:   target,
			Op:       OpInit,
			Match:    c.attrsMatch(t),
			Describe: c.attrsDescribe(t),
		}
	})
}

// ItSaves expands into an example that expects exactly one successful Save
// invocation on the target's collaborator.
func ItSaves(s *testcase.Spec, target Symbol, opts ...Option) {
	expandExpectation(s, MacroSaves, target, func(t *testcase.T) Expectation {
		return Expectation{
			Macro:    MacroSaves,
			Target:   target,
			Op:       OpSave,
			Match:    func(c Call) bool { return c.OK },
			Exactly:  1,
			Describe: "exactly once, returning true",
		}
	})
}

// ItAssigns expands into an example asserting that, after the request fired,
// the responder captured an assignment under the target symbol equal to the
// collaborator's stubbed result.
func ItAssigns(s *testcase.Spec, target Symbol, opts ...Option) {
	s.Then(fmt.Sprintf("it assigns %q", target), func(t *testcase.T) {
		t.Helper()
		PerformRequest(t)
		c, ok := LookupCollaborator(t, target)
		if !ok {
			t.Fatal(misconfiguration(MacroAssigns, target))
			return
		}
		rec, ok := LookupResponder(t)
		if !ok {
			t.Fatalf("%s: no responder recorder is registered for this example; "+
				"declare one with doubles.LetResponder", MacroAssigns)
			return
		}
		exp, ok := c.AssignableResult()
		if !ok {
			t.Fatalf("%s: the collaborator under %q carries no stubbed result to compare against",
				MacroAssigns, target)
			return
		}
		got, ok := rec.AssignedValue(string(target))
		if !ok {
			t.Fatalf("%s: expected a value to be assigned under %q, but none was captured",
				MacroAssigns, target)
			return
		}
		if diff := cmp.Diff(exp, got); diff != "" {
			t.Fatalf("%s %q: captured value mismatch (-expected +actual):\n%s",
				MacroAssigns, target, diff)
		}
	})
}

// ItRenders expands into an example asserting that the given template was
// rendered by the time the request finished. The target symbol names the
// template.
func ItRenders(s *testcase.Spec, target Symbol, opts ...Option) {
	s.Then(fmt.Sprintf("it renders the %q template", target), func(t *testcase.T) {
		t.Helper()
		PerformRequest(t)
		rec, ok := LookupResponder(t)
		if !ok {
			t.Fatalf("%s: no responder recorder is registered for this example", MacroRenders)
			return
		}
		for _, rendered := range rec.Rendered() {
			if rendered == string(target) {
				return
			}
		}
		t.Fatalf("%s: expected the %q template to be rendered, rendered templates: %v",
			MacroRenders, target, rec.Rendered())
	})
}

// ItRedirectsTo expands into an example asserting that the request ended in a
// redirect to the given location. The target symbol names the location.
func ItRedirectsTo(s *testcase.Spec, target Symbol, opts ...Option) {
	s.Then(fmt.Sprintf("it redirects to %q", target), func(t *testcase.T) {
		t.Helper()
		PerformRequest(t)
		rec, ok := LookupResponder(t)
		if !ok {
			t.Fatalf("%s: no responder recorder is registered for this example", MacroRedirectsTo)
			return
		}
		location, ok := rec.RedirectedTo()
		if !ok {
			t.Fatalf("%s: expected a redirect to %q, but no redirect happened",
				MacroRedirectsTo, target)
			return
		}
		if location != string(target) {
			t.Fatalf("%s: expected a redirect to %q, got %q",
				MacroRedirectsTo, target, location)
		}
	})
}

// ItFindsAllAndAssigns is the concatenation of ItFindsAll and ItAssigns.
func ItFindsAllAndAssigns(s *testcase.Spec, target Symbol, opts ...Option) {
	ItFindsAll(s, target, opts...)
	ItAssigns(s, target)
}

// ItFindsByIDAndAssigns is the concatenation of ItFindsByID and ItAssigns.
func ItFindsByIDAndAssigns(s *testcase.Spec, target Symbol, opts ...Option) {
	ItFindsByID(s, target, opts...)
	ItAssigns(s, target)
}

// ItInitializesAndSaves is the concatenation of ItInitializes and ItSaves.
func ItInitializesAndSaves(s *testcase.Spec, target Symbol, opts ...Option) {
	ItInitializes(s, target, opts...)
	ItSaves(s, target)
}

// expandExpectation is the shared expansion shape of every expectation macro:
// arm the before-phase expectation ahead of the shared request, then add an
// example that fires the request and verifies the expectation.
//
// Each macro expands into its own child context. Hooks must precede the
// examples of their group, so the Let, Before and the verification sweep
// live next to the generated example instead of on the caller's group,
// and any number of macros can follow each other at the same level.
//
// The expectation itself is built within each example, so options may refer
// to per example values. Expansion is purely additive; a macro never touches
// checks that were registered before it.
func expandExpectation(s *testcase.Spec, macro string, target Symbol, mk func(t *testcase.T) Expectation) {
	s.Context(fmt.Sprintf("%s on %q", macro, target), func(s *testcase.Spec) {
		exp := testcase.Let(s, func(t *testcase.T) Expectation {
			return mk(t)
		})
		s.Before(func(t *testcase.T) {
			t.Helper()
			Expect(t, exp.Get(t))
		})
		VerifyExpectations(s)
		s.Then(fmt.Sprintf("it %s", macro), func(t *testcase.T) {
			t.Helper()
			PerformRequest(t)
			verifyExpectation(t, exp.Get(t))
		})
	})
}
