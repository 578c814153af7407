package ctrlspec_test

import (
	"sync"
	"testing"

	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/sandbox"

	"go.llib.dev/ctrlspec"
	"go.llib.dev/ctrlspec/doubles"
	"go.llib.dev/ctrlspec/fixtures"
	"go.llib.dev/ctrlspec/internal/spechelper"
	"go.llib.dev/ctrlspec/mvc"
)

func TestItFindsAllAndAssigns(t *testing.T) {
	s := testcase.NewSpec(t)

	notes := doubles.LetFindAll(s, "notes", func(t *testcase.T) []spechelper.Note {
		return spechelper.MakeNotes(t, 3)
	})
	responder := doubles.LetResponder(s)

	ctrlspec.Request(s, func(t *testcase.T) {
		controller := listNotes(notes.Get(t), mvc.Criteria{})
		t.Must.NoError(controller.Serve(responder.Get(t), doubles.NewRequest(nil, nil)))
	})

	ctrlspec.ItFindsAllAndAssigns(s, "notes")

	s.Then("the assigned collection is the stubbed one", func(t *testcase.T) {
		ctrlspec.PerformRequest(t)
		responder.Get(t).MatchAssigned(t, "notes", notes.Get(t).Collection)
	})
}

func TestItFindsAll_withCriteriaOptions(t *testing.T) {
	s := testcase.NewSpec(t)

	notes := doubles.LetFindAll(s, "notes", func(t *testcase.T) []spechelper.Note {
		return spechelper.MakeNotes(t, 2)
	})
	_ = doubles.LetResponder(s)

	s.Context("the action queries with a limit", func(s *testcase.Spec) {
		ctrlspec.Request(s, func(t *testcase.T) {
			controller := listNotes(notes.Get(t), mvc.Criteria{Limit: 2})
			t.Must.NoError(controller.Serve(responderOf(t), doubles.NewRequest(nil, nil)))
		})

		// the constrained and the unconstrained forms must both hold
		ctrlspec.ItFindsAll(s, "notes", ctrlspec.Limit(2))
		ctrlspec.ItFindsAll(s, "notes")
	})

	s.Context("the action queries with a filter and offset", func(s *testcase.Spec) {
		ctrlspec.Request(s, func(t *testcase.T) {
			criteria := mvc.Criteria{
				Filter: mvc.Filter{"Title": "daily"},
				Offset: 4,
			}
			controller := listNotes(notes.Get(t), criteria)
			t.Must.NoError(controller.Serve(responderOf(t), doubles.NewRequest(nil, nil)))
		})

		ctrlspec.ItFindsAll(s, "notes",
			ctrlspec.Where("Title", "daily"),
			ctrlspec.Offset(4))
	})
}

func TestItFindsByIDAndAssigns(t *testing.T) {
	s := testcase.NewSpec(t)

	note := doubles.LetFindByID(s, "note", func(t *testcase.T) spechelper.Note {
		n := spechelper.MakeNote(t)
		n.ID = "42"
		return n
	})
	responder := doubles.LetResponder(s)

	ctrlspec.Request(s, func(t *testcase.T) {
		controller := showNote(note.Get(t))
		request := doubles.NewRequest(nil, mvc.Params{"id": "42"})
		t.Must.NoError(controller.Serve(responder.Get(t), request))
	})

	ctrlspec.ItFindsByIDAndAssigns(s, "note", ctrlspec.WithID("42"))
	ctrlspec.ItRenders(s, "notes/show")
}

func TestItInitializesAndSaves(t *testing.T) {
	s := testcase.NewSpec(t)

	note := doubles.LetInit(s, "note", func(t *testcase.T) spechelper.Note {
		return spechelper.MakeNote(t)
	})
	responder := doubles.LetResponder(s)

	params := testcase.Let(s, func(t *testcase.T) mvc.Params {
		return fixtures.Params(note.Get(t).Item)
	})

	ctrlspec.Request(s, func(t *testcase.T) {
		controller := createNote(note.Get(t))
		request := doubles.NewRequest(nil, params.Get(t))
		t.Must.NoError(controller.Serve(responder.Get(t), request))
	})

	ctrlspec.ItInitializesAndSaves(s, "note")
	ctrlspec.ItRedirectsTo(s, "/notes")

	s.Context("the initialisation attributes are the submitted parameters", func(s *testcase.Spec) {
		ctrlspec.ItInitializes(s, "note", ctrlspec.WithParamsVar(params))
	})
}

func TestItInitializesAndSaves_rejectedEntityRendersAgain(t *testing.T) {
	s := testcase.NewSpec(t)

	note := doubles.LetInit(s, "note", func(t *testcase.T) spechelper.Note {
		return spechelper.MakeNote(t)
	})
	_ = doubles.LetResponder(s)

	s.Before(func(t *testcase.T) {
		note.Get(t).SaveOK = false
	})

	ctrlspec.Request(s, func(t *testcase.T) {
		controller := createNote(note.Get(t))
		t.Must.NoError(controller.Serve(responderOf(t), doubles.NewRequest(nil, nil)))
	})

	ctrlspec.ItInitializes(s, "note")
	ctrlspec.ItRenders(s, "notes/new")
	ctrlspec.ItAssigns(s, "note")
}

func TestMacroExpansion_manyMacrosOnOneGroupLevel(t *testing.T) {
	// hooks may not follow an example within a testcase group,
	// so every macro must expand into its own child context;
	// stacking macros on one level has to survive group definition
	out := sandbox.Run(func() {
		s := testcase.NewSpec(nil)
		ctrlspec.Request(s, func(t *testcase.T) {})
		ctrlspec.ItFindsAll(s, "notes", ctrlspec.Limit(2))
		ctrlspec.ItFindsAll(s, "notes")
		ctrlspec.ItFindsAllAndAssigns(s, "notes")
		ctrlspec.ItInitializesAndSaves(s, "note")
		ctrlspec.ItRenders(s, "notes/index")
		ctrlspec.ItRedirectsTo(s, "/notes")
	})
	assert.True(t, out.OK, "stacked macro expansion must not fail at definition time")
}

func TestMacroComposability(t *testing.T) {
	// the composite macro and the concatenation of its parts
	// must expand into observably identical checks
	s := testcase.NewSpec(t)

	notes := doubles.LetFindAll(s, "notes", func(t *testcase.T) []spechelper.Note {
		return spechelper.MakeNotes(t, 3)
	})
	_ = doubles.LetResponder(s)

	ctrlspec.Request(s, func(t *testcase.T) {
		controller := listNotes(notes.Get(t), mvc.Criteria{})
		t.Must.NoError(controller.Serve(responderOf(t), doubles.NewRequest(nil, nil)))
	})

	var (
		mutex      sync.Mutex
		expansions = map[string]map[string]int{}
	)
	observe := func(group string) func(t *testcase.T) {
		return func(t *testcase.T) {
			mutex.Lock()
			defer mutex.Unlock()
			seen, ok := expansions[group]
			if !ok {
				seen = map[string]int{}
				expansions[group] = seen
			}
			seen["examples"]++
			for _, exp := range ctrlspec.ArmedExpectations(t) {
				if exp.Macro == "doubles.LetFindAll" {
					continue
				}
				seen[exp.String()]++
			}
		}
	}

	s.Context("composite macro", func(s *testcase.Spec) {
		s.After(observe("composite"))
		ctrlspec.ItFindsAllAndAssigns(s, "notes")
	})

	s.Context("manually composed parts", func(s *testcase.Spec) {
		s.After(observe("manual"))
		ctrlspec.ItFindsAll(s, "notes")
		ctrlspec.ItAssigns(s, "notes")
	})

	t.Cleanup(func() {
		mutex.Lock()
		defer mutex.Unlock()
		assert.Equal(t, expansions["composite"], expansions["manual"],
			"both forms must generate the same examples arming the same expectations")
	})
}

func TestMacroExpansionIsAdditive(t *testing.T) {
	s := testcase.NewSpec(t)

	notes := doubles.LetFindAll(s, "notes", func(t *testcase.T) []spechelper.Note {
		return spechelper.MakeNotes(t, 1)
	})
	_ = doubles.LetResponder(s)

	ctrlspec.Request(s, func(t *testcase.T) {
		controller := listNotes(notes.Get(t), mvc.Criteria{})
		t.Must.NoError(controller.Serve(responderOf(t), doubles.NewRequest(nil, nil)))
	})

	ctrlspec.ItFindsAll(s, "notes")

	s.Then("checks armed by an earlier macro are still present", func(t *testcase.T) {
		before := len(ctrlspec.ArmedExpectations(t))
		assert.True(t, 0 < before, "the earlier macro should have armed an expectation")

		// a later arming never removes or mutates earlier ones
		ctrlspec.Expect(t, ctrlspec.Expectation{
			Macro:  "test",
			Target: "notes",
			Op:     ctrlspec.OpFindAll,
		})
		armed := ctrlspec.ArmedExpectations(t)
		assert.Equal(t, before+1, len(armed))

		ctrlspec.PerformRequest(t)
	})
}

func TestItBehavesLikeAction(t *testing.T) {
	s := testcase.NewSpec(t)

	notes := doubles.LetFindAll(s, "notes", func(t *testcase.T) []spechelper.Note {
		return spechelper.MakeNotes(t, 3)
	})
	_ = doubles.LetResponder(s)

	ctrlspec.Request(s, func(t *testcase.T) {
		controller := listNotes(notes.Get(t), mvc.Criteria{})
		t.Must.NoError(controller.Serve(responderOf(t), doubles.NewRequest(nil, nil)))
	})

	ctrlspec.ItBehavesLikeAction(s, "index", "notes")
}

func TestActionMacro(t *testing.T) {
	for action, expected := range map[string]string{
		"index":  ctrlspec.MacroFindsAllAndAssigns,
		"show":   ctrlspec.MacroFindsByIDAndAssigns,
		"create": ctrlspec.MacroInitializesAndSaves,
	} {
		name, ok := ctrlspec.ActionMacro(action)
		assert.True(t, ok)
		assert.Equal(t, expected, name)
	}
	_, ok := ctrlspec.ActionMacro("destroy")
	assert.False(t, ok)
}

// responderOf returns the response recorder of the current example,
// for request actions that don't hold the responder Var themselves.
func responderOf(t *testcase.T) mvc.Responder {
	t.Helper()
	rec, ok := ctrlspec.LookupResponder(t)
	t.Must.True(ok, "the example group must declare doubles.LetResponder")
	return rec.(mvc.Responder)
}
