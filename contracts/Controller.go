// Package contracts bundles the ctrlspec macros into reusable behavioral
// contracts for conventional controller actions.
package contracts

import (
	"fmt"
	"testing"

	"go.llib.dev/testcase"

	"go.llib.dev/ctrlspec"
	"go.llib.dev/ctrlspec/doubles"
	"go.llib.dev/ctrlspec/fixtures"
	"go.llib.dev/ctrlspec/mvc"
)

// ControllerAction is a contract describing the expected resource interaction
// of a conventional controller action. Running it expands the macro suite of
// the action against the subject controller.
//
// Supported actions and their expectations follow the ctrlspec action table:
// index finds all and assigns, show finds by id and assigns,
// create initializes and saves.
type ControllerAction[ENT any] struct {
	// Subject builds the controller under test, wired to the given resource
	// double. Called once per example.
	Subject func(tb testing.TB, resource mvc.Resource[ENT]) mvc.Controller
	// Action is the conventional action name: index, show or create.
	Action string
	// Resource is the symbol the action is expected to assign its result to.
	Resource ctrlspec.Symbol
	// MakeEnt optionally overrides how example entities are made.
	MakeEnt func(tb testing.TB) ENT
	// MakeParams optionally overrides the submitted request parameters.
	// For the create action the default derives them from a made entity.
	MakeParams func(tb testing.TB) mvc.Params
	// Renders optionally expects the given template to be rendered.
	Renders string
	// RedirectsTo optionally expects a redirect to the given location.
	RedirectsTo string
}

func (c ControllerAction[ENT]) Test(t *testing.T) {
	c.Spec(testcase.NewSpec(t))
}

func (c ControllerAction[ENT]) Benchmark(b *testing.B) {
	c.Spec(testcase.NewSpec(b))
}

func (c ControllerAction[ENT]) Spec(s *testcase.Spec) {
	s.Context(fmt.Sprintf("%s action on %q", c.Action, c.Resource), func(s *testcase.Spec) {
		s.HasSideEffect()

		resource, params := c.arrange(s)
		responder := doubles.LetResponder(s)

		ctrlspec.Request(s, func(t *testcase.T) {
			controller := c.Subject(t, resource.Get(t))
			request := doubles.NewRequest(nil, params.Get(t))
			t.Must.NoError(controller.Serve(responder.Get(t), request))
		})

		ctrlspec.ItBehavesLikeAction(s, c.Action, c.Resource)
		if c.Renders != "" {
			ctrlspec.ItRenders(s, ctrlspec.Symbol(c.Renders))
		}
		if c.RedirectsTo != "" {
			ctrlspec.ItRedirectsTo(s, ctrlspec.Symbol(c.RedirectsTo))
		}
	})
}

func (c ControllerAction[ENT]) arrange(s *testcase.Spec) (testcase.Var[*doubles.Resource[ENT]], testcase.Var[mvc.Params]) {
	var resource testcase.Var[*doubles.Resource[ENT]]
	switch c.Action {
	case "index":
		resource = doubles.LetFindAll(s, c.Resource, func(t *testcase.T) []ENT {
			return []ENT{c.makeEnt(t), c.makeEnt(t), c.makeEnt(t)}
		})
	case "show":
		resource = doubles.LetFindByID(s, c.Resource, c.makeEnt)
	case "create":
		resource = doubles.LetInit(s, c.Resource, c.makeEnt)
	default:
		resource = doubles.LetResource[ENT](s, c.Resource, nil)
	}
	params := testcase.Let(s, func(t *testcase.T) mvc.Params {
		switch {
		case c.MakeParams != nil:
			return c.MakeParams(t)
		case c.Action == "create":
			// a create submits a form; derive it from a made entity
			return fixtures.Params(c.makeEnt(t))
		default:
			return mvc.Params{}
		}
	})
	return resource, params
}

func (c ControllerAction[ENT]) makeEnt(t *testcase.T) ENT {
	if c.MakeEnt != nil {
		return c.MakeEnt(t)
	}
	return *fixtures.New[ENT]()
}
