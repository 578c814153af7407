package ctrlspec

import "go.llib.dev/testcase"

// Action is the request under test: the single controller action invocation
// shared by every check of an example.
type Action func(t *testcase.T)

var requestAction = testcase.Var[Action]{
	ID: "ctrlspec:request-action",
	Init: func(t *testcase.T) Action {
		return nil
	},
}

type requestMemo struct{ performed bool }

var requestState = testcase.Var[*requestMemo]{
	ID: "ctrlspec:request-memo",
	Init: func(t *testcase.T) *requestMemo {
		return &requestMemo{}
	},
}

// Request declares the shared request action of the example group.
//
// Lookup is lexical: a nested group without its own Request call inherits the
// nearest ancestor's action, and a nested Request call overrides it for that
// subtree only. The action runs at most once per example, regardless of how
// many checks call PerformRequest.
func Request(s *testcase.Spec, act Action) {
	requestAction.Let(s, func(t *testcase.T) Action {
		return act
	})
}

// PerformRequest fires the group's shared request action.
//
// The first call within an example performs the action; every later call is a
// no-op. The memo is per example state, so each example triggers the action
// afresh. A missing Request declaration is a test failure, not a panic.
func PerformRequest(t *testcase.T) {
	t.Helper()
	memo := requestState.Get(t)
	if memo.performed {
		return
	}
	act := requestAction.Get(t)
	if act == nil {
		t.Fatal("ctrlspec: no request action is defined for this example group; " +
			"declare one with ctrlspec.Request")
		return
	}
	// marked before the action runs, so a failing assertion inside the
	// action cannot cause a re-trigger later in the same example
	memo.performed = true
	act(t)
}

// RequestPerformed reports whether the shared request already fired
// within the current example.
func RequestPerformed(t *testcase.T) bool {
	t.Helper()
	return requestState.Get(t).performed
}
