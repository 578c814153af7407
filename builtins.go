package ctrlspec

import (
	"fmt"
	"sync"

	"go.llib.dev/testcase"
)

// Expander is the expansion function of a registered macro.
// Invoking it inside a group body has the same effect as hand writing the
// example blocks it expands into.
type Expander func(s *testcase.Spec, target Symbol, opts ...Option)

var macroRegistry = struct {
	mutex sync.RWMutex
	table map[string]Expander
}{table: map[string]Expander{}}

// RegisterMacro makes a macro invocable by name through Invoke.
// It is meant to be called once at process start, the way the built-in
// macros register themselves. Registering an already taken name replaces
// the earlier expander.
func RegisterMacro(name string, fn Expander) {
	if name == "" {
		panic("ctrlspec: macro registration requires a name")
	}
	if fn == nil {
		panic(fmt.Sprintf("ctrlspec: macro %q registration requires an expander", name))
	}
	macroRegistry.mutex.Lock()
	defer macroRegistry.mutex.Unlock()
	macroRegistry.table[name] = fn
}

// LookupMacro returns the expander registered under the given name.
func LookupMacro(name string) (Expander, bool) {
	macroRegistry.mutex.RLock()
	defer macroRegistry.mutex.RUnlock()
	fn, ok := macroRegistry.table[name]
	return fn, ok
}

// Invoke expands the named macro into the group.
//
// An unknown name expands into a failing example instead of panicking at
// group definition time, so a typo surfaces as an ordinary, local test
// failure naming the macro.
func Invoke(s *testcase.Spec, name string, target Symbol, opts ...Option) {
	fn, ok := LookupMacro(name)
	if !ok {
		s.Test(fmt.Sprintf("macro %q on %q", name, target), func(t *testcase.T) {
			t.Fatalf("ctrlspec: no macro is registered under %q", name)
		})
		return
	}
	fn(s, target, opts...)
}

// builtins is the enumerated table of the built-in macros.
// A table instead of name synthesis keeps every macro variant explicit.
var builtins = map[string]Expander{
	MacroFindsAll:            ItFindsAll,
	MacroFindsByID:           ItFindsByID,
	MacroAssigns:             ItAssigns,
	MacroFindsAllAndAssigns:  ItFindsAllAndAssigns,
	MacroFindsByIDAndAssigns: ItFindsByIDAndAssigns,
	MacroInitializes:         ItInitializes,
	MacroSaves:               ItSaves,
	MacroInitializesAndSaves: ItInitializesAndSaves,
	MacroRenders:             ItRenders,
	MacroRedirectsTo:         ItRedirectsTo,
}

func init() {
	for name, fn := range builtins {
		RegisterMacro(name, fn)
	}
}

// actionMacros maps conventional controller action names to the composite
// macro describing their expected resource interaction.
var actionMacros = map[string]string{
	"index":  MacroFindsAllAndAssigns,
	"show":   MacroFindsByIDAndAssigns,
	"create": MacroInitializesAndSaves,
}

// ActionMacro returns the macro name conventionally associated with the
// given controller action.
func ActionMacro(action string) (string, bool) {
	name, ok := actionMacros[action]
	return name, ok
}

// ItBehavesLikeAction expands the macro conventionally associated with the
// given controller action name for the target symbol.
func ItBehavesLikeAction(s *testcase.Spec, action string, target Symbol, opts ...Option) {
	name, ok := ActionMacro(action)
	if !ok {
		s.Test(fmt.Sprintf("%s action on %q", action, target), func(t *testcase.T) {
			t.Fatalf("ctrlspec: no macro convention exists for the %q action", action)
		})
		return
	}
	Invoke(s, name, target, opts...)
}
