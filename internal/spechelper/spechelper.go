// Package spechelper supplies the shared test entity and testing.TB doubles
// used across the ctrlspec test suites.
package spechelper

import (
	"fmt"
	"runtime"
	"sync"
	"testing"

	"go.llib.dev/ctrlspec/fixtures"
)

// Note is the canonical test entity of the suites.
type Note struct {
	ID    string `ext:"id"`
	Title string
	Body  string
}

// MakeNote returns a populated, unpersisted Note.
func MakeNote(tb testing.TB) Note {
	tb.Helper()
	return *fixtures.New[Note]()
}

// MakeNotes returns n populated, unpersisted Notes.
func MakeNotes(tb testing.TB, n int) []Note {
	tb.Helper()
	return fixtures.Collection[Note](n)
}

// RecorderTB records failures instead of failing the suite, so a test can
// observe that an assertion helper fails when it should.
//
// Fatal style methods stop the goroutine through runtime.Goexit the way
// testing.T does; run the observed code within sandbox.Run to survive it.
type RecorderTB struct {
	testing.TB

	mutex    sync.Mutex
	isFailed bool
	logs     []string
}

func (rtb *RecorderTB) Helper() {}

func (rtb *RecorderTB) Error(args ...any) {
	rtb.recordFailure(fmt.Sprint(args...))
}

func (rtb *RecorderTB) Errorf(format string, args ...any) {
	rtb.recordFailure(fmt.Sprintf(format, args...))
}

func (rtb *RecorderTB) Fatal(args ...any) {
	rtb.recordFailure(fmt.Sprint(args...))
	runtime.Goexit()
}

func (rtb *RecorderTB) Fatalf(format string, args ...any) {
	rtb.recordFailure(fmt.Sprintf(format, args...))
	runtime.Goexit()
}

func (rtb *RecorderTB) Fail() {
	rtb.recordFailure("")
}

func (rtb *RecorderTB) FailNow() {
	rtb.recordFailure("")
	runtime.Goexit()
}

func (rtb *RecorderTB) Failed() bool {
	rtb.mutex.Lock()
	defer rtb.mutex.Unlock()
	return rtb.isFailed
}

// Failures returns the recorded failure messages in order.
func (rtb *RecorderTB) Failures() []string {
	rtb.mutex.Lock()
	defer rtb.mutex.Unlock()
	return append([]string(nil), rtb.logs...)
}

// LastFailure returns the most recent failure message.
func (rtb *RecorderTB) LastFailure() (string, bool) {
	rtb.mutex.Lock()
	defer rtb.mutex.Unlock()
	if len(rtb.logs) == 0 {
		return "", false
	}
	return rtb.logs[len(rtb.logs)-1], true
}

func (rtb *RecorderTB) recordFailure(msg string) {
	rtb.mutex.Lock()
	defer rtb.mutex.Unlock()
	rtb.isFailed = true
	if msg != "" {
		rtb.logs = append(rtb.logs, msg)
	}
}
