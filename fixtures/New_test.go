package fixtures_test

import (
	"testing"
	"time"

	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"go.llib.dev/ctrlspec/fixtures"
	"go.llib.dev/ctrlspec/mvc"
)

type exampleEnt struct {
	ID        string `ext:"id"`
	Name      string
	Count     int
	Ratio     float64
	Active    bool
	CreatedAt time.Time
	Wait      time.Duration
	Nested    nestedEnt
	Ref       *nestedEnt

	hidden string
}

type nestedEnt struct {
	Label string
}

func TestNew(t *testing.T) {
	s := testcase.NewSpec(t)

	ent := testcase.Let(s, func(t *testcase.T) *exampleEnt {
		return fixtures.New[exampleEnt]()
	})

	s.Then("exported fields are populated", func(t *testcase.T) {
		assert.NotEqual(t, "", ent.Get(t).Name)
		assert.NotEqual(t, 0, ent.Get(t).Count)
		assert.True(t, ent.Get(t).Ratio != 0)
		assert.False(t, ent.Get(t).CreatedAt.IsZero())
		assert.NotEqual(t, time.Duration(0), ent.Get(t).Wait)
	})

	s.Then("the id field is left zero", func(t *testcase.T) {
		assert.Equal(t, "", ent.Get(t).ID)
	})

	s.Then("nested structs are populated as well", func(t *testcase.T) {
		assert.NotEqual(t, "", ent.Get(t).Nested.Label)
		t.Must.NotNil(ent.Get(t).Ref)
		assert.NotEqual(t, "", ent.Get(t).Ref.Label)
	})

	s.Then("unexported fields are left alone", func(t *testcase.T) {
		assert.Equal(t, "", ent.Get(t).hidden)
	})
}

func TestCollection(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("it yields the requested amount of populated entities", func(t *testcase.T) {
		n := t.Random.IntB(1, 7)
		ents := fixtures.Collection[exampleEnt](n)
		assert.Equal(t, n, len(ents))
		for _, ent := range ents {
			assert.NotEqual(t, "", ent.Name)
		}
	})

	s.Test("zero length is allowed", func(t *testcase.T) {
		assert.Equal(t, 0, len(fixtures.Collection[exampleEnt](0)))
	})
}

func TestAttrs(t *testing.T) {
	s := testcase.NewSpec(t)

	ent := testcase.Let(s, func(t *testcase.T) *exampleEnt {
		e := fixtures.New[exampleEnt]()
		e.ID = "42"
		return e
	})

	s.Then("exported non-id fields become attributes", func(t *testcase.T) {
		attrs := fixtures.Attrs(ent.Get(t))
		assert.Equal[any](t, ent.Get(t).Name, attrs["Name"])
		assert.Equal[any](t, ent.Get(t).Count, attrs["Count"])
		assert.Equal[any](t, ent.Get(t).Active, attrs["Active"])
	})

	s.Then("the id field is excluded", func(t *testcase.T) {
		attrs := fixtures.Attrs(ent.Get(t))
		_, ok := attrs["ID"]
		assert.False(t, ok)
	})

	s.Then("unexported fields are excluded", func(t *testcase.T) {
		attrs := fixtures.Attrs(ent.Get(t))
		_, ok := attrs["hidden"]
		assert.False(t, ok)
	})

	s.Then("values work by pointer or by value alike", func(t *testcase.T) {
		byPtr := fixtures.Attrs(ent.Get(t))
		byVal := fixtures.Attrs(*ent.Get(t))
		assert.Equal(t, byPtr, byVal)
	})

	s.Test("non struct input yields empty attributes", func(t *testcase.T) {
		assert.Equal(t, mvc.Attrs{}, fixtures.Attrs("not a struct"))
	})
}

func TestParams(t *testing.T) {
	ent := fixtures.New[exampleEnt]()
	params := fixtures.Params(ent)
	attrs := fixtures.Attrs(ent)
	assert.Equal(t, len(attrs), len(params))
	for k, v := range attrs {
		assert.Equal[any](t, v, params[k])
	}
}
