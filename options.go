package ctrlspec

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/go-cmp/cmp"

	"go.llib.dev/testcase"

	"go.llib.dev/ctrlspec/mvc"
)

// Option narrows what a macro expects from the collaborator operation,
// for example the criteria of a FindAll call. An omitted option asserts
// nothing about the corresponding constraint.
type Option interface{ configure(*macroConfig) }

type optionFunc func(*macroConfig)

func (fn optionFunc) configure(c *macroConfig) { fn(c) }

type macroConfig struct {
	limit     *int
	offset    *int
	filter    mvc.Filter
	id        *string
	params    mvc.Params
	paramsVar *testcase.Var[mvc.Params]
}

func (c macroConfig) expectedParams(t *testcase.T) (mvc.Params, bool) {
	if c.paramsVar != nil {
		return c.paramsVar.Get(t), true
	}
	if c.params != nil {
		return c.params, true
	}
	return nil, false
}

func toMacroConfig(opts []Option) macroConfig {
	var c macroConfig
	for _, opt := range opts {
		opt.configure(&c)
	}
	return c
}

// Limit expects the query criteria to carry the given limit.
func Limit(n int) Option {
	return optionFunc(func(c *macroConfig) { c.limit = &n })
}

// Offset expects the query criteria to carry the given offset.
func Offset(n int) Option {
	return optionFunc(func(c *macroConfig) { c.offset = &n })
}

// Where expects the query criteria to filter on the given field value pair.
// Repeated Where options accumulate.
func Where(field string, value any) Option {
	return optionFunc(func(c *macroConfig) {
		if c.filter == nil {
			c.filter = mvc.Filter{}
		}
		c.filter[field] = value
	})
}

// WithID expects the lookup to target the given identifier.
func WithID(id string) Option {
	return optionFunc(func(c *macroConfig) { c.id = &id })
}

// WithParams expects the initialisation attributes to equal the given
// submitted parameters.
func WithParams(params mvc.Params) Option {
	return optionFunc(func(c *macroConfig) { c.params = params })
}

// WithParamsVar is the deferred form of WithParams: the expected parameters
// are resolved from the Var within each example, so the option can reference
// per example values at group definition time.
func WithParamsVar(v testcase.Var[mvc.Params]) Option {
	return optionFunc(func(c *macroConfig) { c.paramsVar = &v })
}

// criteriaMatch builds the Match half of a FindAll expectation.
// Constraints compose; an empty config matches every call.
func (c macroConfig) criteriaMatch() func(Call) bool {
	if c.limit == nil && c.offset == nil && c.filter == nil {
		return nil
	}
	return func(call Call) bool {
		if c.limit != nil && call.Criteria.Limit != *c.limit {
			return false
		}
		if c.offset != nil && call.Criteria.Offset != *c.offset {
			return false
		}
		for field, value := range c.filter {
			if !cmp.Equal(call.Criteria.Filter[field], value) {
				return false
			}
		}
		return true
	}
}

func (c macroConfig) criteriaDescribe() string {
	var parts []string
	if c.limit != nil {
		parts = append(parts, fmt.Sprintf("limit=%d", *c.limit))
	}
	if c.offset != nil {
		parts = append(parts, fmt.Sprintf("offset=%d", *c.offset))
	}
	fields := make([]string, 0, len(c.filter))
	for field := range c.filter {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s=%v", field, c.filter[field]))
	}
	return strings.Join(parts, ", ")
}

func (c macroConfig) idMatch() func(Call) bool {
	if c.id == nil {
		return nil
	}
	return func(call Call) bool { return call.ID == *c.id }
}

func (c macroConfig) idDescribe() string {
	if c.id == nil {
		return ""
	}
	return fmt.Sprintf("id=%q", *c.id)
}

func (c macroConfig) attrsMatch(t *testcase.T) func(Call) bool {
	params, ok := c.expectedParams(t)
	if !ok {
		return nil
	}
	return func(call Call) bool {
		return cmp.Equal(mvc.Attrs(params), call.Attrs)
	}
}

func (c macroConfig) attrsDescribe(t *testcase.T) string {
	params, ok := c.expectedParams(t)
	if !ok {
		return ""
	}
	return fmt.Sprintf("attrs=%v", mvc.Attrs(params))
}
