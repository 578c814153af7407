package doubles

import (
	"context"

	"go.llib.dev/ctrlspec/mvc"
)

// NewRequest returns a request double carrying the given context and
// submitted parameters. A nil context falls back to context.Background.
func NewRequest(ctx context.Context, params mvc.Params) *Request {
	if ctx == nil {
		ctx = context.Background()
	}
	if params == nil {
		params = mvc.Params{}
	}
	return &Request{ctx: ctx, params: params}
}

// Request is a value object double for mvc.Request.
type Request struct {
	ctx    context.Context
	params mvc.Params
}

func (r *Request) Context() context.Context {
	return r.ctx
}

func (r *Request) Params() mvc.Params {
	return r.params
}

var _ mvc.Request = (*Request)(nil)
