package serve

import (
	"context"

	"tableflip.dev/folio/pkg/web"
)

// Serve runs the HTTP surface on Addr until ctx is done.
type Serve struct {
	Options web.Options
	Addr    string
}

func (s *Serve) Do(ctx context.Context) error {
	return web.New(s.Options).Run(ctx, s.Addr)
}
