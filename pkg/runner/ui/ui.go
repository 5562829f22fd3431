package ui

import (
	"context"

	"go.uber.org/zap"

	"tableflip.dev/folio/pkg/store"
	"tableflip.dev/folio/pkg/tui/app"
)

// UI runs the full-screen browser.
type UI struct {
	Options app.Options
	// Store is watched for lockout changes made by other folio processes when
	// it is a diskv store.
	Store store.KV
}

func (d *UI) Do(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := d.Options
	if dv, ok := d.Store.(*store.Diskv); ok && opts.Watch == nil {
		ch, err := dv.Watch(ctx)
		if err != nil {
			if opts.Logger != nil {
				opts.Logger.Warn("store watch unavailable", zap.Error(err))
			}
		} else {
			opts.Watch = ch
		}
	}
	return app.Run(ctx, opts)
}
