package context

import (
	"context"

	"github.com/groundtrade/inventory/constant"
	"github.com/groundtrade/inventory/model"
)

// WithActor embeds the authenticated actor into the context.
func WithActor(ctx context.Context, actor *model.Actor) context.Context {
	return context.WithValue(ctx, constant.ActorKey, actor)
}

// GetActor returns the authenticated actor from the context.
func GetActor(ctx context.Context) (*model.Actor, bool) {
	v := ctx.Value(constant.ActorKey)
	if v == nil {
		return nil, false
	}
	actor, ok := v.(*model.Actor)
	return actor, ok
}
