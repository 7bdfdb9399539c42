package lineitem

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/angelmondragon/shoppingcart/pkg/errors"
)

// ModelResolver loads the external entity a shipping item is associated with.
type ModelResolver interface {
	ResolveModel(ctx context.Context, model string, id Identifier) (any, error)
}

type ModelResolverFunc func(ctx context.Context, model string, id Identifier) (any, error)

func (fn ModelResolverFunc) ResolveModel(ctx context.Context, model string, id Identifier) (any, error) {
	return fn(ctx, model, id)
}

// Associate records the model the item refers to. A string is stored as-is;
// any other value is recorded by its Go type name. nil clears the association.
func (s *ShippingItem) Associate(model any) *ShippingItem {
	switch m := model.(type) {
	case nil:
		s.associatedModel = ""
	case string:
		s.associatedModel = m
	default:
		s.associatedModel = strings.TrimPrefix(fmt.Sprintf("%T", m), "*")
	}
	return s
}

func (s *ShippingItem) AssociatedModel() string {
	return s.associatedModel
}

// Model resolves the associated entity by the item's id. It returns nil, nil
// when no model is associated.
func (s *ShippingItem) Model(ctx context.Context, resolver ModelResolver) (any, error) {
	if s.associatedModel == "" {
		return nil, nil
	}
	if resolver == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "no model resolver configured").
			WithDetails(map[string]any{"model": s.associatedModel})
	}
	entity, err := resolver.ResolveModel(ctx, s.associatedModel, s.id)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve associated model").
			WithDetails(map[string]any{"model": s.associatedModel, "id": s.id.String()})
	}
	if entity == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "associated model not found").
			WithDetails(map[string]any{"model": s.associatedModel, "id": s.id.String()})
	}
	return entity, nil
}
