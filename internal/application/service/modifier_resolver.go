package service

import (
	"github.com/google/uuid"
	"github.com/smartinr/ventapos-api/internal/domain/entity"
	"github.com/smartinr/ventapos-api/pkg/apperror"
)

// ResolvedSelection is the outcome of validating a modifier selection
// against a product's groups: the price delta the chosen options add to
// the base unit price, the chosen options in group order, and the line
// identity key the selection produces.
type ResolvedSelection struct {
	PriceDelta int64
	Options    []entity.ChosenOption
	Key        string
}

// ModifierResolver validates modifier selections against a product's
// enabled groups and derives the line identity key.
type ModifierResolver struct{}

// NewModifierResolver creates a new modifier resolver
func NewModifierResolver() *ModifierResolver {
	return &ModifierResolver{}
}

// ResolveSelection checks the chosen options against the product's
// modifier groups. Every obligatory group must have at least one option
// chosen; options must belong to a group enabled on the product. The
// derived key is order-insensitive: the same options chosen in any
// order produce the same key.
func (r *ModifierResolver) ResolveSelection(product *entity.Product, chosen map[uuid.UUID][]uuid.UUID) (*ResolvedSelection, error) {
	sel := &ResolvedSelection{Options: []entity.ChosenOption{}}

	known := make(map[uuid.UUID]bool, len(product.ModifierGroups))
	var optionIDs []uuid.UUID

	for _, group := range product.ModifierGroups {
		known[group.ID] = true
		picked := chosen[group.ID]

		if group.Obligatory && len(picked) == 0 {
			return nil, apperror.ErrMissingRequiredModifier.WithDetail(group.Name)
		}

		for _, optID := range picked {
			opt := group.FindOption(optID)
			if opt == nil {
				return nil, apperror.NewNotFoundError("Modifier option")
			}
			sel.PriceDelta += opt.Price
			sel.Options = append(sel.Options, entity.ChosenOption{
				ID:    opt.ID,
				Name:  opt.Name,
				Price: opt.Price,
			})
			optionIDs = append(optionIDs, opt.ID)
		}
	}

	for groupID := range chosen {
		if !known[groupID] {
			return nil, apperror.NewBadRequestError("Modifier group is not enabled for this product")
		}
	}

	sel.Key = entity.LineKey(product.ID, optionIDs)
	return sel, nil
}
