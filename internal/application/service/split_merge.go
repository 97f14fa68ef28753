package service

import (
	"github.com/smartinr/ventapos-api/internal/domain/entity"
	"github.com/smartinr/ventapos-api/pkg/apperror"
)

// SplitMergeEngine moves quantities between tickets: splitting part of
// the active ticket into a new one, and folding suspended tickets back
// into the active one. Both directions conserve total units exactly.
type SplitMergeEngine struct{}

// NewSplitMergeEngine creates a new split/merge engine
func NewSplitMergeEngine() *SplitMergeEngine {
	return &SplitMergeEngine{}
}

// Split moves the selected quantities out of the ticket into a new
// extracted ticket, mutating the source in place. The selection maps
// line ID to the unit count to move. At least one unit must move and at
// least one unit must remain; a line whose full quantity moves is
// removed from the source. Extracted lines keep the source's order.
func (e *SplitMergeEngine) Split(t *entity.Ticket, selection map[string]int) (*entity.Ticket, error) {
	moving := make(map[string]int, len(selection))
	var totalMoved int
	for lineID, qty := range selection {
		if qty <= 0 {
			continue
		}
		idx := t.FindLine(lineID)
		if idx < 0 {
			return nil, apperror.NewNotFoundError("Line item")
		}
		if qty > t.Items[idx].Quantity {
			return nil, apperror.NewBadRequestError("Cannot move more units than the line holds")
		}
		moving[lineID] = qty
		totalMoved += qty
	}

	if totalMoved == 0 {
		return nil, apperror.ErrNothingSelected
	}
	if totalMoved == t.TotalUnits() {
		return nil, apperror.ErrCannotMoveEntireTicket
	}

	extracted := entity.NewTicket()
	remaining := t.Items[:0]
	for i := range t.Items {
		line := t.Items[i]
		qty, ok := moving[line.ID]
		if !ok {
			remaining = append(remaining, line)
			continue
		}

		moved := line
		if len(line.Options) > 0 {
			moved.Options = make([]entity.ChosenOption, len(line.Options))
			copy(moved.Options, line.Options)
		}
		moved.Quantity = qty
		moved.Recompute()
		extracted.Items = append(extracted.Items, moved)

		if qty < line.Quantity {
			line.Quantity -= qty
			line.Recompute()
			remaining = append(remaining, line)
		}
	}
	t.Items = remaining

	return extracted, nil
}

// Merge folds the given tickets into the active one. Lines with the
// same identity key aggregate their quantities onto the active line;
// new keys append in source order. Sources are not mutated.
func (e *SplitMergeEngine) Merge(active *entity.Ticket, sources []*entity.Ticket) {
	for _, src := range sources {
		for i := range src.Items {
			item := src.Items[i]
			if idx := active.FindLine(item.ID); idx >= 0 {
				active.Items[idx].Quantity += item.Quantity
				active.Items[idx].Recompute()
				continue
			}
			if len(item.Options) > 0 {
				opts := make([]entity.ChosenOption, len(item.Options))
				copy(opts, item.Options)
				item.Options = opts
			}
			active.Items = append(active.Items, item)
		}
		if active.CustomerID == nil && src.CustomerID != nil {
			id := *src.CustomerID
			active.CustomerID = &id
		}
	}
}
