package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/smartinr/ventapos-api/internal/domain/entity"
	"github.com/smartinr/ventapos-api/pkg/apperror"
)

func testProductWithGroups() (*entity.Product, *entity.ModifierGroup, *entity.ModifierGroup) {
	size := &entity.ModifierGroup{
		ID:         uuid.New(),
		Name:       "Size",
		Obligatory: true,
		Options: []entity.ModifierOption{
			{ID: uuid.New(), Name: "Small", Price: 0},
			{ID: uuid.New(), Name: "Large", Price: 500},
		},
	}
	extras := &entity.ModifierGroup{
		ID:   uuid.New(),
		Name: "Extras",
		Options: []entity.ModifierOption{
			{ID: uuid.New(), Name: "Cheese", Price: 200},
			{ID: uuid.New(), Name: "Bacon", Price: 300},
		},
	}
	product := &entity.Product{
		ID:             uuid.New(),
		Name:           "Burger",
		Price:          5000,
		ModifierGroups: []entity.ModifierGroup{*size, *extras},
	}
	return product, size, extras
}

func TestResolveSelection(t *testing.T) {
	resolver := NewModifierResolver()
	product, size, extras := testProductWithGroups()
	large := size.Options[1]
	cheese := extras.Options[0]
	bacon := extras.Options[1]

	t.Run("obligatoryGroupEnforced", func(t *testing.T) {
		_, err := resolver.ResolveSelection(product, nil)
		if !errors.Is(err, apperror.ErrMissingRequiredModifier) {
			t.Errorf("err = %v, want ErrMissingRequiredModifier", err)
		}
	})

	t.Run("priceDeltaSummed", func(t *testing.T) {
		sel, err := resolver.ResolveSelection(product, map[uuid.UUID][]uuid.UUID{
			size.ID:   {large.ID},
			extras.ID: {cheese.ID, bacon.ID},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sel.PriceDelta != 1000 {
			t.Errorf("PriceDelta = %d, want 1000", sel.PriceDelta)
		}
		if len(sel.Options) != 3 {
			t.Errorf("len(Options) = %d, want 3", len(sel.Options))
		}
	})

	t.Run("keyIsOrderInsensitive", func(t *testing.T) {
		a, err := resolver.ResolveSelection(product, map[uuid.UUID][]uuid.UUID{
			size.ID:   {large.ID},
			extras.ID: {cheese.ID, bacon.ID},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b, err := resolver.ResolveSelection(product, map[uuid.UUID][]uuid.UUID{
			size.ID:   {large.ID},
			extras.ID: {bacon.ID, cheese.ID},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.Key != b.Key {
			t.Errorf("keys differ: %q vs %q", a.Key, b.Key)
		}
	})

	t.Run("differentOptionsDifferentKeys", func(t *testing.T) {
		a, _ := resolver.ResolveSelection(product, map[uuid.UUID][]uuid.UUID{
			size.ID: {large.ID},
		})
		b, _ := resolver.ResolveSelection(product, map[uuid.UUID][]uuid.UUID{
			size.ID:   {large.ID},
			extras.ID: {cheese.ID},
		})
		if a.Key == b.Key {
			t.Errorf("distinct selections produced the same key %q", a.Key)
		}
	})

	t.Run("unknownOptionRejected", func(t *testing.T) {
		_, err := resolver.ResolveSelection(product, map[uuid.UUID][]uuid.UUID{
			size.ID: {uuid.New()},
		})
		if err == nil {
			t.Fatal("expected error for unknown option")
		}
	})

	t.Run("foreignGroupRejected", func(t *testing.T) {
		_, err := resolver.ResolveSelection(product, map[uuid.UUID][]uuid.UUID{
			size.ID:    {large.ID},
			uuid.New(): {uuid.New()},
		})
		if err == nil {
			t.Fatal("expected error for group not enabled on the product")
		}
	})

	t.Run("noGroupsNoSelection", func(t *testing.T) {
		plain := &entity.Product{ID: uuid.New(), Name: "Water", Price: 500}
		sel, err := resolver.ResolveSelection(plain, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sel.Key != plain.ID.String() {
			t.Errorf("Key = %q, want bare product ID", sel.Key)
		}
		if sel.PriceDelta != 0 {
			t.Errorf("PriceDelta = %d, want 0", sel.PriceDelta)
		}
	})
}
