package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/smartinr/ventapos-api/internal/domain/entity"
	"github.com/smartinr/ventapos-api/internal/domain/enum"
)

func taxRule(name string, rate float64, taxType enum.TaxType, active bool) entity.TaxRule {
	return entity.TaxRule{
		ID:     uuid.New(),
		Name:   name,
		Rate:   rate,
		Type:   taxType,
		Active: active,
	}
}

func TestTaxCalculatorCompute(t *testing.T) {
	calc := NewTaxCalculator()

	tests := []struct {
		name           string
		subtotal       int64
		rules          []entity.TaxRule
		wantAmounts    []int64
		wantAddedTotal int64
		wantTaxTotal   int64
		wantGrandTotal int64
	}{
		{
			name:     "addedRaisesTotal",
			subtotal: 10000,
			rules: []entity.TaxRule{
				taxRule("Sales", 15, enum.TaxTypeAdded, true),
			},
			wantAmounts:    []int64{1500},
			wantAddedTotal: 1500,
			wantTaxTotal:   1500,
			wantGrandTotal: 11500,
		},
		{
			name:     "includedKeepsTotal",
			subtotal: 10000,
			rules: []entity.TaxRule{
				taxRule("IVA", 10, enum.TaxTypeIncluded, true),
			},
			wantAmounts:    []int64{909},
			wantAddedTotal: 0,
			wantTaxTotal:   909,
			wantGrandTotal: 10000,
		},
		{
			name:     "flatNeverCascading",
			subtotal: 10000,
			rules: []entity.TaxRule{
				taxRule("A", 10, enum.TaxTypeAdded, true),
				taxRule("B", 5, enum.TaxTypeAdded, true),
			},
			wantAmounts:    []int64{1000, 500},
			wantAddedTotal: 1500,
			wantTaxTotal:   1500,
			wantGrandTotal: 11500,
		},
		{
			name:     "mixedTypes",
			subtotal: 20000,
			rules: []entity.TaxRule{
				taxRule("IVA", 10, enum.TaxTypeIncluded, true),
				taxRule("Service", 5, enum.TaxTypeAdded, true),
			},
			wantAmounts:    []int64{1818, 1000},
			wantAddedTotal: 1000,
			wantTaxTotal:   2818,
			wantGrandTotal: 21000,
		},
		{
			name:     "inactiveSkipped",
			subtotal: 10000,
			rules: []entity.TaxRule{
				taxRule("Off", 50, enum.TaxTypeAdded, false),
			},
			wantAmounts:    nil,
			wantAddedTotal: 0,
			wantTaxTotal:   0,
			wantGrandTotal: 10000,
		},
		{
			name:           "noRules",
			subtotal:       5000,
			rules:          nil,
			wantAmounts:    nil,
			wantAddedTotal: 0,
			wantTaxTotal:   0,
			wantGrandTotal: 5000,
		},
		{
			name:     "zeroSubtotal",
			subtotal: 0,
			rules: []entity.TaxRule{
				taxRule("Sales", 15, enum.TaxTypeAdded, true),
			},
			wantAmounts:    []int64{0},
			wantAddedTotal: 0,
			wantTaxTotal:   0,
			wantGrandTotal: 0,
		},
		{
			name:     "negativeSubtotal",
			subtotal: -100,
			rules: []entity.TaxRule{
				taxRule("IVA", 10, enum.TaxTypeIncluded, true),
			},
			wantAmounts:    []int64{0},
			wantAddedTotal: 0,
			wantTaxTotal:   0,
			wantGrandTotal: -100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.Compute(tt.subtotal, tt.rules)

			if got.Subtotal != tt.subtotal {
				t.Errorf("Subtotal = %d, want %d", got.Subtotal, tt.subtotal)
			}
			if len(got.PerRule) != len(tt.wantAmounts) {
				t.Fatalf("len(PerRule) = %d, want %d", len(got.PerRule), len(tt.wantAmounts))
			}
			for i, want := range tt.wantAmounts {
				if got.PerRule[i].Amount != want {
					t.Errorf("PerRule[%d].Amount = %d, want %d", i, got.PerRule[i].Amount, want)
				}
			}
			if got.AddedTotal != tt.wantAddedTotal {
				t.Errorf("AddedTotal = %d, want %d", got.AddedTotal, tt.wantAddedTotal)
			}
			if got.TaxTotal != tt.wantTaxTotal {
				t.Errorf("TaxTotal = %d, want %d", got.TaxTotal, tt.wantTaxTotal)
			}
			if got.GrandTotal != tt.wantGrandTotal {
				t.Errorf("GrandTotal = %d, want %d", got.GrandTotal, tt.wantGrandTotal)
			}
		})
	}
}

func TestTaxCalculatorIdempotent(t *testing.T) {
	calc := NewTaxCalculator()
	rules := []entity.TaxRule{
		taxRule("IVA", 10, enum.TaxTypeIncluded, true),
		taxRule("Service", 5, enum.TaxTypeAdded, true),
	}

	first := calc.Compute(12345, rules)
	second := calc.Compute(12345, rules)

	if first.TaxTotal != second.TaxTotal || first.GrandTotal != second.GrandTotal {
		t.Errorf("repeated compute diverged: first (%d, %d), second (%d, %d)",
			first.TaxTotal, first.GrandTotal, second.TaxTotal, second.GrandTotal)
	}
}
