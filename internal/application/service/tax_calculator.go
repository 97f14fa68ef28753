package service

import (
	"math"

	"github.com/google/uuid"
	"github.com/smartinr/ventapos-api/internal/domain/entity"
	"github.com/smartinr/ventapos-api/internal/domain/enum"
)

// TaxLine is one rule's contribution to a ticket total.
type TaxLine struct {
	RuleID uuid.UUID    `json:"rule_id"`
	Name   string       `json:"name"`
	Rate   float64      `json:"rate"`
	Type   enum.TaxType `json:"type"`
	Amount int64        `json:"amount"` // cents
}

// TaxBreakdown is the full tax view of a subtotal: every rule's
// contribution, the portion that gets added on top, and the resulting
// grand total.
type TaxBreakdown struct {
	Subtotal   int64     `json:"subtotal"`
	PerRule    []TaxLine `json:"per_rule"`
	AddedTotal int64     `json:"added_total"`
	TaxTotal   int64     `json:"tax_total"` // all rule amounts, included ones too
	GrandTotal int64     `json:"grand_total"`
}

// TaxCalculator computes the tax breakdown of a ticket subtotal. It is
// stateless: identical inputs always produce identical output.
type TaxCalculator struct{}

// NewTaxCalculator creates a new tax calculator
func NewTaxCalculator() *TaxCalculator {
	return &TaxCalculator{}
}

// Compute applies every active rule independently against the pre-tax
// subtotal. Included rules report the tax already embedded in the
// subtotal (subtotal - subtotal/(1+rate/100)) without changing the
// total; added rules contribute subtotal*rate/100 on top. Rules are
// flat, never cascading: no rule's base includes another rule's output.
// A zero or negative subtotal yields zero amounts for every rule.
func (c *TaxCalculator) Compute(subtotal int64, rules []entity.TaxRule) TaxBreakdown {
	out := TaxBreakdown{
		Subtotal: subtotal,
		PerRule:  []TaxLine{},
	}

	for _, rule := range rules {
		if !rule.Active {
			continue
		}

		var amount int64
		if subtotal > 0 {
			if rule.Type == enum.TaxTypeIncluded {
				amount = subtotal - int64(math.Round(float64(subtotal)/(1+rule.Rate/100)))
			} else {
				amount = int64(math.Round(float64(subtotal) * rule.Rate / 100))
			}
		}

		out.PerRule = append(out.PerRule, TaxLine{
			RuleID: rule.ID,
			Name:   rule.Name,
			Rate:   rule.Rate,
			Type:   rule.Type,
			Amount: amount,
		})
		out.TaxTotal += amount
		if rule.Type.IsAdded() {
			out.AddedTotal += amount
		}
	}

	out.GrandTotal = subtotal + out.AddedTotal
	return out
}
