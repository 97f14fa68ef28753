package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TaxType represents how a tax rule applies to the ticket subtotal
type TaxType int

const (
	// TaxTypeAdded is computed on top of the subtotal and summed into the total
	TaxTypeAdded TaxType = 0
	// TaxTypeIncluded is already embedded in the displayed prices; it is
	// reported in the breakdown but never changes the total
	TaxTypeIncluded TaxType = 1
)

func (t TaxType) String() string {
	names := [...]string{"agregado", "incluido"}
	if int(t) < 0 || int(t) >= len(names) {
		return "agregado"
	}
	return names[t]
}

// IsAdded reports whether the rule amount is summed into the grand total.
func (t TaxType) IsAdded() bool {
	return t == TaxTypeAdded
}

func (t TaxType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TaxType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = TaxType(i)
		return nil
	}
	switch str {
	case "incluido":
		*t = TaxTypeIncluded
	case "agregado", "no_incluido": // legacy records used "no_incluido" for added taxes
		*t = TaxTypeAdded
	}
	return nil
}

func (t TaxType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *TaxType) Scan(value interface{}) error {
	if value == nil {
		*t = TaxTypeAdded
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = TaxType(v)
	case int:
		*t = TaxType(v)
	}
	return nil
}
