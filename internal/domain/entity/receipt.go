package entity

// ReceiptHeader holds the store/business header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
	Footer    string `json:"footer,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// ReceiptTax represents one tax rule line on a receipt.
type ReceiptTax struct {
	Name     string  `json:"name"`
	Rate     float64 `json:"rate"`
	Amount   float64 `json:"amount"`
	Included bool    `json:"included"`
}

// Receipt is a value object representing a printable sale receipt.
// It is composed from a finalized sale at print time, never stored.
type Receipt struct {
	Header        ReceiptHeader `json:"header"`
	Number        string        `json:"number"`
	Date          string        `json:"date"`
	Cashier       string        `json:"cashier,omitempty"`
	Customer      string        `json:"customer,omitempty"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	Items         []ReceiptItem `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	Taxes         []ReceiptTax  `json:"taxes,omitempty"`
	Total         float64       `json:"total"`
	Tendered      float64       `json:"tendered"`
	Change        float64       `json:"change"`
}

// CloseReport is a value object representing a printable cash-session
// close summary: drawer base, sales per payment method, expected vs
// counted cash and the variance.
type CloseReport struct {
	Number       string            `json:"number"`
	Cashier      string            `json:"cashier"`
	Terminal     string            `json:"terminal,omitempty"`
	OpenedAt     string            `json:"opened_at"`
	ClosedAt     string            `json:"closed_at"`
	MethodSales  []CloseReportLine `json:"method_sales,omitempty"`
	OpeningFloat float64           `json:"opening_float"`
	SalesCount   int               `json:"sales_count"`
	SalesTotal   float64           `json:"sales_total"`
	Expected     float64           `json:"expected"`
	CountedCash  float64           `json:"counted_cash"`
	Variance     float64           `json:"variance"`
}

// CloseReportLine is one payment method's share of a close report.
type CloseReportLine struct {
	MethodName string  `json:"method_name"`
	Count      int     `json:"count"`
	Total      float64 `json:"total"`
}
