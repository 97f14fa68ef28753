package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/smartinr/ventapos-api/internal/config"
	"github.com/smartinr/ventapos-api/internal/domain/entity"
	"github.com/smartinr/ventapos-api/internal/domain/repository"
	"github.com/smartinr/ventapos-api/pkg/apperror"
	"github.com/smartinr/ventapos-api/pkg/printer"
)

// PrinterService formats sale receipts and cash close reports and sends
// them to the thermal printer. When no printer is configured, callers
// still get the composed receipt back as JSON.
type PrinterService struct {
	printer     printer.Printer
	sales       repository.SaleRepository
	sessions    *CashSessionService
	users       repository.UserRepository
	printerType string
	width       int
	receiptCfg  config.ReceiptConfig
	currency    string
}

// NewPrinterService creates a new printer service
func NewPrinterService(
	p printer.Printer,
	sales repository.SaleRepository,
	sessions *CashSessionService,
	users repository.UserRepository,
	cfg *config.Config,
) *PrinterService {
	return &PrinterService{
		printer:     p,
		sales:       sales,
		sessions:    sessions,
		users:       users,
		printerType: cfg.Printer.Type,
		width:       cfg.Printer.Width,
		receiptCfg:  cfg.Receipt,
		currency:    cfg.POS.Currency,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

func (s *PrinterService) header() entity.ReceiptHeader {
	return entity.ReceiptHeader{
		StoreName: s.receiptCfg.StoreName,
		Address:   s.receiptCfg.Address,
		Phone:     s.receiptCfg.Phone,
		TaxID:     s.receiptCfg.TaxID,
		Footer:    s.receiptCfg.Footer,
	}
}

// TestPrint sends a test page to the printer.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header:  s.header(),
		Number:  "TEST-001",
		Date:    "Test Date",
		Cashier: "System",
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, Subtotal: 10.00},
			{Name: "Test Item 2", Quantity: 2, Subtotal: 10.00},
		},
		Subtotal: 20.00,
		Total:    20.00,
		Tendered: 20.00,
	}

	data := s.FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}

	return receipt, nil
}

// PrintSaleReceipt fetches a sale and prints its receipt.
func (s *PrinterService) PrintSaleReceipt(ctx context.Context, saleID uuid.UUID) (*entity.Receipt, error) {
	sale, err := s.sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	receipt := &entity.Receipt{
		Header:        s.header(),
		Number:        sale.Number,
		Date:          sale.CreatedAt.Format("02/01/2006 15:04"),
		PaymentMethod: sale.PaymentMethod,
		Subtotal:      float64(sale.Subtotal) / 100,
		Total:         float64(sale.Total) / 100,
		Tendered:      float64(sale.Tendered) / 100,
		Change:        float64(sale.Change) / 100,
	}

	if cashier, err := s.users.GetByID(ctx, sale.UserID); err == nil && cashier != nil {
		receipt.Cashier = cashier.Name
	}
	if sale.Customer != nil {
		receipt.Customer = sale.Customer.Name
	}

	for _, item := range sale.Items {
		name := item.Name
		for _, opt := range item.Options {
			name += " +" + opt.Name
		}
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:     name,
			Quantity: item.Quantity,
			Subtotal: float64(item.Subtotal) / 100,
		})
	}

	for _, tax := range sale.Taxes {
		receipt.Taxes = append(receipt.Taxes, entity.ReceiptTax{
			Name:     tax.Name,
			Rate:     tax.Rate,
			Amount:   float64(tax.Amount) / 100,
			Included: !tax.Type.IsAdded(),
		})
	}

	data := s.FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (sale %s): %v", saleID, err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

// PrintCloseReport builds and prints the close report of a closed cash session.
func (s *PrinterService) PrintCloseReport(ctx context.Context, sessionID uuid.UUID) (*entity.CloseReport, error) {
	report, err := s.sessions.CloseReport(ctx, sessionID, "")
	if err != nil {
		return nil, err
	}

	data := s.FormatCloseReport(report)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (session %s): %v", sessionID, err)
		return report, fmt.Errorf("failed to print close report: %w", err)
	}

	return report, nil
}

func (s *PrinterService) money(v float64) string {
	return fmt.Sprintf("%s%.2f", s.currency, v)
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func (s *PrinterService) FormatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(s.width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.TextF("RUC: %s", r.Header.TaxID)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Factura:", r.Number).
		KeyValue("Fecha:", r.Date)

	if r.Cashier != "" {
		doc.KeyValue("Cajero:", r.Cashier)
	}
	if r.Customer != "" {
		doc.KeyValue("Cliente:", r.Customer)
	}
	if r.PaymentMethod != "" {
		doc.KeyValue("Pago:", r.PaymentMethod)
	}

	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, fmt.Sprintf("%.2f", item.Subtotal))
	}

	doc.Separator('-')

	doc.KeyValue("Subtotal:", s.money(r.Subtotal))
	for _, tax := range r.Taxes {
		label := fmt.Sprintf("%s %.6g%%:", tax.Name, tax.Rate)
		if tax.Included {
			label = fmt.Sprintf("%s %.6g%% (incl):", tax.Name, tax.Rate)
		}
		doc.KeyValue(label, s.money(tax.Amount))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", s.money(r.Total)).
		SetBold(false)

	doc.KeyValue("Recibido:", s.money(r.Tendered))
	if r.Change > 0 {
		doc.KeyValue("Vuelto:", s.money(r.Change))
	}

	doc.Separator('-')

	if r.Header.Footer != "" {
		doc.SetAlign(printer.AlignCenter).
			LineFeed().
			Text(r.Header.Footer).
			SetAlign(printer.AlignLeft)
	}

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

// FormatCloseReport converts a CloseReport into ESC/POS bytes.
func (s *PrinterService) FormatCloseReport(r *entity.CloseReport) []byte {
	doc := printer.NewDocument(s.width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text("CIERRE DE CAJA").
		SetBold(false).
		SetAlign(printer.AlignLeft).
		Separator('=')

	doc.KeyValue("Caja:", r.Number)
	if r.Cashier != "" {
		doc.KeyValue("Cajero:", r.Cashier)
	}
	if r.Terminal != "" {
		doc.KeyValue("Terminal:", r.Terminal)
	}
	doc.KeyValue("Apertura:", r.OpenedAt).
		KeyValue("Cierre:", r.ClosedAt).
		Separator('-')

	if len(r.MethodSales) > 0 {
		doc.SetBold(true).Text("Ventas por metodo").SetBold(false)
		for _, line := range r.MethodSales {
			doc.KeyValue(fmt.Sprintf("%s (%d):", line.MethodName, line.Count), s.money(line.Total))
		}
		doc.Separator('-')
	}

	doc.KeyValue("Monto inicial:", s.money(r.OpeningFloat)).
		KeyValue(fmt.Sprintf("Ventas (%d):", r.SalesCount), s.money(r.SalesTotal)).
		KeyValue("Esperado:", s.money(r.Expected)).
		KeyValue("Contado:", s.money(r.CountedCash))

	doc.SetBold(true).
		KeyValue("Diferencia:", s.money(r.Variance)).
		SetBold(false)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
