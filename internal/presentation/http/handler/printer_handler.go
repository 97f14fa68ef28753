package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/smartinr/ventapos-api/internal/application/service"
	"github.com/smartinr/ventapos-api/internal/presentation/http/dto/response"
	"github.com/smartinr/ventapos-api/pkg/utils"
)

// PrinterHandler handles receipt printer HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus()
	response.OK(c, "Printer status retrieved", status)
}

// TestPrint sends a test page to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	receipt, err := h.printerService.TestPrint()
	if err != nil {
		// Return the receipt data anyway (useful when printer type is "none")
		response.OK(c, "Test print completed (printer may be disabled)", gin.H{
			"receipt": receipt,
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Test page sent to printer", gin.H{
		"receipt": receipt,
	})
}

// PrintReceipt prints the receipt of a finalized sale.
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	receipt, err := h.printerService.PrintSaleReceipt(c.Request.Context(), id)
	if err != nil {
		// If the receipt was built but printing failed, return it with a warning
		if receipt != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": receipt,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt sent to printer", gin.H{
		"receipt": receipt,
	})
}

// PrintCloseReport prints the cash-close summary of a session.
func (h *PrinterHandler) PrintCloseReport(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	report, err := h.printerService.PrintCloseReport(c.Request.Context(), id)
	if err != nil {
		if report != nil {
			response.OK(c, "Close report generated but printing failed", gin.H{
				"report":  report,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Close report sent to printer", gin.H{
		"report": report,
	})
}
