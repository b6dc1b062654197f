package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// handleExportOrders streams an XLSX workbook with one row per order item,
// price snapshots included, for the admin back office.
func (s *Server) handleExportOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	c := s.requireAdmin(w, r)
	if c == nil {
		return
	}

	list, _, err := s.orders.List(r.Context(), c.Profile, queryInt(r, "page", 1), queryInt(r, "limit", 100))
	if err != nil {
		writeError(w, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Orders"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Order ID", "Created", "Status", "Customer ID", "Product", "Quantity", "Unit Price", "Line Total", "Order Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, o := range list {
		for _, it := range o.Items {
			name := "(deleted product)"
			if it.Product != nil {
				name = it.Product.Name
			}
			values := []any{
				o.ID.String(),
				o.CreatedAt.Format(time.RFC3339),
				string(o.Status),
				o.UserID.String(),
				name,
				it.Quantity,
				it.UnitPrice,
				it.TotalPrice,
				o.TotalAmount,
			}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				_ = f.SetCellValue(sheet, cell, v)
			}
			row++
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=orders_%s.xlsx", time.Now().Format("2006-01-02")))
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("xlsx export")
	}
}
