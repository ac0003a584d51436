package printdoc

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/onzacore/distri-api/internal/order"
)

const (
	pageMargin  = 12.0
	lineHeight  = 6.0
	tableHeight = 5.5
)

func newDocument() (*gofpdf.Fpdf, func(string) string) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	return pdf, tr
}

// RenderPriceSheet renders the price/quantity sheet to PDF.
func RenderPriceSheet(sheet PriceSheet) ([]byte, error) {
	pdf, tr := newDocument()

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(62, lineHeight, tr(sheet.CompanyName), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		client := fmt.Sprintf("%s - %s", sheet.ClientName, sheet.ClientAddress)
		pdf.CellFormat(62, lineHeight, tr(client), "", 0, "C", false, 0, "")
		meta := fmt.Sprintf("Pedido N° %d - %s", sheet.OrderID, sheet.Date.Format("02/01/2006"))
		pdf.CellFormat(62, lineHeight, tr(meta), "", 1, "R", false, 0, "")
		pdf.Ln(2)

		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(20, tableHeight, "Cant.", "B", 0, "C", false, 0, "")
		pdf.CellFormat(106, tableHeight, "Producto", "B", 0, "L", false, 0, "")
		pdf.CellFormat(30, tableHeight, "P. Unit", "B", 0, "R", false, 0, "")
		pdf.CellFormat(30, tableHeight, "Subtotal", "B", 1, "R", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 9)
	for _, line := range sheet.Lines {
		name := line.ProductName
		if line.StockWarning {
			name += " (S/STOCK)"
		}
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(20, tableHeight, order.FormatQuantity(line.Quantity), "B", 0, "C", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(106, tableHeight, tr(name), "B", 0, "L", false, 0, "")
		pdf.CellFormat(30, tableHeight, "$"+order.FormatCurrency(line.UnitPrice), "B", 0, "R", false, 0, "")
		pdf.CellFormat(30, tableHeight, "$"+order.FormatCurrency(line.Subtotal), "B", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(156, lineHeight+2, "Total:", "T", 0, "R", false, 0, "")
	pdf.CellFormat(30, lineHeight+2, "$"+order.FormatCurrency(sheet.Total), "T", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(0, lineHeight, "Notas:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	notes := sheet.Notes
	if notes == "" {
		notes = "-"
	}
	pdf.MultiCell(140, 5, tr(notes), "1", "L", false)
	pdf.Ln(10)
	pdf.CellFormat(130, lineHeight, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(56, lineHeight, "Firma de Conformidad", "T", 1, "C", false, 0, "")

	return output(pdf)
}

// RenderAssemblySheet renders the warehouse checklist to PDF.
func RenderAssemblySheet(sheet AssemblySheet) ([]byte, error) {
	pdf, tr := newDocument()

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(110, lineHeight, "Hoja de Armado de Pedido", "B", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		meta := fmt.Sprintf("%s - Pedido N° %d", sheet.ClientName, sheet.OrderID)
		pdf.CellFormat(76, lineHeight, tr(meta), "B", 1, "R", false, 0, "")
		pdf.Ln(2)

		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(18, tableHeight, "Listo", "B", 0, "C", false, 0, "")
		pdf.CellFormat(28, tableHeight, "Cantidad", "B", 0, "C", false, 0, "")
		pdf.CellFormat(140, tableHeight, "Producto", "B", 1, "L", false, 0, "")
	})
	pdf.AddPage()

	for _, line := range sheet.Lines {
		// Checkbox for the picker.
		x, y := pdf.GetX(), pdf.GetY()
		pdf.Rect(x+6, y+1, 5, 5, "D")
		pdf.CellFormat(18, 7, "", "B", 0, "C", false, 0, "")
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(28, 7, order.FormatQuantity(line.Quantity), "B", 0, "C", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(140, 7, tr(line.ProductName), "B", 1, "L", false, 0, "")
	}

	return output(pdf)
}

// RenderPriceList renders the full-catalog price list to PDF.
func RenderPriceList(list PriceList) ([]byte, error) {
	pdf, tr := newDocument()

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(110, lineHeight, tr(list.CompanyName+" - Lista de Precios"), "B", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(76, lineHeight, list.Date.Format("02/01/2006"), "B", 1, "R", false, 0, "")
		pdf.Ln(2)
	})
	pdf.AddPage()

	for _, group := range list.Groups {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, lineHeight+1, tr(group.Category), "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, entry := range group.Entries {
			name := entry.Name
			if entry.OutOfStock {
				name += " (S/STOCK)"
			}
			pdf.CellFormat(26, tableHeight, tr(entry.SKU), "", 0, "L", false, 0, "")
			pdf.CellFormat(130, tableHeight, tr(name), "", 0, "L", false, 0, "")
			pdf.CellFormat(30, tableHeight, "$"+tr(entry.Price), "", 1, "R", false, 0, "")
		}
		pdf.Ln(3)
	}

	return output(pdf)
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
