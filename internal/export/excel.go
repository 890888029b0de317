// Package export renders a filtered catalog as an Excel workbook with
// localized headers and formatting.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"plasco-inventory/internal/models"
)

const (
	// SheetName is the localized worksheet title ("products").
	SheetName = "محصولات"

	// MissingPlaceholder stands in for absent SKU or date values.
	MissingPlaceholder = "---"

	// ContentType is the xlsx MIME type for the download response.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	dateLayout = "2006/01/02"
)

var headers = []string{
	"نام محصول",
	"برند",
	"کد محصول (SKU)",
	"قیمت تکی (تومان)",
	"قیمت عمده (تومان)",
	"تاریخ ایجاد",
}

var columnWidths = []float64{30, 20, 15, 15, 15, 20}

// ProductsWorkbook builds the export workbook: bold right-aligned
// header row, right-aligned cells and thousands-grouped price columns.
func ProductsWorkbook(products []models.Product) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, width := range columnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, err
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, err
	}
	priceFormat := "#,##0"
	priceStyle, err := f.NewStyle(&excelize.Style{
		Alignment:    &excelize.Alignment{Horizontal: "right"},
		CustomNumFmt: &priceFormat,
	})
	if err != nil {
		return nil, err
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return nil, err
		}
	}

	for i, p := range products {
		row := i + 2
		brand := p.Brand
		if brand == "" {
			brand = models.DefaultBrand
		}
		sku := p.SKU
		if sku == "" {
			sku = MissingPlaceholder
		}
		created := MissingPlaceholder
		if !p.CreatedAt.IsZero() {
			created = p.CreatedAt.Format(dateLayout)
		}

		values := []interface{}{p.Name, brand, sku, p.RetailPrice, p.WholesalePrice, created}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	lastRow := len(products) + 1
	if err := f.SetCellStyle(SheetName, "A1", "F1", headerStyle); err != nil {
		return nil, err
	}
	if lastRow > 1 {
		if err := f.SetCellStyle(SheetName, "A2", fmt.Sprintf("C%d", lastRow), cellStyle); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(SheetName, "D2", fmt.Sprintf("E%d", lastRow), priceStyle); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(SheetName, "F2", fmt.Sprintf("F%d", lastRow), cellStyle); err != nil {
			return nil, err
		}
	}

	return f, nil
}
