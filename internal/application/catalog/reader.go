// Package catalog lee catálogos de productos (CSV o XLSX) y los importa al backend.
package catalog

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/elikia-api/internal/domain"
	"github.com/jhoicas/elikia-api/internal/domain/entity"
)

// Columnas reconocidas en la cabecera (sin distinguir mayúsculas). name y sku son obligatorias.
const (
	colName          = "name"
	colSKU           = "sku"
	colCategory      = "category"
	colPrice         = "price"
	colPurchasePrice = "purchase_price"
	colStock         = "stock"
	colDescription   = "description"
)

// Result productos leídos y filas descartadas (sin nombre, sin sku o con números inválidos).
type Result struct {
	Products []entity.Product
	Skipped  int
}

// ReadCSV lee un CSV con cabecera. charset: utf-8 (por defecto), windows-1252 o iso-8859-1.
// El separador puede ser coma o punto y coma (exportaciones de Excel en francés).
func ReadCSV(r io.Reader, charset string) (*Result, error) {
	decoded, err := decodeCharset(r, charset)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(decoded)
	if b, err := br.Peek(3); err == nil && bytes.Equal(b, []byte{0xEF, 0xBB, 0xBF}) {
		_, _ = br.Discard(3)
	}
	first, _ := br.Peek(br.Size())
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if headerLine, _, _ := bytes.Cut(first, []byte("\n")); bytes.Count(headerLine, []byte(";")) > bytes.Count(headerLine, []byte(",")) {
		cr.Comma = ';'
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("catálogo csv: %w: %w", domain.ErrInvalidInput, err)
	}
	return parseRecords(records)
}

// ReadXLSX lee la primera hoja de un archivo .xlsx.
func ReadXLSX(path string) (*Result, error) {
	file, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("catálogo xlsx: %w: %w", domain.ErrInvalidInput, err)
	}
	return readSheets(file)
}

// ReadXLSXFrom igual que ReadXLSX desde un lector (subida de archivo).
func ReadXLSXFrom(r io.ReaderAt, size int64) (*Result, error) {
	file, err := xlsx.OpenReaderAt(r, size)
	if err != nil {
		return nil, fmt.Errorf("catálogo xlsx: %w: %w", domain.ErrInvalidInput, err)
	}
	return readSheets(file)
}

func readSheets(file *xlsx.File) (*Result, error) {
	if len(file.Sheets) == 0 {
		return nil, fmt.Errorf("catálogo xlsx: %w: sin hojas", domain.ErrInvalidInput)
	}
	sheet := file.Sheets[0]
	records := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		if row == nil {
			records = append(records, nil)
			continue
		}
		rec := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			rec[i] = cell.String()
		}
		records = append(records, rec)
	}
	return parseRecords(records)
}

func parseRecords(records [][]string) (*Result, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("catálogo: %w: archivo vacío", domain.ErrInvalidInput)
	}
	cols := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{colName, colSKU} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("catálogo: %w: falta la columna %q", domain.ErrInvalidInput, required)
		}
	}

	res := &Result{Products: make([]entity.Product, 0, len(records)-1)}
	for _, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		p, err := parseProduct(rec, cols)
		if err != nil {
			res.Skipped++
			continue
		}
		res.Products = append(res.Products, p)
	}
	return res, nil
}

var errRow = errors.New("fila inválida")

func parseProduct(rec []string, cols map[string]int) (entity.Product, error) {
	get := func(name string) string {
		if i, ok := cols[name]; ok && i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}
	p := entity.Product{
		Name:        get(colName),
		SKU:         get(colSKU),
		Category:    get(colCategory),
		Description: get(colDescription),
	}
	if !p.Valid() {
		return p, errRow
	}
	var err error
	if p.Price, err = parseAmount(get(colPrice)); err != nil {
		return p, err
	}
	if p.PurchasePrice, err = parseAmount(get(colPurchasePrice)); err != nil {
		return p, err
	}
	if p.Stock, err = parseStock(get(colStock)); err != nil {
		return p, err
	}
	return p, nil
}

// parseAmount acepta coma decimal ("19,99"). Vacío es 0.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil || d.IsNegative() {
		return decimal.Zero, errRow
	}
	return d, nil
}

// parseStock acepta "10" y "10.0" (las celdas numéricas de Excel).
func parseStock(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return n, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil || !d.IsInteger() || d.IsNegative() {
		return 0, errRow
	}
	return int(d.IntPart()), nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func decodeCharset(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return r, nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	case "iso-8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("catálogo: %w: charset %q no soportado", domain.ErrInvalidInput, charset)
	}
}
