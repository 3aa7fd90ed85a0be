// Package importer reads control-product catalogs from CSV, XLSX and HTML
// registry tables into rows the catalog service can validate and store.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"vivero/entities"
	"vivero/pkg/apperror"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatHTML Format = "html"
)

// Row is one catalog line. Line is the 1-based position in the source,
// header included, so problems can point at it.
type Row struct {
	Line    int
	Product entities.ControlProduct
	Target  string
}

// FormatFromName picks a format from a file extension.
func FormatFromName(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".html", ".htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unsupported file type %q (csv|xlsx|html)", name)
}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX, FormatHTML:
		return f, nil
	}
	return "", fmt.Errorf("unsupported format %q (csv|xlsx|html)", s)
}

// ErrUnreadable marks files that could not be parsed into rows at all.
// Cell-level problems come back as *apperror.ValidationError instead.
var ErrUnreadable = errors.New("unreadable catalog file")

func Parse(f Format, r io.Reader) ([]Row, error) {
	var (
		rows []Row
		err  error
	)
	switch f {
	case FormatCSV:
		rows, err = ParseCSV(r)
	case FormatXLSX:
		rows, err = ParseXLSX(r)
	case FormatHTML:
		rows, err = ParseHTML(r)
	default:
		err = fmt.Errorf("unsupported format %q", f)
	}
	if err != nil && !apperror.IsValidation(err) {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return rows, err
}

func ParseCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	var recs [][]string
	var lines []int
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		// quoted cells may span lines, so take the record's own start line
		line, _ := cr.FieldPos(0)
		recs = append(recs, rec)
		lines = append(lines, line)
	}
	return fromRecords(recs, lines)
}

// ParseXLSX reads the first sheet of the workbook.
func ParseXLSX(r io.Reader) ([]Row, error) {
	x, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer x.Close()
	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("xlsx has no sheets")
	}
	recs, err := x.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return fromRecords(recs, nil)
}

// ParseHTML reads the first <table> in the document. The header is the
// first row holding <th> cells, or the first row when there is none.
func ParseHTML(r io.Reader) ([]Row, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, errors.New("html has no <table>")
	}
	var recs [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var rec []string
		tr.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			rec = append(rec, strings.Join(strings.Fields(cell.Text()), " "))
		})
		if len(rec) > 0 {
			recs = append(recs, rec)
		}
	})
	return fromRecords(recs, nil)
}

func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.ToLower(s)
	for _, c := range []string{" ", "-", "_", "."} {
		s = strings.ReplaceAll(s, c, "")
	}
	return s
}

var aliases = map[string][]string{
	"registry":   {"registry_id", "registry", "registro", "registro_ica", "ica"},
	"name":       {"product_name", "name", "nombre", "producto", "nombre_producto"},
	"frequency":  {"application_frequency", "frequency", "frecuencia", "frecuencia_aplicacion"},
	"value":      {"value", "valor", "precio", "price"},
	"withdrawal": {"withdrawal_period", "withdrawal", "carencia", "periodo_carencia"},
	"target":     {"target", "fungus_name", "pest_name", "hongo", "plaga", "organismo"},
}

// fromRecords maps header-aliased records to rows. Cell-level problems
// are collected per line and returned together. lines holds the source line
// of each record; nil numbers records from 1.
func fromRecords(recs [][]string, lines []int) ([]Row, error) {
	if len(recs) == 0 {
		return nil, errors.New("empty catalog file")
	}
	hmap := map[string]int{}
	for i, h := range recs[0] {
		hmap[norm(h)] = i
	}
	col := map[string]int{}
	for key, names := range aliases {
		col[key] = -1
		for _, n := range names {
			if i, ok := hmap[norm(n)]; ok {
				col[key] = i
				break
			}
		}
	}
	if col["registry"] < 0 || col["name"] < 0 {
		return nil, fmt.Errorf("missing required columns registry_id/product_name in header %v", recs[0])
	}

	ve := apperror.NewValidation("import")
	var out []Row
	for i, rec := range recs[1:] {
		line := i + 2
		if lines != nil {
			line = lines[i+1]
		}
		cell := func(key string) string {
			j := col[key]
			if j < 0 || j >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[j])
		}
		if blank(rec) {
			continue
		}
		field := fmt.Sprintf("row %d", line)
		row := Row{Line: line, Target: cell("target")}
		row.Product.RegistryID = cell("registry")
		row.Product.ProductName = cell("name")

		var err error
		if row.Product.ApplicationFrequency, err = atoi(cell("frequency")); err != nil {
			ve.Add(field, "application_frequency: "+err.Error())
		}
		if row.Product.WithdrawalPeriod, err = atoi(cell("withdrawal")); err != nil {
			ve.Add(field, "withdrawal_period: "+err.Error())
		}
		if row.Product.Value, err = money(cell("value")); err != nil {
			ve.Add(field, "value: "+err.Error())
		}
		out = append(out, row)
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func atoi(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return n, nil
}

// money accepts "1234.5", "$1,234.50", "1.234,50", "1.250.000" and "32,75".
// With both separators present the last one is the decimal mark; a single
// separator kind repeated is grouping, and appearing once it is the decimal mark.
func money(s string) (decimal.Decimal, error) {
	raw := s
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero, nil
	}
	dot, comma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")
	switch {
	case dot >= 0 && comma >= 0:
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	case strings.Count(s, ",") > 1:
		s = strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a decimal amount", strings.TrimSpace(raw))
	}
	return d, nil
}
