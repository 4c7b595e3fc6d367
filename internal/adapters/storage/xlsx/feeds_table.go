package xlsx

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"unicode/utf8"

	"baby-feed-tracker/internal/domain/feeds"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// SheetName es la hoja que se crea en archivos nuevos. Al leer se usa la
// hoja activa, así un archivo renombrado a mano sigue funcionando.
const SheetName = "Feed Log"

// Columnas que se escriben como número para que la planilla sume bien.
var numericCols = map[int]bool{3: true, 4: true}

var colWidths = []float64{12, 12, 22, 12, 14, 30, 12, 20}

// ErrCellValue indica un texto que excelize no guardaría tal cual: más de
// TotalCellChars caracteres o runas que XML no admite.
var ErrCellValue = errors.New("xlsx: cell value cannot be stored verbatim")

// FeedTable es la planilla .xlsx con una fila por evento.
// Cada operación abre el archivo, aplica el cambio y lo guarda; no hay
// estado en memoria entre operaciones.
type FeedTable struct {
	path   string
	header []string
}

func NewFeedTable(path string, unit feeds.VolumeUnit) *FeedTable {
	return &FeedTable{
		path:   path,
		header: feeds.Header(unit),
	}
}

func (t *FeedTable) Path() string { return t.path }

// Init crea el archivo con el header si todavía no existe.
func (t *FeedTable) Init() error {
	_, err := os.Stat(t.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("xlsx: stat %s: %w", t.path, err)
	}

	if dir := filepath.Dir(t.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("xlsx: create dir: %w", err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}
	if err := t.writeHeader(f, SheetName); err != nil {
		return err
	}

	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, col, col, w); err != nil {
			return fmt.Errorf("xlsx: column width: %w", err)
		}
	}

	return t.save(f)
}

func (t *FeedTable) Rows(ctx context.Context) ([]feeds.Row, error) {
	f, sheet, err := t.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := t.readRows(f, sheet)
	if err != nil {
		return nil, err
	}
	if len(raw) <= 1 {
		return []feeds.Row{}, nil
	}

	out := make([]feeds.Row, 0, len(raw)-1)
	for _, r := range raw[1:] {
		out = append(out, feeds.Row(r))
	}
	return out, nil
}

func (t *FeedTable) Append(ctx context.Context, r feeds.Row) (int, error) {
	f, sheet, err := t.open()
	if err != nil {
		return 0, err
	}
	defer f.Close()

	raw, err := t.readRows(f, sheet)
	if err != nil {
		return 0, err
	}
	if len(raw) == 0 {
		if err := t.writeHeader(f, sheet); err != nil {
			return 0, err
		}
		raw = [][]string{t.header}
	}

	rowNum := len(raw) + 1
	if err := writeRow(f, sheet, rowNum, r); err != nil {
		return 0, err
	}
	if err := t.save(f); err != nil {
		return 0, err
	}
	return rowNum - 1, nil
}

func (t *FeedTable) Update(ctx context.Context, id int, fn func(feeds.Row) feeds.Row) (bool, error) {
	f, sheet, err := t.open()
	if err != nil {
		return false, err
	}
	defer f.Close()

	raw, err := t.readRows(f, sheet)
	if err != nil {
		return false, err
	}
	// raw[0] es el header: la fila de datos id está en raw[id] / fila física id+1.
	if id < 1 || id >= len(raw) {
		return false, nil
	}

	if err := writeRow(f, sheet, id+1, fn(feeds.Row(raw[id]))); err != nil {
		return false, err
	}
	return true, t.save(f)
}

func (t *FeedTable) Remove(ctx context.Context, id int) (bool, error) {
	f, sheet, err := t.open()
	if err != nil {
		return false, err
	}
	defer f.Close()

	raw, err := t.readRows(f, sheet)
	if err != nil {
		return false, err
	}
	if id < 1 || id >= len(raw) {
		return false, nil
	}

	if err := f.RemoveRow(sheet, id+1); err != nil {
		return false, fmt.Errorf("xlsx: remove row %d: %w", id+1, err)
	}
	return true, t.save(f)
}

func (t *FeedTable) open() (*excelize.File, string, error) {
	if err := t.Init(); err != nil {
		return nil, "", err
	}

	f, err := excelize.OpenFile(t.path)
	if err != nil {
		return nil, "", fmt.Errorf("xlsx: open %s: %w", t.path, err)
	}
	return f, f.GetSheetName(f.GetActiveSheetIndex()), nil
}

func (t *FeedTable) readRows(f *excelize.File, sheet string) ([][]string, error) {
	// RawCellValue: leer 75.5 y no el valor con formato de número aplicado.
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("xlsx: read rows: %w", err)
	}
	return raw, nil
}

func (t *FeedTable) writeHeader(f *excelize.File, sheet string) error {
	header := make([]any, 0, len(t.header))
	for _, h := range t.header {
		header = append(header, h)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: write header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("xlsx: header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(t.header), 1)
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("xlsx: header style: %w", err)
	}
	return nil
}

// save escribe a un archivo temporal hermano y lo renombra encima del
// original: un corte a mitad de escritura no deja la planilla truncada.
func (t *FeedTable) save(f *excelize.File) error {
	tmp := filepath.Join(filepath.Dir(t.path), "."+filepath.Base(t.path)+"."+uuid.NewString()+".xlsx")

	if err := f.SaveAs(tmp); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("xlsx: save: %w", err)
	}
	if err := os.Rename(tmp, t.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("xlsx: replace %s: %w", t.path, err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, r feeds.Row) error {
	vals := make([]any, feeds.RowWidth)
	for i := range vals {
		if i >= len(r) {
			vals[i] = ""
			continue
		}
		if err := checkCell(r[i]); err != nil {
			return fmt.Errorf("xlsx: row %d column %d: %w", rowNum, i+1, err)
		}
		vals[i] = cellValue(i, r[i])
	}

	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("xlsx: row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
		return fmt.Errorf("xlsx: write row %d: %w", rowNum, err)
	}
	return nil
}

// checkCell rechaza lo que excelize recortaría o reemplazaría por U+FFFD.
func checkCell(s string) error {
	if n := utf8.RuneCountInString(s); n > excelize.TotalCellChars {
		return fmt.Errorf("%w: %d characters, limit %d", ErrCellValue, n, excelize.TotalCellChars)
	}
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: invalid UTF-8", ErrCellValue)
	}
	for i, r := range s {
		if !xmlChar(r) {
			return fmt.Errorf("%w: character %U at byte %d", ErrCellValue, r, i)
		}
	}
	return nil
}

// xmlChar sigue la producción Char de XML 1.0.
func xmlChar(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return true
	case r < 0x20, r == 0xFFFE, r == 0xFFFF:
		return false
	}
	return true
}

func cellValue(col int, s string) any {
	if numericCols[col] && s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	}
	return s
}
