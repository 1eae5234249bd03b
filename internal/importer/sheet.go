package importer

import (
	"bytes"
	"encoding/binary"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/extrame/xls"
	"github.com/richardlehane/mscfb"
	"github.com/xuri/excelize/v2"
	"github.com/xuri/nfp"

	"github.com/kadro-api/internal/domain"
)

// serialDate - число из ячейки с форматом даты. Как текст остаётся числом,
// датой становится только в колонке с датой.
type serialDate struct {
	value    float64
	date1904 bool
}

func (s serialDate) time() (time.Time, error) {
	return excelize.ExcelDateToTime(s.value, s.date1904)
}

// ReadSheet читает первый лист файла в сетку ячеек. Формат определяется по расширению.
func ReadSheet(filename string, r io.Reader) ([][]any, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm", ".xls":
		return readWorkbook(r)
	case ".csv":
		return readCSV(r)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFileType, filepath.Ext(filename))
	}
}

// compoundMagic - сигнатура составного файла OLE2, в котором живёт двоичный .xls
var compoundMagic = []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}

// readWorkbook выбирает читатель по содержимому, а не по расширению:
// .xls нередко оказывается xlsx и наоборот.
func readWorkbook(r io.Reader) ([][]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableFile, err)
	}
	if bytes.HasPrefix(data, compoundMagic) {
		return readLegacyWorkbook(data)
	}
	return readOpenXML(data)
}

func readOpenXML(data []byte) ([][]any, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableFile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.ErrMissingHeader
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableFile, err)
	}

	var date1904 bool
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	dates := make(map[int]bool)
	grid := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, raw := range row {
			cells[j] = raw
			if raw == "" || i == 0 {
				continue
			}
			serial, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				continue
			}
			styleID, err := f.GetCellStyle(sheet, axis)
			if err != nil {
				continue
			}
			isDate, ok := dates[styleID]
			if !ok {
				isDate = dateStyle(f, styleID)
				dates[styleID] = isDate
			}
			if isDate {
				cells[j] = serialDate{value: serial, date1904: date1904}
			}
		}
		grid[i] = cells
	}
	return grid, nil
}

// dateStyle сообщает, отформатирована ли ячейка как дата
func dateStyle(f *excelize.File, styleID int) bool {
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		return dateFormat(*style.CustomNumFmt)
	}
	switch n := style.NumFmt; {
	case n >= 14 && n <= 22, n >= 27 && n <= 36, n >= 45 && n <= 47, n >= 50 && n <= 58:
		return true
	}
	return false
}

// dateFormat разбирает пользовательский формат числа. Датой считается формат
// с токеном дня или года; текст в скобках и кавычках токеном даты не является.
func dateFormat(format string) bool {
	p := nfp.NumberFormatParser()
	for _, section := range p.Parse(format) {
		for _, token := range section.Items {
			if token.TType != nfp.TokenTypeDateTimes {
				continue
			}
			if strings.ContainsAny(strings.ToLower(token.TValue), "dy") {
				return true
			}
		}
	}
	return false
}

// readLegacyWorkbook читает двоичную книгу BIFF. Контейнер сначала проверяется
// через mscfb: читатель xls не переживает битых цепочек секторов.
func readLegacyWorkbook(data []byte) (grid [][]any, err error) {
	if err := checkCompound(data); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableFile, err)
	}
	defer func() {
		if r := recover(); r != nil {
			grid, err = nil, fmt.Errorf("%w: %v", domain.ErrUnreadableFile, r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableFile, err)
	}
	if wb == nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableFile, errNoWorkbookStream)
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, domain.ErrMissingHeader
	}

	grid = make([][]any, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		grid = append(grid, legacyRow(sheet, i))
	}
	return grid, nil
}

var errNoWorkbookStream = errors.New("нет потока книги")

// checkCompound проверяет заголовок и дочитывает поток книги до конца
func checkCompound(data []byte) error {
	if len(data) < 512 {
		return errors.New("усечённый заголовок")
	}
	// поддерживаются только секторы по 512 байт
	if shift := binary.LittleEndian.Uint16(data[30:32]); shift != 9 {
		return fmt.Errorf("размер сектора 1<<%d", shift)
	}
	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return err
	}
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if entry.Name != "Workbook" && entry.Name != "Book" {
			continue
		}
		n, err := io.Copy(io.Discard, entry)
		if err != nil {
			return err
		}
		if n != entry.Size {
			return fmt.Errorf("поток книги: прочитано %d из %d байт", n, entry.Size)
		}
		return nil
	}
	return errNoWorkbookStream
}

// legacyRow возвращает ячейки строки; отсутствующая строка пуста
func legacyRow(sheet *xls.WorkSheet, i int) (cells []any) {
	defer func() {
		if recover() != nil {
			cells = nil
		}
	}()
	row := sheet.Row(i)
	cells = make([]any, row.LastCol())
	for j := range cells {
		s := row.Col(j)
		cells[j] = s
		if i == 0 {
			continue
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			cells[j] = serialDate{value: legacySerial(t)}
		}
	}
	return cells
}

var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// legacySerial восстанавливает число, которое читатель xls отдал датой
// для ячейки с пользовательским форматом
func legacySerial(t time.Time) float64 {
	serial := float64(t.Unix()-excelEpoch.Unix())/86400 + float64(t.Nanosecond())/86400e9
	// время отдаётся с точностью до секунды
	if d := math.Round(serial); math.Abs(serial-d) < 2.0/86400 {
		return d
	}
	return serial
}

var csvDelimiters = []rune{';', ',', '\t'}

// readCSV читает CSV; разделитель угадывается по строке заголовков
func readCSV(r io.Reader) ([][]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableFile, err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	header, _, _ := bytes.Cut(data, []byte("\n"))
	comma := ','
	best := 0
	for _, d := range csvDelimiters {
		if n := bytes.Count(header, []byte(string(d))); n > best {
			comma, best = d, n
		}
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = comma
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableFile, err)
	}

	grid := make([][]any, len(records))
	for i, rec := range records {
		cells := make([]any, len(rec))
		for j, v := range rec {
			cells[j] = v
		}
		grid[i] = cells
	}
	return grid, nil
}
