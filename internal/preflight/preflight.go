// Package preflight checks a dataset file locally before uploading it,
// so that obviously unusable files never reach the backend.
package preflight

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/asdp-project/asdp-cli/internal/fsx"
	"github.com/xuri/excelize/v2"
)

// MaxFileSize is the maximum size of an uploaded file.
const MaxFileSize = 16 << 20

var (
	// ErrUnsupportedExtension indicates a file that is not CSV, XLSX, or XLS.
	ErrUnsupportedExtension = errors.New("unsupported file type")

	// ErrEmptyFile indicates a zero-length file.
	ErrEmptyFile = errors.New("the file is empty")

	// ErrFileTooLarge indicates a file larger than [MaxFileSize].
	ErrFileTooLarge = errors.New("the file is larger than 16 MB")

	// ErrUnreadable indicates a file whose content does not match its format.
	ErrUnreadable = errors.New("cannot read the file")
)

// Format is a supported dataset format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
)

// formatsByExtension maps lowercase extensions to formats.
var formatsByExtension = map[string]Format{
	".csv":  FormatCSV,
	".xlsx": FormatXLSX,
	".xls":  FormatXLS,
}

// Report describes a file that passed the checks.
type Report struct {
	// Name is the file name.
	Name string

	// Size is the file size in bytes.
	Size int

	// Format is the detected format.
	Format Format

	// Sheet is the name of the first sheet (XLSX only).
	Sheet string

	// Header contains the header record, when available (CSV and XLSX).
	Header []string
}

// oleMagic is the signature of the compound file format used by XLS.
var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// Check verifies that content, read from the file called name,
// is a dataset that the backend may accept.
func Check(name string, content []byte) (*Report, error) {
	format, found := formatsByExtension[strings.ToLower(filepath.Ext(name))]
	if !found {
		return nil, fmt.Errorf("%w: %s (expected .csv, .xlsx, or .xls)", ErrUnsupportedExtension, filepath.Base(name))
	}
	if len(content) <= 0 {
		return nil, ErrEmptyFile
	}
	if len(content) > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	report := &Report{Name: filepath.Base(name), Size: len(content), Format: format}
	var err error
	switch format {
	case FormatCSV:
		report.Header, err = csvHeader(content)
	case FormatXLSX:
		report.Sheet, report.Header, err = xlsxHeader(content)
	case FormatXLS:
		if !bytes.HasPrefix(content, oleMagic) {
			err = fmt.Errorf("%w: not an XLS workbook", ErrUnreadable)
		}
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

// CheckFile reads the file at pathname and runs [Check] on it. It
// returns the report and the file content.
func CheckFile(pathname string) (*Report, []byte, error) {
	content, err := fsx.ReadFileLimited(pathname, MaxFileSize)
	if errors.Is(err, fsx.ErrFileTooLarge) {
		return nil, nil, ErrFileTooLarge
	}
	if err != nil {
		return nil, nil, err
	}
	report, err := Check(pathname, content)
	if err != nil {
		return nil, nil, err
	}
	return report, content, nil
}

func csvHeader(content []byte) ([]string, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid CSV header: %s", ErrUnreadable, err.Error())
	}
	if strings.TrimSpace(strings.Join(header, "")) == "" {
		return nil, fmt.Errorf("%w: empty CSV header", ErrUnreadable)
	}
	return header, nil
}

func xlsxHeader(content []byte) (string, []string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return "", nil, fmt.Errorf("%w: failed to open Excel file: %s", ErrUnreadable, err.Error())
	}
	defer f.Close()
	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return "", nil, fmt.Errorf("%w: no sheets found in Excel file", ErrUnreadable)
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return "", nil, fmt.Errorf("%w: failed to get rows: %s", ErrUnreadable, err.Error())
	}
	if len(rows) <= 0 {
		return sheetName, nil, nil
	}
	return sheetName, rows[0], nil
}
