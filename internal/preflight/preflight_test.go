package preflight

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func newXLSX(t *testing.T, header ...string) []byte {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for idx, value := range header {
		cell, err := excelize.CoordinatesToCellName(idx+1, 1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			t.Fatal(err)
		}
	}
	buffer, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buffer.Bytes()
}

func TestCheck(t *testing.T) {
	xls := append(append([]byte{}, oleMagic...), 0, 0, 0, 0)
	type testcase struct {
		name       string
		fileName   string
		content    []byte
		wantErr    error
		wantFormat Format
		wantHeader []string
	}
	tests := []testcase{{
		name:     "with unsupported extension",
		fileName: "survey.json",
		content:  []byte("{}"),
		wantErr:  ErrUnsupportedExtension,
	}, {
		name:     "with no extension",
		fileName: "survey",
		content:  []byte("a,b\n"),
		wantErr:  ErrUnsupportedExtension,
	}, {
		name:     "with empty file",
		fileName: "survey.csv",
		content:  nil,
		wantErr:  ErrEmptyFile,
	}, {
		name:     "with file too large",
		fileName: "survey.csv",
		content:  bytes.Repeat([]byte("a"), MaxFileSize+1),
		wantErr:  ErrFileTooLarge,
	}, {
		name:       "with CSV",
		fileName:   "survey.csv",
		content:    []byte("age,income\n1,2\n"),
		wantFormat: FormatCSV,
		wantHeader: []string{"age", "income"},
	}, {
		name:       "with uppercase extension and BOM",
		fileName:   "SURVEY.CSV",
		content:    []byte("\xef\xbb\xbfage,income\n1,2\n"),
		wantFormat: FormatCSV,
		wantHeader: []string{"age", "income"},
	}, {
		name:       "with bare quote in CSV header",
		fileName:   "survey.csv",
		content:    []byte("a,b\"c\n1,2\n"),
		wantFormat: FormatCSV,
		wantHeader: []string{"a", "b\"c"},
	}, {
		name:     "with only blank lines",
		fileName: "survey.csv",
		content:  []byte("\n\n"),
		wantErr:  ErrUnreadable,
	}, {
		name:     "with blank CSV header",
		fileName: "survey.csv",
		content:  []byte(",,\n1,2,3\n"),
		wantErr:  ErrUnreadable,
	}, {
		name:       "with XLSX",
		fileName:   "survey.xlsx",
		content:    newXLSX(t, "age", "income"),
		wantFormat: FormatXLSX,
		wantHeader: []string{"age", "income"},
	}, {
		name:     "with bogus XLSX",
		fileName: "survey.xlsx",
		content:  []byte("age,income\n"),
		wantErr:  ErrUnreadable,
	}, {
		name:       "with XLS",
		fileName:   "survey.xls",
		content:    xls,
		wantFormat: FormatXLS,
	}, {
		name:     "with bogus XLS",
		fileName: "survey.xls",
		content:  []byte("age,income\n"),
		wantErr:  ErrUnreadable,
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Check(tt.fileName, tt.content)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) || report != nil {
					t.Fatal("expected", tt.wantErr, "got", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if report.Format != tt.wantFormat || report.Size != len(tt.content) {
				t.Fatal("unexpected report", report)
			}
			if diff := cmp.Diff(tt.wantHeader, report.Header); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("with a readable file", func(t *testing.T) {
		pathname := filepath.Join(dir, "survey.csv")
		if err := os.WriteFile(pathname, []byte("age\n1\n"), 0600); err != nil {
			t.Fatal(err)
		}
		report, content, err := CheckFile(pathname)
		if err != nil {
			t.Fatal(err)
		}
		if report.Name != "survey.csv" || string(content) != "age\n1\n" {
			t.Fatal("unexpected result", report, string(content))
		}
	})

	t.Run("with a directory", func(t *testing.T) {
		if _, _, err := CheckFile(dir); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("with a file too large", func(t *testing.T) {
		pathname := filepath.Join(dir, "big.csv")
		if err := os.WriteFile(pathname, bytes.Repeat([]byte("a"), MaxFileSize+10), 0600); err != nil {
			t.Fatal(err)
		}
		if _, _, err := CheckFile(pathname); !errors.Is(err, ErrFileTooLarge) {
			t.Fatal("expected ErrFileTooLarge, got", err)
		}
	})
}
