package spreadsheet

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Roster imports read the first worksheet, column A, skipping the
// header row. Only spreadsheet uploads (.xlsx, .xls) are accepted.

var allowedExtensions = map[string]bool{
	".xlsx": true,
	".xls":  true,
}

// ErrUnsupportedFile is returned for non-spreadsheet uploads.
var ErrUnsupportedFile = fmt.Errorf("only .xlsx and .xls files are supported")

// IsSupported checks the upload's extension.
func IsSupported(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// ParseEmails extracts email addresses from column A of the first
// worksheet, skipping the header row. Blank cells are dropped and
// values are trimmed and lowercased.
func ParseEmails(r io.Reader, filename string) ([]string, error) {
	if !IsSupported(filename) {
		return nil, ErrUnsupportedFile
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no worksheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet: %w", err)
	}

	var emails []string
	seen := make(map[string]bool)
	for i, row := range rows {
		if i == 0 {
			// header
			continue
		}
		if len(row) == 0 {
			continue
		}
		email := strings.ToLower(strings.TrimSpace(row[0]))
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true
		emails = append(emails, email)
	}

	return emails, nil
}

// SampleTemplate builds the downloadable .xlsx template with the email
// column header.
func SampleTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetCellValue(sheet, "A1", "Email"); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", "A", 32); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
