package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildSheet(t *testing.T, rows []string) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Email"))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", cell, row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("roster.xlsx"))
	assert.True(t, IsSupported("ROSTER.XLSX"))
	assert.True(t, IsSupported("legacy.xls"))
	assert.False(t, IsSupported("roster.csv"))
	assert.False(t, IsSupported("roster"))
}

func TestParseEmailsNormalizesAndDedupes(t *testing.T) {
	file := buildSheet(t, []string{
		"  Alice@Example.com ",
		"bob@example.com",
		"alice@example.com",
		"",
		"carol@example.com",
	})

	emails, err := ParseEmails(file, "roster.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice@example.com", "bob@example.com", "carol@example.com"}, emails)
}

func TestParseEmailsSkipsHeader(t *testing.T) {
	file := buildSheet(t, []string{"only@example.com"})

	emails, err := ParseEmails(file, "roster.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []string{"only@example.com"}, emails)
}

func TestParseEmailsRejectsUnsupported(t *testing.T) {
	_, err := ParseEmails(bytes.NewReader([]byte("a,b,c\n")), "roster.csv")
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestSampleTemplateRoundTrip(t *testing.T) {
	data, err := SampleTemplate()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(f.GetSheetName(0), "A1")
	require.NoError(t, err)
	assert.Equal(t, "Email", header)
}
