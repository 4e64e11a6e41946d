// Package document converts uploaded files into plain text for outline
// generation. Parsing is all-or-nothing: any failure discards the result.
package document

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/extrame/xls"
	"github.com/ledongthuc/pdf"
	"github.com/russross/blackfriday/v2"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrUnsupportedFormat is returned for extensions outside the allow-list.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrParseFailure wraps decode errors from the underlying readers.
	ErrParseFailure = errors.New("failed to parse document")
)

// Extensions accepted by Parse, without the leading dot.
var SupportedExtensions = []string{"txt", "md", "docx", "pdf", "xlsx", "xls", "csv"}

func Supported(extension string) bool {
	for _, ext := range SupportedExtensions {
		if ext == extension {
			return true
		}
	}
	return false
}

// Parse converts file bytes to plain text based on the declared filename
// extension.
func Parse(data []byte, filename string) (string, error) {
	extension := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")

	switch extension {
	case "txt":
		return string(data), nil
	case "md":
		return parseMarkdown(data), nil
	case "docx":
		return parseWord(data)
	case "pdf":
		return parsePDF(data)
	case "xlsx":
		return parseExcel(data)
	case "xls":
		return parseLegacyExcel(data)
	case "csv":
		return parseCSV(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, extension)
	}
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// parseMarkdown renders markdown to HTML, then strips tags and the common
// entities, mirroring how the front end previews pasted markdown.
func parseMarkdown(data []byte) string {
	html := string(blackfriday.Run(data))
	text := htmlTagPattern.ReplaceAllString(html, "")
	replacer := strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	)
	return strings.TrimSpace(replacer.Replace(text))
}

// parseWord pulls the text runs out of word/document.xml.
func parseWord(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrParseFailure, err)
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", fmt.Errorf("%w: %v", ErrParseFailure, err)
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", fmt.Errorf("%w: %v", ErrParseFailure, err)
			}
			break
		}
	}
	if docXML == nil {
		return "", fmt.Errorf("%w: word/document.xml not found", ErrParseFailure)
	}

	var sb strings.Builder
	dec := xml.NewDecoder(bytes.NewReader(docXML))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrParseFailure, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				var v string
				if err := dec.DecodeElement(&v, &t); err == nil {
					sb.WriteString(v)
				}
			}
		case xml.EndElement:
			// paragraph boundary
			if t.Name.Local == "p" {
				sb.WriteString("\n")
			}
		}
	}

	return strings.TrimSpace(sb.String()), nil
}

func parsePDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrParseFailure, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrParseFailure, err)
	}

	text, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrParseFailure, err)
	}

	return strings.TrimSpace(string(text)), nil
}

// parseExcel flattens every sheet into "[SheetName]" headed blocks, one line
// per non-blank row, cells joined with " | ".
func parseExcel(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	defer f.Close()

	var sheets []string
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrParseFailure, err)
		}

		lines := flattenRows(rows)
		if len(lines) > 0 {
			sheets = append(sheets, "["+sheetName+"]\n"+strings.Join(lines, "\n"))
		}
	}

	return strings.Join(sheets, "\n\n"), nil
}

func parseLegacyExcel(data []byte) (string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrParseFailure, err)
	}

	var sheets []string
	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}

		var rows [][]string
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				continue
			}
			var cells []string
			for c := row.FirstCol(); c <= row.LastCol(); c++ {
				cells = append(cells, row.Col(c))
			}
			rows = append(rows, cells)
		}

		lines := flattenRows(rows)
		if len(lines) > 0 {
			sheets = append(sheets, "["+sheet.Name+"]\n"+strings.Join(lines, "\n"))
		}
	}

	return strings.Join(sheets, "\n\n"), nil
}

func parseCSV(data []byte) (string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrParseFailure, err)
	}

	return strings.Join(flattenRows(rows), "\n"), nil
}

// flattenRows drops blank cells, joins the rest with " | ", and drops rows
// that end up empty.
func flattenRows(rows [][]string) []string {
	var lines []string
	for _, row := range rows {
		var cells []string
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				cells = append(cells, cell)
			}
		}
		if len(cells) > 0 {
			lines = append(lines, strings.Join(cells, " | "))
		}
	}
	return lines
}
