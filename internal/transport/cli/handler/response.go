package handler

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/katiamach/ornl/internal/model"
	"golang.org/x/text/width"
)

const (
	maxTableRows   = 20
	maxColumnWidth = 40
	missingValue   = "N/A"
)

type column struct {
	key    string
	label  string
	format func(v any, ok bool) string
}

var recordColumns = []column{
	{key: "year", label: "Year", format: formatPlain},
	{key: "yday", label: "Day", format: formatPlain},
	{key: "prcp", label: "Precip (mm)", format: formatMeasurement},
	{key: "tmax", label: "Tmax (°C)", format: formatMeasurement},
	{key: "tmin", label: "Tmin (°C)", format: formatMeasurement},
}

func (c *WeatherCLI) printSuccess(msg string) {
	fmt.Fprintln(c.out, "✓ "+msg)
}

func (c *WeatherCLI) printError(msg string) {
	fmt.Fprintln(c.errOut, "✗ "+msg)
}

// printText writes s followed by exactly one newline.
func (c *WeatherCLI) printText(s string) {
	fmt.Fprint(c.out, strings.TrimSuffix(s, "\n")+"\n")
}

// printJSON pretty-prints JSON responses. Text bodies are written verbatim.
func (c *WeatherCLI) printJSON(resp model.Response) error {
	var value any

	switch r := resp.(type) {
	case model.Records:
		value = []any(r)
	case model.Document:
		value = r.Value
	case model.Text:
		c.printText(string(r))
		return nil
	default:
		return fmt.Errorf("unexpected response type %T", resp)
	}

	enc := json.NewEncoder(c.out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	err := enc.Encode(value)
	if err != nil {
		return fmt.Errorf("can't marshal the response: %w", err)
	}

	return nil
}

// printRaw writes text bodies as received and anything else as JSON.
func (c *WeatherCLI) printRaw(resp model.Response) error {
	if text, ok := resp.(model.Text); ok {
		c.printText(string(text))
		return nil
	}

	return c.printJSON(resp)
}

// printRecords renders the first maxTableRows records as a table.
func (c *WeatherCLI) printRecords(records model.Records) {
	if len(records) == 0 {
		fmt.Fprintln(c.out, "No results found.")
		return
	}

	sample := records
	if len(sample) > maxTableRows {
		sample = sample[:maxTableRows]
	}

	rows := make([][]string, 0, len(sample))
	for _, rec := range sample {
		fields, _ := rec.(map[string]any)

		row := make([]string, 0, len(recordColumns))
		for _, col := range recordColumns {
			v, ok := fields[col.key]
			row = append(row, col.format(v, ok))
		}
		rows = append(rows, row)
	}

	widths := make([]int, len(recordColumns))
	for i, col := range recordColumns {
		widths[i] = displayWidth(col.label)
		for _, row := range rows {
			if w := displayWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
		if widths[i] > maxColumnWidth {
			widths[i] = maxColumnWidth
		}
	}

	labels := make([]string, 0, len(recordColumns))
	for _, col := range recordColumns {
		labels = append(labels, col.label)
	}

	header := formatRow(labels, widths)
	fmt.Fprintln(c.out, header)
	fmt.Fprintln(c.out, strings.Repeat("─", displayWidth(header)))

	for _, row := range rows {
		fmt.Fprintln(c.out, formatRow(row, widths))
	}

	fmt.Fprintf(c.out, "\n%d record(s)\n", len(rows))

	if len(records) > maxTableRows {
		fmt.Fprintf(c.out, "\nShowing first %d of %d records. Use --json to see all.\n", maxTableRows, len(records))
	}
}

func formatRow(cells []string, widths []int) string {
	padded := make([]string, 0, len(cells))
	for i, cell := range cells {
		padded = append(padded, padRight(truncate(cell, widths[i]), widths[i]))
	}

	return strings.Join(padded, "  ")
}

// formatPlain shows the value as is, or nothing when absent.
func formatPlain(v any, ok bool) string {
	if !ok || v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// formatMeasurement shows one decimal place. Zero is a valid measurement;
// only absent, null or non-numeric values are missing.
func formatMeasurement(v any, ok bool) string {
	if !ok || v == nil {
		return missingValue
	}

	var (
		f   float64
		err error
	)
	switch val := v.(type) {
	case json.Number:
		f, err = val.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(val), 64)
	case float64:
		f = val
	default:
		return missingValue
	}
	if err != nil {
		return missingValue
	}

	return formatOneDecimal(f)
}

// formatOneDecimal rounds the exact binary value of f to one decimal place,
// ties away from zero, so 1.25 is "1.3" while 3.55 (stored as 3.5499...) is "3.5".
func formatOneDecimal(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return missingValue
	}

	// 53 mantissa bits times 10 fit in 64 bits, so these operations are exact
	scaled := new(big.Float).SetPrec(64).SetFloat64(math.Abs(f))
	scaled.Mul(scaled, big.NewFloat(10))

	n, _ := scaled.Int(nil)
	frac := new(big.Float).SetPrec(64).Sub(scaled, new(big.Float).SetInt(n))
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		n.Add(n, big.NewInt(1))
	}

	digits := n.String()
	if len(digits) < 2 {
		digits = "0" + digits
	}

	s := digits[:len(digits)-1] + "." + digits[len(digits)-1:]
	if f < 0 {
		s = "-" + s
	}

	return s
}

func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// displayWidth counts terminal cells, wide characters take two.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		n += runeWidth(r)
	}

	return n
}

func truncate(s string, max int) string {
	if displayWidth(s) <= max {
		return s
	}

	var b strings.Builder
	n := 0
	for _, r := range s {
		w := runeWidth(r)
		if n+w > max {
			break
		}
		b.WriteRune(r)
		n += w
	}

	return b.String()
}

func padRight(s string, w int) string {
	if n := displayWidth(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}

	return s
}
