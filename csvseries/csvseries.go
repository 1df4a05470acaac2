package csvseries

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// Schema selects how the timestamp column of a row is interpreted.
type Schema int

const (
	// SchemaAuto accepts an integer year and falls back to the known date layouts.
	SchemaAuto Schema = iota
	// SchemaYear accepts only integer years, e.g. "1998,12.3".
	SchemaYear
	// SchemaDate accepts only date strings, e.g. "1998-03-15,12.3".
	SchemaDate
)

const (
	MinYear = 1
	MaxYear = 9999
)

// DateLayouts are tried in order when a timestamp is parsed as a date string.
var DateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01",
	"2006/01/02",
	"2006/01",
	"01/02/2006",
	"02-Jan-2006",
	"Jan 2006",
	"January 2006",
}

// ParseSchema maps a configuration string onto a Schema.
func ParseSchema(s string) (Schema, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return SchemaAuto, nil
	case "year":
		return SchemaYear, nil
	case "date":
		return SchemaDate, nil
	default:
		return SchemaAuto, fmt.Errorf("unknown csv schema %q, allowed: auto, year, date", s)
	}
}

func (s Schema) String() string {
	switch s {
	case SchemaYear:
		return "year"
	case SchemaDate:
		return "date"
	default:
		return "auto"
	}
}

// Options configures parsing of the two column timestamp/value format.
type Options struct {
	Schema Schema

	// Header is the expected header line. It is only compared by HeaderMismatch and
	// never causes rows to be rejected.
	Header string
}

func NewDefaultOptions() *Options {
	return &Options{
		Schema: SchemaAuto,
	}
}

// Sample is a single accepted row.
type Sample struct {
	Time  time.Time
	Year  int
	Value float64
}

// Lines splits text on any line ending style, trims every line and drops the empty ones.
func Lines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Parse converts csv text into samples. The first non empty line is treated as the header
// and skipped. Rows without a finite value or a resolvable year are dropped silently.
func Parse(text string, opt *Options) []Sample {
	if opt == nil {
		opt = NewDefaultOptions()
	}

	lines := Lines(text)
	if len(lines) < 2 {
		return []Sample{}
	}

	samples := make([]Sample, 0, len(lines)-1)
	for _, line := range lines[1:] {
		s, ok := ParseRow(line, opt.Schema)
		if !ok {
			continue
		}
		samples = append(samples, s)
	}
	return samples
}

// ParseReader reads all of r and parses it. Only read failures are returned as errors.
func ParseReader(r io.Reader, opt *Options) ([]Sample, error) {
	var sb strings.Builder
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		sb.WriteString(scanner.Text())
		sb.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to read csv input, %w", err)
	}
	return Parse(sb.String(), opt), nil
}

// HeaderMismatch reports whether an expected header is configured and the first line of
// text differs from it.
func HeaderMismatch(text string, opt *Options) (string, bool) {
	if opt == nil || opt.Header == "" {
		return "", false
	}
	lines := Lines(text)
	if len(lines) == 0 {
		return "", true
	}
	return lines[0], !strings.EqualFold(lines[0], strings.TrimSpace(opt.Header))
}

// ParseRow parses a single data line split on its first comma.
func ParseRow(line string, schema Schema) (Sample, bool) {
	tsField, valField, found := strings.Cut(line, ",")
	if !found {
		return Sample{}, false
	}

	val, err := strconv.ParseFloat(strings.TrimSpace(valField), 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return Sample{}, false
	}

	ts, ok := ParseTimestamp(strings.TrimSpace(tsField), schema)
	if !ok {
		return Sample{}, false
	}
	return Sample{Time: ts, Year: ts.Year(), Value: val}, true
}

// ParseTimestamp resolves a timestamp field to a time with a valid calendar year. Dates with an
// explicit offset keep it so the calendar year is the one written in the field.
func ParseTimestamp(field string, schema Schema) (time.Time, bool) {
	if field == "" {
		return time.Time{}, false
	}

	if schema == SchemaAuto || schema == SchemaYear {
		if year, err := strconv.Atoi(field); err == nil {
			if year < MinYear || year > MaxYear {
				return time.Time{}, false
			}
			return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
		}
		if schema == SchemaYear {
			return time.Time{}, false
		}
	}

	for _, layout := range DateLayouts {
		ts, err := time.Parse(layout, field)
		if err != nil {
			continue
		}
		if ts.Year() < MinYear || ts.Year() > MaxYear {
			return time.Time{}, false
		}
		return ts, true
	}
	return time.Time{}, false
}
