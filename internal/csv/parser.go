package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"tobaccoform/internal/models"

	"github.com/jszwec/csvutil"
)

type Parser struct {
	filename string
}

func NewParser(filename string) *Parser {
	return &Parser{filename: filename}
}

// row mirrors a CSV line before the taste is checked.
type row struct {
	Brand   string `csv:"brand"`
	Taste   string `csv:"taste"`
	Flavour string `csv:"flavour"`
}

// ParseRecords reads brand,taste,flavour rows. Header names are matched
// case-insensitively; brands are trimmed, flavours are kept as written.
func (p *Parser) ParseRecords() ([]models.TobaccoRecord, error) {
	file, err := os.Open(p.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

// Decode reads records from r. A taste that does not parse is passed
// through unchanged so callers can report the row.
func Decode(r io.Reader) ([]models.TobaccoRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	decoder, err := csvutil.NewDecoder(reader, header...)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder: %w", err)
	}

	var rows []row
	if err := decoder.Decode(&rows); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode CSV: %w", err)
	}

	records := make([]models.TobaccoRecord, 0, len(rows))
	for _, r := range rows {
		taste, err := models.ParseTaste(r.Taste)
		if err != nil {
			taste = models.Taste(r.Taste)
		}
		records = append(records, models.TobaccoRecord{
			Brand:   strings.TrimSpace(r.Brand),
			Taste:   taste,
			Flavour: r.Flavour,
		})
	}
	return records, nil
}
