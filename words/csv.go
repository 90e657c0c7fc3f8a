package words

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// WriteCSV writes the catalog as "category,word" rows in card order.
func WriteCSV(w io.Writer, c Catalog) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"category", "word"}); err != nil {
		return err
	}
	for _, cat := range Categories {
		for _, word := range c[cat] {
			if err := cw.Write([]string{string(cat), word}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a word set written by WriteCSV, or any CSV whose header names a
// "category" and a "word" column. Rows with an unknown category or an empty
// word are skipped.
func ReadCSV(r io.Reader) (Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("empty csv")
	}
	if err != nil {
		return nil, errors.Wrap(err, "read csv header")
	}

	catCol, wordCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "category":
			catCol = i
		case "word":
			wordCol = i
		}
	}
	if catCol < 0 || wordCol < 0 {
		return nil, errors.WithHint(
			errors.New("csv header must name a category and a word column"),
			`the first line should look like "category,word"`,
		)
	}

	c := NewCatalog()
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read csv row")
		}
		if catCol >= len(row) || wordCol >= len(row) {
			continue
		}
		cat, ok := ParseCategory(row[catCol])
		if !ok {
			continue
		}
		word := Normalize(row[wordCol])
		if word == "" {
			continue
		}
		c[cat] = append(c[cat], word)
	}
	return c, nil
}
