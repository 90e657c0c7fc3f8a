package words

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrLoad marks every failure to produce a usable catalog from a source.
var ErrLoad = errors.New("failed to load words")

// Report counts what happened to the records of one load.
type Report struct {
	Total           int              `json:"total"`
	Accepted        int              `json:"accepted"`
	MissingFields   int              `json:"missing_fields"`
	InvalidCategory int              `json:"invalid_category"`
	Counts          map[Category]int `json:"counts"`
}

// Dropped is the number of records that did not make it into the catalog.
func (r Report) Dropped() int {
	return r.MissingFields + r.InvalidCategory
}

// ParseJSON reads an array of {"Word": ..., "Category": ...} objects. Keys are
// matched exactly. Malformed records are dropped and counted; an empty array or
// no usable records at all is an error.
func ParseJSON(data []byte) (Catalog, Report, error) {
	var rep Report

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, rep, errors.Mark(errors.Wrap(err, "parse words json"), ErrLoad)
	}
	if len(items) == 0 {
		return nil, rep, errors.Mark(errors.New("expected a non-empty array of words"), ErrLoad)
	}

	cat := NewCatalog()
	rep.Total = len(items)
	for _, raw := range items {
		var item map[string]any
		if err := json.Unmarshal(raw, &item); err != nil {
			rep.MissingFields++
			continue
		}
		word, okW := stringField(item, "Word")
		category, okC := stringField(item, "Category")
		if !okW || !okC {
			rep.MissingFields++
			continue
		}
		c, ok := ParseCategory(category)
		if !ok {
			rep.InvalidCategory++
			continue
		}
		cat[c] = append(cat[c], strings.ToUpper(word))
		rep.Accepted++
	}
	rep.Counts = cat.Counts()

	if rep.Accepted == 0 {
		return nil, rep, errors.WithHint(
			errors.Mark(errors.Newf("no usable records among %d", rep.Total), ErrLoad),
			"each record needs a non-empty Word and a Category of future, thing or theme",
		)
	}
	return cat, rep, nil
}

func stringField(item map[string]any, key string) (string, bool) {
	v, ok := item[key].(string)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// Load fetches src once and parses it. src is a local path or an http(s) URL.
func Load(ctx context.Context, src string) (Catalog, Report, error) {
	data, err := fetch(ctx, src)
	if err != nil {
		return nil, Report{}, errors.Mark(errors.Wrapf(err, "read %s", src), ErrLoad)
	}
	return ParseJSON(data)
}

// IsRemote reports whether src is fetched over HTTP rather than read from disk.
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

var httpClient = &http.Client{Timeout: 15 * time.Second}

func fetch(ctx context.Context, src string) ([]byte, error) {
	if !IsRemote(src) {
		return os.ReadFile(src)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
