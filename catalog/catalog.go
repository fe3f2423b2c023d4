// Package catalog holds the static, read-only flight dataset queried by the
// assistant's lookup tools.
//
// A Catalog is fixed at construction time. Lookups are case-insensitive on the
// flight identifier; route search is a linear case-insensitive substring match
// on origin and destination.
//
//	c := catalog.Default()
//	rec, ok := c.Lookup("aa123")        // same as Lookup("AA123")
//	all := c.Search("", "")             // every record, catalog order
//	west := c.Search("san francisco", "") // origin contains "san francisco"
package catalog

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrDuplicateFlight is returned when two records share an identifier.
	ErrDuplicateFlight = errors.New("duplicate flight")

	// ErrEmptyFlightID is returned for records without an identifier.
	ErrEmptyFlightID = errors.New("flight id is empty")
)

// FlightRecord is one scheduled flight. Gate and Terminal are optional; the
// empty string means absent.
type FlightRecord struct {
	ID          string `json:"flight_number" yaml:"flight_number"`
	Origin      string `json:"departure_city" yaml:"departure_city"`
	Destination string `json:"arrival_city" yaml:"arrival_city"`
	Departure   string `json:"departure_time" yaml:"departure_time"`
	Arrival     string `json:"arrival_time" yaml:"arrival_time"`
	Status      string `json:"status" yaml:"status"`
	Gate        string `json:"gate,omitempty" yaml:"gate,omitempty"`
	Terminal    string `json:"terminal,omitempty" yaml:"terminal,omitempty"`
}

// Catalog is an immutable set of flight records keyed by upper-cased
// identifier. It is safe for concurrent reads.
type Catalog struct {
	records []FlightRecord
	byID    map[string]int
}

// New builds a catalog from records, preserving their order. Identifiers are
// normalized to upper case; empty or duplicate identifiers are rejected.
func New(records ...FlightRecord) (*Catalog, error) {
	c := &Catalog{
		records: make([]FlightRecord, 0, len(records)),
		byID:    make(map[string]int, len(records)),
	}
	for i, rec := range records {
		key := normalizeID(rec.ID)
		if key == "" {
			return nil, errors.Wrapf(ErrEmptyFlightID, "record %d", i)
		}
		if _, exists := c.byID[key]; exists {
			return nil, errors.Wrapf(ErrDuplicateFlight, "%s", key)
		}
		rec.ID = key
		c.byID[key] = len(c.records)
		c.records = append(c.records, rec)
	}
	return c, nil
}

// MustNew is like New but panics on error.
// Use this for catalogs defined at init time.
func MustNew(records ...FlightRecord) *Catalog {
	c, err := New(records...)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the record for id. The identifier is trimmed and upper-cased
// first, so Lookup("aa123") and Lookup("AA123") are the same.
func (c *Catalog) Lookup(id string) (FlightRecord, bool) {
	idx, ok := c.byID[normalizeID(id)]
	if !ok {
		return FlightRecord{}, false
	}
	return c.records[idx], true
}

// All returns every record in catalog order. The slice is a copy.
func (c *Catalog) All() []FlightRecord {
	out := make([]FlightRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Search returns the records whose origin contains origin and whose
// destination contains dest, both case-insensitively, in catalog order. An
// empty substring matches every value.
func (c *Catalog) Search(origin, dest string) []FlightRecord {
	origin = strings.ToLower(origin)
	dest = strings.ToLower(dest)

	var out []FlightRecord
	for _, rec := range c.records {
		if strings.Contains(strings.ToLower(rec.Origin), origin) &&
			strings.Contains(strings.ToLower(rec.Destination), dest) {
			out = append(out, rec)
		}
	}
	return out
}

func normalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
