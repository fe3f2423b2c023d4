package catalog

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// file is the on-disk catalog layout:
//
//	flights:
//	  - flight_number: AA123
//	    departure_city: New York (JFK)
//	    ...
type file struct {
	Flights []FlightRecord `yaml:"flights"`
}

// Load reads a YAML catalog from r.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("catalog file is empty")
		}
		return nil, errors.Wrap(err, "decode catalog")
	}
	return New(f.Flights...)
}

// LoadFile reads a YAML catalog from path.
func LoadFile(path string) (*Catalog, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open catalog")
	}
	defer fh.Close()

	c, err := Load(fh)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return c, nil
}

// Write encodes c in the format accepted by Load.
func Write(w io.Writer, c *Catalog) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(file{Flights: c.All()}); err != nil {
		return errors.Wrap(err, "encode catalog")
	}
	return enc.Close()
}
