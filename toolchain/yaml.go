package toolchain

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// WriteYAML writes the advertised tool set as a YAML list, the way it is shown
// by the CLI's tools command:
//
//	- name: get_flight_info
//	  description: Get detailed information about a specific flight by flight number
//	  parameters:
//	    properties:
//	      flight_number:
//	        description: The flight number to look up (e.g., 'AA123', 'DL456')
//	        type: string
//	    required:
//	      - flight_number
//	    type: object
func (r *Registry) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r.Descriptors()); err != nil {
		return errors.Wrap(err, "encode tool descriptors")
	}
	return enc.Close()
}
