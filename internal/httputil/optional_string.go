package httputil

import (
	"bytes"
	"encoding/json"
)

// OptionalString distinguishes an absent JSON member from an explicit null,
// which *string cannot:
//   - Present=false: member absent (leave unchanged)
//   - Present=true, Value=nil: member is null
//   - Present=true, Value!=nil: member has a string value
type OptionalString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON is only invoked for members present in the document
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// IsNull reports an explicit JSON null
func (o OptionalString) IsNull() bool {
	return o.Present && o.Value == nil
}
