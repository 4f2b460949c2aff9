package shared

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ReferenceKind discriminates the two reference variants
type ReferenceKind int

const (
	// ReferenceByID points at an existing entity by numeric id
	ReferenceByID ReferenceKind = iota + 1
	// ReferenceByName points at an entity by exact name
	ReferenceByName
)

// PartyDetails are the optional fields used when a reference by name creates a party
type PartyDetails struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
}

// Reference is a client-supplied pointer to an entity: either ById(id) or ByName(name, details).
// The zero value is invalid.
type Reference struct {
	kind    ReferenceKind
	id      uint64
	name    string
	details PartyDetails
}

// ByID creates a reference by numeric id
func ByID(id uint64) Reference {
	return Reference{kind: ReferenceByID, id: id}
}

// ByName creates a reference by name with optional details for implicit creation
func ByName(name string, details PartyDetails) Reference {
	return Reference{kind: ReferenceByName, name: strings.TrimSpace(name), details: details}
}

// Kind returns the variant of the reference
func (r Reference) Kind() ReferenceKind {
	return r.kind
}

// ID returns the referenced id; only meaningful for ReferenceByID
func (r Reference) ID() uint64 {
	return r.id
}

// Name returns the referenced name; only meaningful for ReferenceByName
func (r Reference) Name() string {
	return r.name
}

// Details returns the creation details carried by a name reference
func (r Reference) Details() PartyDetails {
	return r.details
}

// WithDetails returns a copy of a name reference carrying details
func (r Reference) WithDetails(details PartyDetails) Reference {
	if r.kind == ReferenceByName {
		r.details = details
	}
	return r
}

// IsZero reports whether the reference was never set
func (r Reference) IsZero() bool {
	return r.kind == 0
}

// Validate checks that the reference is well-formed
func (r Reference) Validate() error {
	switch r.kind {
	case ReferenceByID:
		if r.id == 0 {
			return NewValidationError("reference id must be a positive integer")
		}
	case ReferenceByName:
		if r.name == "" {
			return NewValidationError("reference name must not be empty")
		}
	default:
		return NewValidationError("reference must be an id or a name")
	}
	return nil
}

// String renders the reference for messages and logs
func (r Reference) String() string {
	switch r.kind {
	case ReferenceByID:
		return "#" + strconv.FormatUint(r.id, 10)
	case ReferenceByName:
		return strconv.Quote(r.name)
	default:
		return "<empty>"
	}
}

// UnmarshalJSON accepts a JSON number or string. Strings holding an integer are ids.
func (r *Reference) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Reference{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if id, err := strconv.ParseUint(s, 10, 64); err == nil {
			*r = ByID(id)
			return nil
		}
		*r = ByName(s, PartyDetails{})
		return nil
	}

	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return fmt.Errorf("reference must be a number or a string: %w", err)
	}
	id, err := strconv.ParseUint(n.String(), 10, 64)
	if err != nil {
		return fmt.Errorf("reference id must be a positive integer, got %s", n.String())
	}
	*r = ByID(id)
	return nil
}

// MarshalJSON renders ids as numbers and names as strings
func (r Reference) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case ReferenceByID:
		return []byte(strconv.FormatUint(r.id, 10)), nil
	case ReferenceByName:
		return json.Marshal(r.name)
	default:
		return []byte("null"), nil
	}
}
