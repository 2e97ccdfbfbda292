package catalog

import (
	"bytes"
	"encoding/json"
	"time"
)

// Family is one release series, such as "2.0", with its versions newest first.
type Family struct {
	Name     string   `json:"name"`
	Versions []string `json:"versions"`
}

// Catalog is the ordered list of release families shown to users.
//
// A Catalog returned by [Builder.Build] is shared by every caller until the
// cache expires and must not be modified.
type Catalog struct {
	Families []Family
	BuiltAt  time.Time
}

// Len returns the number of families.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Families)
}

// Lookup returns the family with the given name.
func (c *Catalog) Lookup(name string) (Family, bool) {
	if c == nil {
		return Family{}, false
	}
	for _, f := range c.Families {
		if f.Name == name {
			return f, true
		}
	}
	return Family{}, false
}

// MarshalJSON encodes the catalog as an object keyed by family name.
// Keys keep catalog order: {"2.0": ["2.0.0-p648"], "1.8": ["1.8.7-p375"]}.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if c != nil {
		for i, f := range c.Families {
			if i > 0 {
				buf.WriteByte(',')
			}
			name, err := json.Marshal(f.Name)
			if err != nil {
				return nil, err
			}
			buf.Write(name)
			buf.WriteByte(':')

			versions := f.Versions
			if versions == nil {
				versions = []string{}
			}
			list, err := json.Marshal(versions)
			if err != nil {
				return nil, err
			}
			buf.Write(list)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
