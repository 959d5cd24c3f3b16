package schema

import "github.com/pkg/errors"

type ScalarType struct {
	Name        string
	Description string

	// If given, leaf values of this type are passed through Serialize before being written to the
	// response. Otherwise they're written as-is.
	Serialize func(interface{}) (interface{}, error)
}

func (t *ScalarType) String() string {
	return t.Name
}

// SerializeValue serializes a resolved leaf value.
func (t *ScalarType) SerializeValue(v interface{}) (interface{}, error) {
	if t.Serialize == nil {
		return v, nil
	}
	ret, err := t.Serialize(v)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot serialize %T as %v", v, t.Name)
	}
	return ret, nil
}
