package maps

import (
	"strings"

	"github.com/imdario/mergo"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// Get returns the value for the given dot-separated key path
func Get(m interface{}, key string) interface{} {
	var obj interface{} = m
	var val interface{} = nil

	parts := strings.Split(key, ".")
	for _, p := range parts {
		if v, ok := obj.(map[string]interface{}); ok {
			obj = v[p]
			val = obj
		} else {
			return nil
		}
	}
	return val
}

// Decode takes an input structure and uses reflection to translate it to the output structure. output must be a pointer to a map or struct.
func Decode(in, out interface{}) error {
	return mapstructure.Decode(in, out)
}

// DecodeWith decodes like Decode with the given decode hook applied.
func DecodeWith(in, out interface{}, hook mapstructure.DecodeHookFunc) error {
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: hook,
		Result:     out,
	})
	if err != nil {
		return errors.Wrap(err, "cannot create decoder")
	}
	return d.Decode(in)
}

// Merge merges override into base, the override value wins on key conflict.
// base is modified in place and returned for convenience.
func Merge(base, override map[string]interface{}) (map[string]interface{}, error) {
	if base == nil {
		base = make(map[string]interface{})
	}
	if len(override) == 0 {
		return base, nil
	}
	if err := mergo.Merge(&base, override, mergo.WithOverride); err != nil {
		return nil, errors.Wrap(err, "cannot merge override")
	}
	return base, nil
}

// Apply converts the given structure to its map form and merges override on top of it.
func Apply(v interface{}, override map[string]interface{}) (map[string]interface{}, error) {
	var m map[string]interface{}
	if err := Decode(v, &m); err != nil {
		return nil, errors.Wrap(err, "cannot convert definition to map")
	}
	return Merge(m, override)
}
