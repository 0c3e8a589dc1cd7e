package template

import (
	"fmt"

	"flotilla/pkg/util/maps"

	"github.com/pkg/errors"
)

// ResolveFunc specifies how a template expression should be resolved
type ResolveFunc func(expr Expression) (interface{}, error)

// ResolveWithMap returns a ResolveFunc that performs resolution from a map using the expression path
func ResolveWithMap(m map[string]interface{}) ResolveFunc {
	return func(expr Expression) (interface{}, error) {
		res := maps.Get(m, expr.Path())
		if res == nil {
			return nil, errors.Errorf("expression %s resolved to nil interface", expr)
		}
		return res, nil
	}
}

// Resolve resolves the template using the given resolver
func (tpl *Template) Resolve(resolver ResolveFunc) (interface{}, error) {
	if len(tpl.FindAll()) == 0 {
		// Nothing to resolve
		return tpl.input, nil
	}
	return resolve(tpl.input, resolver)
}

func resolve(input interface{}, resolver ResolveFunc) (interface{}, error) {
	switch v := input.(type) {
	case string:
		return resolveFromString(v, resolver)
	case map[string]interface{}:
		m := make(map[string]interface{}, len(v))
		for k, e := range v {
			newVal, err := resolve(e, resolver)
			if err != nil {
				return nil, err
			}
			m[k] = newVal
		}
		return m, nil
	case []interface{}:
		a := make([]interface{}, len(v))
		for i, e := range v {
			newVal, err := resolve(e, resolver)
			if err != nil {
				return nil, err
			}
			a[i] = newVal
		}
		return a, nil
	}
	return input, nil
}

func resolveFromString(input string, resolver ResolveFunc) (interface{}, error) {
	expressions := findExpressions(input)
	if len(expressions) == 0 {
		return input, nil
	}
	if len(expressions) == 1 && len(input) == len(expressions[0].String()) {
		// The input string is only a template expression, it can be resolved as any type
		e := expressions[0]
		val, err := resolver(e)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot resolve template expression %s", e)
		}
		return val, nil
	}
	// Input string requires in-place replacing, using regexp.ReplaceAllStringFunc
	var rerr error
	return tplRegexp.ReplaceAllStringFunc(input, func(matched string) string {
		e := asExpression(matched)
		val, err := resolver(e)
		if err != nil {
			rerr = errors.Wrapf(err, "cannot resolve template expression %s", e)
			return ""
		}
		return fmt.Sprintf("%v", val)
	}), rerr
}
