package template

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// tplRegexp is compiled regexp for variable expressions in config structures
	tplRegexp = regexp.MustCompile(`(\$\{[^}]+\})`)
)

// Template is a representation of the template.
type Template struct {
	input interface{}
}

// New returns a new Template from the given structure
func New(in interface{}) *Template {
	return &Template{
		input: in,
	}
}

// Expression is a template element to be resolved, e.g. "env:STAGE" in "${env:STAGE}".
type Expression struct {
	Text string
}

func (expr Expression) String() string {
	return fmt.Sprintf("${%s}", expr.Text)
}

// Source returns the part before the first colon, or an empty string when there is none.
func (expr Expression) Source() string {
	if i := strings.Index(expr.Text, ":"); i >= 0 {
		return expr.Text[:i]
	}
	return ""
}

// Path returns the part after the first colon, or the whole text when there is none.
func (expr Expression) Path() string {
	if i := strings.Index(expr.Text, ":"); i >= 0 {
		return expr.Text[i+1:]
	}
	return expr.Text
}

// FindAll finds all expressions within the given template
func (tpl *Template) FindAll() []Expression {
	var exprs []Expression
	find(&exprs, tpl.input)
	return exprs
}

func find(expressions *[]Expression, in interface{}) {
	switch v := in.(type) {
	case map[string]interface{}:
		for _, e := range v {
			find(expressions, e)
		}
	case []interface{}:
		for _, e := range v {
			find(expressions, e)
		}
	case string:
		*expressions = append(*expressions, findExpressions(v)...)
	}
}

// findExpressions finds the template expressions from the string
func findExpressions(in string) []Expression {
	var exprs []Expression
	for _, str := range tplRegexp.FindAllString(in, -1) {
		exprs = append(exprs, asExpression(str))
	}
	return exprs
}

// asExpression converts a matched "${...}" string into an Expression
func asExpression(in string) Expression {
	return Expression{
		Text: strings.TrimSuffix(strings.TrimPrefix(in, "${"), "}"),
	}
}
