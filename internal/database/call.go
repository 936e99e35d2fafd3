package database

import "strings"

// Param is one named argument of a stored procedure call. Position in the
// Call is significant: dialects that bind positionally keep this order.
type Param struct {
	Name  string
	Value any
}

// Call is a single stored procedure invocation.
type Call struct {
	Procedure string
	Params    []Param
}

func NewCall(procedure string, params ...Param) Call {
	return Call{Procedure: procedure, Params: params}
}

func P(name string, value any) Param {
	return Param{Name: name, Value: value}
}

// Opt turns an optional value into a driver argument, nil meaning SQL NULL.
func Opt[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

// Args returns the gorm arguments for the statement rendered from c.
func (c Call) Args() []any {
	if len(c.Params) == 0 {
		return nil
	}
	named := make(map[string]any, len(c.Params))
	for _, p := range c.Params {
		named[p.Name] = p.Value
	}
	return []any{named}
}

// placeholders renders "@a, @b" in parameter order.
func (c Call) placeholders() string {
	names := make([]string, len(c.Params))
	for i, p := range c.Params {
		names[i] = "@" + p.Name
	}
	return strings.Join(names, ", ")
}

func (c Call) String() string {
	return c.Procedure + "(" + c.placeholders() + ")"
}
