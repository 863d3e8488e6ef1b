package resolve

import "fmt"

// Diagnostic is a compilation-time user error attributable to one offending
// declaration. It is reported once, with enough context to locate the fix.
type Diagnostic struct {
	Type     string // declared type name
	Field    string // field or variant name, when applicable
	Category string // missing annotation category: "copy strategy", "prism hint", "traversal hint", ...
	Message  string
}

func (d *Diagnostic) Error() string {
	where := d.Type
	if d.Field != "" {
		where += "." + d.Field
	}
	if d.Category != "" {
		return fmt.Sprintf("%s: %s: %s", where, d.Category, d.Message)
	}
	return fmt.Sprintf("%s: %s", where, d.Message)
}

func userError(typ, field, category, format string, args ...any) error {
	return &Diagnostic{
		Type:     typ,
		Field:    field,
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}
