package command

// Type represents JSON Schema types.
type Type string

const (
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
	TypeObject  Type = "object"
)

// Schema represents a JSON Schema for command arguments.
type Schema struct {
	Type        Type               `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// Declaration describes a command for help output and key bindings.
type Declaration struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Parameters  *Schema `json:"parameters,omitempty"`
}

// Usage renders the declaration as a one-line usage string.
func (d Declaration) Usage() string {
	usage := d.Name
	if d.Parameters == nil {
		return usage
	}
	required := make(map[string]bool, len(d.Parameters.Required))
	for _, name := range d.Parameters.Required {
		required[name] = true
	}
	for _, name := range sortedKeys(d.Parameters.Properties) {
		arg := name + "=<" + string(d.Parameters.Properties[name].Type) + ">"
		if !required[name] {
			arg = "[" + arg + "]"
		}
		usage += " " + arg
	}
	return usage
}
