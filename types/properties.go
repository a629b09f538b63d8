package types

// PropertyValue is a single value in an agent's property bag. It is a closed
// union of StringProperty, BoolProperty and OtherProperty; callers switch on
// the concrete type and treat anything unexpected as absent.
type PropertyValue interface {
	isPropertyValue()
}

// StringProperty holds a string property value
type StringProperty string

// BoolProperty holds a boolean property value
type BoolProperty bool

// OtherProperty holds any value that is neither a string nor a boolean
// (numbers, lists, maps, null). The catalog never reads it.
type OtherProperty struct {
	Value any
}

func (StringProperty) isPropertyValue() {}
func (BoolProperty) isPropertyValue()   {}
func (OtherProperty) isPropertyValue()  {}

// NewPropertyValue wraps an untyped value in its tagged variant
func NewPropertyValue(v any) PropertyValue {
	switch val := v.(type) {
	case PropertyValue:
		return val
	case string:
		return StringProperty(val)
	case bool:
		return BoolProperty(val)
	default:
		return OtherProperty{Value: val}
	}
}

// Properties is the open-ended metadata attached to an agent at registration time.
type Properties map[string]PropertyValue

// NewProperties converts a decoded map (JSON, YAML, SQL column) into Properties.
// A nil map yields nil Properties.
func NewProperties(raw map[string]any) Properties {
	if raw == nil {
		return nil
	}

	props := make(Properties, len(raw))
	for key, value := range raw {
		props[key] = NewPropertyValue(value)
	}
	return props
}

// String returns the value stored under key if it is a StringProperty
func (p Properties) String(key string) (string, bool) {
	switch v := p[key].(type) {
	case StringProperty:
		return string(v), true
	case BoolProperty, OtherProperty, nil:
		return "", false
	default:
		return "", false
	}
}

// Bool returns the value stored under key if it is a BoolProperty
func (p Properties) Bool(key string) (bool, bool) {
	switch v := p[key].(type) {
	case BoolProperty:
		return bool(v), true
	case StringProperty, OtherProperty, nil:
		return false, false
	default:
		return false, false
	}
}

// Raw unwraps every value back to its untyped form
func (p Properties) Raw() map[string]any {
	if p == nil {
		return nil
	}

	raw := make(map[string]any, len(p))
	for key, value := range p {
		switch v := value.(type) {
		case StringProperty:
			raw[key] = string(v)
		case BoolProperty:
			raw[key] = bool(v)
		case OtherProperty:
			raw[key] = v.Value
		}
	}
	return raw
}

// Clone returns a shallow copy so registered agents never share a map with the caller
func (p Properties) Clone() Properties {
	if p == nil {
		return nil
	}

	clone := make(Properties, len(p))
	for key, value := range p {
		clone[key] = value
	}
	return clone
}
