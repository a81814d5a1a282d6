package enums

import "fmt"

// AttributeType describes how an attribute's values are interpreted.
type AttributeType string

const (
	AttributeTypeText    AttributeType = "text"
	AttributeTypeNumber  AttributeType = "number"
	AttributeTypeBoolean AttributeType = "boolean"
	AttributeTypeSelect  AttributeType = "select"
)

var validAttributeTypes = []AttributeType{
	AttributeTypeText,
	AttributeTypeNumber,
	AttributeTypeBoolean,
	AttributeTypeSelect,
}

// String implements fmt.Stringer.
func (a AttributeType) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AttributeType.
func (a AttributeType) IsValid() bool {
	for _, candidate := range validAttributeTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAttributeType converts raw input into an AttributeType.
func ParseAttributeType(value string) (AttributeType, error) {
	for _, candidate := range validAttributeTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid attribute type %q", value)
}
