package utils

import "github.com/google/uuid"

// ParseOptionalUUID turns an optional query value into an id. An empty value
// means the filter is not set.
func ParseOptionalUUID(value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
