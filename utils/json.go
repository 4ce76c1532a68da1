package utils

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// JSONList stores a string slice as a JSON column value. A nil or empty
// slice becomes an empty JSON array rather than NULL.
func JSONList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(raw)
}
