package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FlexibleID accepts an identifier sent either as a JSON string or a JSON number
type FlexibleID string

func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*f = FlexibleID(strings.TrimSpace(str))
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*f = FlexibleID(num.String())
		return nil
	}

	return fmt.Errorf("invalid id format: %s", data)
}

func (f FlexibleID) String() string {
	return string(f)
}
