package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ItemRef is a catalog item identifier that arrives as either a JSON
// string or a JSON number. It always marshals as a string.
type ItemRef string

func (r *ItemRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = ItemRef(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("item id: %w", err)
	}
	*r = ItemRef(n.String())
	return nil
}

// Int parses the leading decimal integer of the reference. A reference
// without one yields nil.
func (r ItemRef) Int() *int {
	s := strings.TrimSpace(string(r))
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return nil
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return nil
	}
	return &n
}

// CatalogItem is an assignable item from the item master.
type CatalogItem struct {
	ID   ItemRef `json:"itemId"`
	Name string  `json:"itemName"`
}
