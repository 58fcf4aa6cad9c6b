package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Opaque holds a JSON value this system never interprets, such as
// identifiers and quantities owned by the job store. It is echoed back
// exactly as received.
type Opaque json.RawMessage

// OpaqueString wraps s as a JSON string value.
func OpaqueString(s string) Opaque {
	b, _ := json.Marshal(s)
	return Opaque(b)
}

// OpaqueInt wraps n as a JSON number value.
func OpaqueInt(n int64) Opaque {
	return Opaque(strconv.AppendInt(nil, n, 10))
}

func (o Opaque) MarshalJSON() ([]byte, error) {
	if len(o) == 0 {
		return []byte("null"), nil
	}
	return []byte(o), nil
}

func (o *Opaque) UnmarshalJSON(data []byte) error {
	if o == nil {
		return nil
	}
	*o = append((*o)[:0], data...)
	return nil
}

// IsNull reports whether the value is absent or JSON null.
func (o Opaque) IsNull() bool {
	t := bytes.TrimSpace(o)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

// Falsy reports whether the value is null, false, zero or an empty string.
func (o Opaque) Falsy() bool {
	if o.IsNull() {
		return true
	}
	switch string(bytes.TrimSpace(o)) {
	case "false", `""`, "0", "0.0", "-0":
		return true
	}
	return false
}

// OrNull returns o, or an absent value when o is falsy.
func (o Opaque) OrNull() Opaque {
	if o.Falsy() {
		return nil
	}
	return o
}

// Text renders the value for display: strings unquoted, null as "".
func (o Opaque) Text() string {
	if o.IsNull() {
		return ""
	}
	var s string
	if err := json.Unmarshal(o, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(o))
}
