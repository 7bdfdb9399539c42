package lineitem

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
)

// Identifier is a line item id: either an integer or a string.
// The zero value is the empty string identifier.
type Identifier struct {
	str   string
	num   int64
	isInt bool
}

func IntID(v int64) Identifier {
	return Identifier{num: v, isInt: true}
}

func StringID(v string) Identifier {
	return Identifier{str: v}
}

// UUIDID maps uuid.Nil to the empty identifier.
func UUIDID(v uuid.UUID) Identifier {
	if v == uuid.Nil {
		return Identifier{}
	}
	return StringID(v.String())
}

// IsZero reports whether the identifier is 0 or "".
func (i Identifier) IsZero() bool {
	if i.isInt {
		return i.num == 0
	}
	return i.str == ""
}

func (i Identifier) IsInt() bool {
	return i.isInt
}

func (i Identifier) Int() (int64, bool) {
	return i.num, i.isInt
}

func (i Identifier) String() string {
	if i.isInt {
		return strconv.FormatInt(i.num, 10)
	}
	return i.str
}

// Raw returns the identifier as int64 or string.
func (i Identifier) Raw() any {
	if i.isInt {
		return i.num
	}
	return i.str
}

func (i Identifier) MarshalJSON() ([]byte, error) {
	if i.isInt {
		return strconv.AppendInt(nil, i.num, 10), nil
	}
	return json.Marshal(i.str)
}

func (i *Identifier) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseIdentifier(raw)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// ParseIdentifier converts integers, integral floats, json.Number, strings,
// uuid.UUID and fmt.Stringer values into an Identifier. nil yields the empty
// identifier.
func ParseIdentifier(v any) (Identifier, error) {
	switch id := v.(type) {
	case nil:
		return Identifier{}, nil
	case Identifier:
		return id, nil
	case *Identifier:
		if id == nil {
			return Identifier{}, nil
		}
		return *id, nil
	case int:
		return IntID(int64(id)), nil
	case int8:
		return IntID(int64(id)), nil
	case int16:
		return IntID(int64(id)), nil
	case int32:
		return IntID(int64(id)), nil
	case int64:
		return IntID(id), nil
	case uint:
		return fromUint(uint64(id))
	case uint8:
		return IntID(int64(id)), nil
	case uint16:
		return IntID(int64(id)), nil
	case uint32:
		return IntID(int64(id)), nil
	case uint64:
		return fromUint(id)
	case float32:
		return fromFloat(float64(id))
	case float64:
		return fromFloat(id)
	case json.Number:
		if n, err := id.Int64(); err == nil {
			return IntID(n), nil
		}
		if f, err := id.Float64(); err == nil {
			return fromFloat(f)
		}
		return StringID(id.String()), nil
	case string:
		return StringID(id), nil
	case uuid.UUID:
		return UUIDID(id), nil
	case fmt.Stringer:
		return StringID(id.String()), nil
	default:
		return Identifier{}, invalidField(fieldID, fmt.Sprintf("unsupported type %T", v))
	}
}

// parseStoredIdentifier restores an identifier read back from a text column.
// Only canonical integers become integer identifiers.
func parseStoredIdentifier(raw string) Identifier {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil && strconv.FormatInt(n, 10) == raw {
		return IntID(n)
	}
	return StringID(raw)
}

func fromUint(v uint64) (Identifier, error) {
	if v > math.MaxInt64 {
		return StringID(strconv.FormatUint(v, 10)), nil
	}
	return IntID(int64(v)), nil
}

func fromFloat(v float64) (Identifier, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Identifier{}, invalidField(fieldID, "must be finite")
	}
	if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
		return IntID(int64(v)), nil
	}
	return StringID(hashFloat(v)), nil
}
