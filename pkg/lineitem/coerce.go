package lineitem

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// toFloat accepts Go numbers, json.Number, decimal.Decimal and numeric
// strings. NaN and infinities are rejected.
func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case decimal.Decimal:
		f = n.InexactFloat64()
	case string:
		s := strings.TrimSpace(n)
		if s == "" || strings.HasPrefix(strings.ToLower(strings.TrimLeft(s, "+-")), "0x") {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false, false
		}
		return parsed, true
	}
	return false, false
}

func toName(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case fmt.Stringer:
		return s.String(), true
	}
	return "", false
}

func attrIdentifier(attrs map[string]any, key string) (*Identifier, error) {
	raw, ok := attrs[key]
	if !ok {
		return nil, nil
	}
	id, err := ParseIdentifier(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func attrName(attrs map[string]any, key string) (*string, error) {
	raw, ok := attrs[key]
	if !ok {
		return nil, nil
	}
	name, ok := toName(raw)
	if !ok {
		return nil, invalidField(key, fmt.Sprintf("unsupported type %T", raw))
	}
	return &name, nil
}

func attrFloat(attrs map[string]any, key string) (*float64, error) {
	raw, ok := attrs[key]
	if !ok {
		return nil, nil
	}
	f, ok := toFloat(raw)
	if !ok {
		return nil, invalidField(key, "must be numeric")
	}
	return &f, nil
}

func attrBool(attrs map[string]any, key string) (*bool, error) {
	raw, ok := attrs[key]
	if !ok {
		return nil, nil
	}
	b, ok := toBool(raw)
	if !ok {
		return nil, invalidField(key, "must be a boolean")
	}
	return &b, nil
}

func requireKeys(attrs map[string]any, keys ...string) error {
	for _, key := range keys {
		if _, ok := attrs[key]; !ok {
			return invalidField(key, "is required")
		}
	}
	return nil
}
