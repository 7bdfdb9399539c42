// Package numfmt renders amounts with a configurable number of decimals,
// decimal point and thousands separator.
package numfmt

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DefaultDecimals          = 2
	DefaultDecimalPoint      = "."
	DefaultThousandSeparator = ","
)

// Format holds the rendering settings for a number.
type Format struct {
	Decimals          int
	DecimalPoint      string
	ThousandSeparator string
}

// Default returns 2 decimals, "." and ",".
func Default() Format {
	return Format{
		Decimals:          DefaultDecimals,
		DecimalPoint:      DefaultDecimalPoint,
		ThousandSeparator: DefaultThousandSeparator,
	}
}

// Option overrides a single setting of a Format for one call.
type Option func(*Format)

func WithDecimals(decimals int) Option {
	return func(f *Format) { f.Decimals = decimals }
}

func WithDecimalPoint(point string) Option {
	return func(f *Format) { f.DecimalPoint = point }
}

func WithThousandSeparator(sep string) Option {
	return func(f *Format) { f.ThousandSeparator = sep }
}

// Apply returns a copy of f with the options applied.
func (f Format) Apply(opts ...Option) Format {
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	if f.Decimals < 0 {
		f.Decimals = 0
	}
	return f
}

// String formats value, rounding half away from zero.
func (f Format) String(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
	decimals := f.Decimals
	if decimals < 0 {
		decimals = 0
	}

	rounded := decimal.NewFromFloat(value).Round(int32(decimals))
	fixed := rounded.Abs().StringFixed(int32(decimals))
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(groupThousands(intPart, f.ThousandSeparator))
	if decimals > 0 {
		b.WriteString(f.DecimalPoint)
		b.WriteString(fracPart)
	}
	return b.String()
}

// Number formats value with Default() adjusted by opts.
func Number(value float64, opts ...Option) string {
	return Default().Apply(opts...).String(value)
}

func groupThousands(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
