package lineitem

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"
)

// RowID returns the lowercase hex MD5 digest of the concatenated parts.
// Identical parts always produce the same row id, so a cart can merge on it.
func RowID(parts ...string) string {
	sum := md5.Sum([]byte(strings.Join(parts, "")))
	return hex.EncodeToString(sum[:])
}

// hashFloat renders a float with 14 significant digits and no trailing
// zeros: 10.00 -> "10", 0.1+0.2 -> "0.3".
func hashFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 14, 64)
}

func discountRowID(id Identifier, name string, value float64) string {
	return RowID(id.String(), name, hashFloat(value))
}

func shippingRowID(id Identifier, name string, price float64) string {
	return RowID(id.String(), name, hashFloat(price))
}
