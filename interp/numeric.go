package interp

import (
	"strconv"

	"github.com/sayakbrahmachari/struix/value"
)

// compileNumber recognizes an integer or floating-point literal token.
// Integers are tried first so "3" stays an Int rather than becoming
// 3.0; anything with a decimal point, exponent, or that otherwise fails
// integer parsing falls through to float.
func compileNumber(token string) (v value.Value, ok bool) {
	if i, err := strconv.ParseInt(token, 10, 64); err == nil {
		return value.NewInt(i), true
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return value.NewFloat(f), true
	}
	return value.Value{}, false
}
