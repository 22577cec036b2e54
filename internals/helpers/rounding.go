package helper

import "math"

// Round aplica la regla de redondeo institucional, que NO es el
// redondeo estándar: la fracción restante después de los decimales
// conservados sólo sube cuando excede estrictamente 0.5.
//
//	Round(7.50, 0) = 7   Round(7.51, 0) = 8
//	Round(7.60, 0) = 8   Round(7.49, 0) = 7
//	Round(9.96, 0) = 10  (acarreo)
//
// Sin condiciones de error; función pura.
func Round(value float64, decimals int) float64 {
	if decimals < 0 {
		decimals = 0
	}
	shift := math.Pow(10, float64(decimals))
	scaled := value * shift

	kept := math.Floor(scaled)
	// eps absorbe el ruido binario de valores como 8.70*100 = 869.9999...
	const eps = 1e-9
	if scaled-kept > 0.5+eps {
		kept++
	}
	return kept / shift
}

// Clamp acota v al rango [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
