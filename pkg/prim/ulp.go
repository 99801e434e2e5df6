package prim

import "math"

// ulp returns the distance from |d| to the next larger float64.
func ulp(d float64) float64 {
	d = math.Abs(d)
	if math.IsInf(d, 0) {
		return math.Inf(1)
	}
	if d == math.MaxFloat64 {
		return d - math.Nextafter(d, 0)
	}
	return math.Nextafter(d, math.Inf(1)) - d
}

// equalsWithinOneSmallUlp reports whether a and b differ by at most the smaller of their ulps.
// NaN never equals anything and an infinity only equals itself.
func equalsWithinOneSmallUlp(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	return math.Abs(a-b) <= min(ulp(a), ulp(b))
}

// binarySearchUlp searches a sorted table for a value equal to key within one small ulp. Values
// that compare neither less nor greater are ordered by their bit patterns.
func binarySearchUlp(table []float64, key float64) (int, bool) {
	lo, hi := 0, len(table)-1
	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		midVal := table[mid]
		switch {
		case equalsWithinOneSmallUlp(midVal, key):
			return mid, true
		case midVal < key:
			lo = mid + 1
		case midVal > key:
			hi = mid - 1
		default:
			midBits, keyBits := int64(math.Float64bits(midVal)), int64(math.Float64bits(key))
			switch {
			case midBits == keyBits:
				return mid, true
			case midBits < keyBits:
				lo = mid + 1
			default:
				hi = mid - 1
			}
		}
	}
	return lo, false
}
