// Package fixedpoint implements signed 17.14 fixed-point arithmetic.
//
// The scheduler's load-average and recent-CPU accounting needs fractional
// math without floating point. Values are stored as a scaled int32 with 14
// fractional bits; products and quotients widen to int64 before rescaling so
// the scale multiplication cannot overflow the 32-bit representation.
package fixedpoint

// Fixed is a fractional value scaled by 1<<14.
type Fixed int32

const fracBits = 14

// scale is the value of 1.0 in the scaled representation.
const scale = 1 << fracBits

// FromInt converts an integer to fixed point.
func FromInt(n int32) Fixed {
	return Fixed(n * scale)
}

// Trunc converts to integer, rounding toward zero.
func (x Fixed) Trunc() int32 {
	return int32(x) / scale
}

// Round converts to integer, rounding to nearest with halves away from zero.
func (x Fixed) Round() int32 {
	if x >= 0 {
		return (int32(x) + scale/2) / scale
	}
	return (int32(x) - scale/2) / scale
}

// Add returns x + y.
func (x Fixed) Add(y Fixed) Fixed { return x + y }

// Sub returns x - y.
func (x Fixed) Sub(y Fixed) Fixed { return x - y }

// AddInt returns x + n.
func (x Fixed) AddInt(n int32) Fixed { return x + FromInt(n) }

// SubInt returns x - n.
func (x Fixed) SubInt(n int32) Fixed { return x - FromInt(n) }

// Mul returns x * y, computed through a 64-bit intermediate.
func (x Fixed) Mul(y Fixed) Fixed {
	return Fixed(int64(x) * int64(y) / scale)
}

// Div returns x / y, computed through a 64-bit intermediate.
// Division by zero is a caller bug, same as integer division.
func (x Fixed) Div(y Fixed) Fixed {
	return Fixed(int64(x) * scale / int64(y))
}

// MulInt returns x * n.
func (x Fixed) MulInt(n int32) Fixed { return x * Fixed(n) }

// DivInt returns x / n.
func (x Fixed) DivInt(n int32) Fixed { return x / Fixed(n) }
