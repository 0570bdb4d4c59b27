// Package sample defines the two scalar types that flow through the DSP
// chain and the capability set every stage is written against.
package sample

// Sample is the numeric-polymorphic stage contract: addition, subtraction,
// and multiplication by a real scalar. Go has no operator overloading, so
// the Rust original's `Add<Num> + Sub<Num> + Mul<f32> + Zero + Copy` trait
// bound becomes a self-referential generic constraint — T must implement
// Sample[T], i.e. its arithmetic methods take and return its own type.
// Additive identity is the Go zero value and bitwise copy is ordinary
// value-assignment; neither needs a method.
type Sample[T any] interface {
	Add(T) T
	Sub(T) T
	MulReal(float32) T
}

// RS is a real 32-bit float sample.
type RS float32

// Add implements Sample[RS].
func (r RS) Add(o RS) RS { return r + o }

// Sub implements Sample[RS].
func (r RS) Sub(o RS) RS { return r - o }

// MulReal implements Sample[RS].
func (r RS) MulReal(s float32) RS { return r * RS(s) }

// CS is a complex floating-point sample (32-bit real, 32-bit imaginary).
type CS complex64

// Add implements Sample[CS].
func (c CS) Add(o CS) CS { return c + o }

// Sub implements Sample[CS].
func (c CS) Sub(o CS) CS { return c - o }

// MulReal implements Sample[CS].
func (c CS) MulReal(s float32) CS { return c * CS(complex(s, 0)) }
