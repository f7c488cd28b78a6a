package secp

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// XOnlySize is the size of an x-only point encoding.
const XOnlySize = 32

var (
	// ErrNotOnCurve is returned when an encoding does not describe a curve point.
	ErrNotOnCurve = errors.New("x coordinate is not on the curve")

	// ErrIdentity is returned when a non-identity point was required.
	ErrIdentity = errors.New("point is the identity")
)

// YChoice selects which of P and -P is the canonical representative of an
// x-only encoding.
type YChoice uint8

const (
	// EvenY picks the point whose y coordinate is even (BIP-340).
	EvenY YChoice = iota
	// SquareY picks the point whose y coordinate is a quadratic residue.
	SquareY
)

// String returns the configuration name of the choice.
func (c YChoice) String() string {
	switch c {
	case EvenY:
		return "even"
	case SquareY:
		return "square"
	default:
		return fmt.Sprintf("YChoice(%d)", uint8(c))
	}
}

// ParseYChoice parses "even" or "square".
func ParseYChoice(s string) (YChoice, error) {
	switch strings.ToLower(s) {
	case "even", "even-y", "eveny":
		return EvenY, nil
	case "square", "square-y", "squarey":
		return SquareY, nil
	default:
		return 0, fmt.Errorf("unknown y choice %q (want even or square)", s)
	}
}

// XOnly is the big-endian x coordinate of a point.
type XOnly [XOnlySize]byte

// Hex returns the hex encoding of x.
func (x XOnly) Hex() string {
	return hex.EncodeToString(x[:])
}

// Point is an element of the secp256k1 group. The zero value is the identity.
type Point struct {
	// p is kept in affine coordinates (Z = 1) unless the point is the identity.
	p secp256k1.JacobianPoint
}

func fromJacobian(j *secp256k1.JacobianPoint) Point {
	if isInfinity(j) {
		return Point{}
	}
	var p Point
	p.p.Set(j)
	p.p.ToAffine()
	return p
}

func isInfinity(j *secp256k1.JacobianPoint) bool {
	return (j.X.IsZero() && j.Y.IsZero()) || j.Z.IsZero()
}

// Generator returns the group generator G.
func Generator() Point {
	return BaseMul(ScalarFromUint32(1))
}

// BaseMul returns k*G.
func BaseMul(k Scalar) Point {
	var j secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&k.n, &j)
	return fromJacobian(&j)
}

// Mul returns k*p.
func (p Point) Mul(k Scalar) Point {
	if p.IsIdentity() {
		return Point{}
	}
	var j secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&k.n, &p.p, &j)
	return fromJacobian(&j)
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	var j secp256k1.JacobianPoint
	secp256k1.AddNonConst(&p.p, &q.p, &j)
	return fromJacobian(&j)
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return p.Add(q.Negate())
}

// Negate returns -p.
func (p Point) Negate() Point {
	if p.IsIdentity() {
		return Point{}
	}
	r := p
	r.p.Y.Negate(1).Normalize()
	return r
}

// ConditionalNegate returns -p when negate is set and p otherwise.
func (p Point) ConditionalNegate(negate bool) Point {
	if negate {
		return p.Negate()
	}
	return p
}

// IsIdentity reports whether p is the point at infinity.
func (p Point) IsIdentity() bool {
	return isInfinity(&p.p)
}

// Equal reports whether p and q are the same point.
func (p Point) Equal(q Point) bool {
	pInf, qInf := p.IsIdentity(), q.IsIdentity()
	if pInf || qInf {
		return pInf == qInf
	}
	return p.p.X.Equals(&q.p.X) && p.p.Y.Equals(&q.p.Y)
}

// HasEvenY reports whether p has an even y coordinate.
func (p Point) HasEvenY() bool {
	return !p.IsIdentity() && !p.p.Y.IsOdd()
}

// HasSquareY reports whether the y coordinate of p is a quadratic residue.
func (p Point) HasSquareY() bool {
	if p.IsIdentity() {
		return false
	}
	var root secp256k1.FieldVal
	return root.SquareRootVal(&p.p.Y)
}

// HasY reports whether p is the canonical representative under c.
func (p Point) HasY(c YChoice) bool {
	if c == SquareY {
		return p.HasSquareY()
	}
	return p.HasEvenY()
}

// Normalize returns the representative of {p, -p} selected by c and whether
// it is -p. The field prime is 3 mod 4, so exactly one of y and -y is a
// square, and exactly one of them is even.
//
// Normalize panics if p is the identity.
func (p Point) Normalize(c YChoice) (Point, bool) {
	if p.IsIdentity() {
		panic("secp: cannot normalize the identity")
	}
	if p.HasY(c) {
		return p, false
	}
	return p.Negate(), true
}

// IntoEvenY normalizes p to an even y coordinate, returning whether p was negated.
//
// IntoEvenY panics if p is the identity.
func (p Point) IntoEvenY() (EvenYPoint, bool) {
	q, negated := p.Normalize(EvenY)
	return EvenYPoint{point: q}, negated
}

// XOnly returns the x coordinate of p. The identity encodes as all zeros.
func (p Point) XOnly() XOnly {
	var x XOnly
	if p.IsIdentity() {
		return x
	}
	p.p.X.PutBytesUnchecked(x[:])
	return x
}

// SerializeCompressed returns the 33-byte SEC1 compressed encoding of p.
//
// SerializeCompressed panics if p is the identity.
func (p Point) SerializeCompressed() []byte {
	if p.IsIdentity() {
		panic("secp: cannot serialize the identity")
	}
	return p.PublicKey().SerializeCompressed()
}

// Hex returns the hex of the compressed encoding of p, or "" for the identity.
func (p Point) Hex() string {
	if p.IsIdentity() {
		return ""
	}
	return hex.EncodeToString(p.SerializeCompressed())
}

// PublicKey returns p as a decred public key. p must not be the identity.
func (p Point) PublicKey() *secp256k1.PublicKey {
	return secp256k1.NewPublicKey(&p.p.X, &p.p.Y)
}

// PointFromPublicKey converts a decred public key.
func PointFromPublicKey(pk *secp256k1.PublicKey) Point {
	var j secp256k1.JacobianPoint
	pk.AsJacobian(&j)
	return fromJacobian(&j)
}

// ParsePoint decodes a compressed (33 byte) or uncompressed (65 byte) SEC1 point.
func ParsePoint(b []byte) (Point, error) {
	pk, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return Point{}, fmt.Errorf("failed to parse point: %w", err)
	}
	return PointFromPublicKey(pk), nil
}

// ParsePointHex decodes a hex encoded SEC1 point, with or without a 0x prefix.
func ParsePointHex(s string) (Point, error) {
	b, err := decodeHex(s)
	if err != nil {
		return Point{}, fmt.Errorf("failed to decode point: %w", err)
	}
	return ParsePoint(b)
}

// LiftX returns the point with x coordinate x that is canonical under c.
func LiftX(x XOnly, c YChoice) (Point, error) {
	var fx, fy secp256k1.FieldVal
	if overflow := fx.SetBytes((*[XOnlySize]byte)(&x)); overflow != 0 {
		return Point{}, errors.New("x coordinate is not less than the field prime")
	}
	if !secp256k1.DecompressY(&fx, false, &fy) {
		return Point{}, ErrNotOnCurve
	}
	fy.Normalize()

	var p Point
	p.p.X.Set(&fx)
	p.p.Y.Set(&fy)
	p.p.Z.SetInt(1)

	if !p.HasY(c) {
		p = p.Negate()
	}
	return p, nil
}

// EvenYPoint is a non-identity point with an even y coordinate, the form
// x-only verification keys take.
type EvenYPoint struct {
	point Point
}

// ParseEvenYPoint lifts an x-only key.
func ParseEvenYPoint(x XOnly) (EvenYPoint, error) {
	p, err := LiftX(x, EvenY)
	if err != nil {
		return EvenYPoint{}, err
	}
	return EvenYPoint{point: p}, nil
}

// ParseEvenYPointHex lifts a hex encoded x-only key.
func ParseEvenYPointHex(s string) (EvenYPoint, error) {
	b, err := decodeHex(s)
	if err != nil {
		return EvenYPoint{}, fmt.Errorf("failed to decode x-only key: %w", err)
	}
	if len(b) != XOnlySize {
		return EvenYPoint{}, fmt.Errorf("x-only key must be %d bytes, got %d", XOnlySize, len(b))
	}
	return ParseEvenYPoint(XOnly(b))
}

// Point returns the underlying point.
func (p EvenYPoint) Point() Point {
	return p.point
}

// XOnly returns the x coordinate of p.
func (p EvenYPoint) XOnly() XOnly {
	return p.point.XOnly()
}

// IsIdentity reports whether p is the zero value, which is not a valid key.
func (p EvenYPoint) IsIdentity() bool {
	return p.point.IsIdentity()
}

// Equal reports whether p and q are the same point.
func (p EvenYPoint) Equal(q EvenYPoint) bool {
	return p.point.Equal(q.point)
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	return hex.DecodeString(s)
}
