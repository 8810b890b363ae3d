package model

import (
	"fmt"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// Simple implementations of the value interfaces, for hosts that don't bring
// their own wrappers and for tests.

type SimpleNumber struct {
	dec *apd.Decimal
}

func NewNumber(dec *apd.Decimal) SimpleNumber {
	return SimpleNumber{dec: dec}
}

func NumberFromInt(v int64) SimpleNumber {
	return SimpleNumber{dec: apd.New(v, 0)}
}

func NumberFromFloat(v float64) (SimpleNumber, error) {
	dec, err := new(apd.Decimal).SetFloat64(v)
	if err != nil {
		return SimpleNumber{}, fmt.Errorf("cannot represent %v as a decimal: %w", v, err)
	}
	return SimpleNumber{dec: dec}, nil
}

func NumberFromString(s string) (SimpleNumber, error) {
	dec, _, err := new(apd.Decimal).SetString(s)
	if err != nil {
		return SimpleNumber{}, fmt.Errorf("cannot parse %q as a decimal: %w", s, err)
	}
	return SimpleNumber{dec: dec}, nil
}

func (v SimpleNumber) Kind() Kind { return KindNumber }
func (v SimpleNumber) AsDecimal() *apd.Decimal { return v.dec }

type SimpleString string

func (v SimpleString) Kind() Kind { return KindString }
func (v SimpleString) AsString() (string, bool) { return string(v), true }

type SimpleBool bool

func (v SimpleBool) Kind() Kind { return KindBool }
func (v SimpleBool) AsBool() bool { return bool(v) }

var (
	True  Bool = SimpleBool(true)
	False Bool = SimpleBool(false)
)

type SimpleDate struct {
	Time    time.Time
	subtype DateSubtype
}

func NewDate(t time.Time, subtype DateSubtype) SimpleDate {
	return SimpleDate{Time: t, subtype: subtype}
}

func (v SimpleDate) Kind() Kind { return KindDate }
func (v SimpleDate) Subtype() DateSubtype { return v.subtype }
func (v SimpleDate) AsTime() (time.Time, bool) { return v.Time, true }

type SimpleSequence struct {
	Elements []Value
}

func (v *SimpleSequence) Kind() Kind { return KindSequence }
func (v *SimpleSequence) Len() int { return len(v.Elements) }

func (v *SimpleSequence) At(index int) (Value, error) {
	if index < 0 || index >= len(v.Elements) {
		return nil, fmt.Errorf("sequence index %d out of bounds for length %d", index, len(v.Elements))
	}
	return v.Elements[index], nil
}

type SimpleCollection struct {
	Elements []Value
}

func (v *SimpleCollection) Kind() Kind { return KindCollection }

func (v *SimpleCollection) Iterate() Iterator {
	return &sliceIterator{elements: v.Elements}
}

type sliceIterator struct {
	elements []Value
	next     int
}

func (it *sliceIterator) Next() (Value, bool, error) {
	if it.next >= len(it.elements) {
		return nil, true, nil
	}
	v := it.elements[it.next]
	it.next++
	return v, false, nil
}

type SimpleHash struct {
	Fields map[string]Value
}

func (v *SimpleHash) Kind() Kind { return KindHash }

func (v *SimpleHash) Get(key string) (Value, error) {
	return v.Fields[key], nil
}

func (v *SimpleHash) IsEmpty() bool { return len(v.Fields) == 0 }
