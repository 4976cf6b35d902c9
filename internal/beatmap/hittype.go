package beatmap

import (
	"errors"
	"fmt"
)

// Bits of the hit object type byte.
const (
	TypeCircle    = 0b0000_0001
	TypeSlider    = 0b0000_0010
	TypeNewCombo  = 0b0000_0100
	TypeSpinner   = 0b0000_1000
	ColorSkipMask = 0b0111_0000
	TypeHoldNote  = 0b1000_0000

	// KindMask selects the four variant bits.
	KindMask = TypeCircle | TypeSlider | TypeSpinner | TypeHoldNote

	colorSkipShift = 4
	maxColorSkip   = ColorSkipMask >> colorSkipShift
)

// ErrInvalidType is returned when a type byte does not name exactly one variant.
var ErrInvalidType = errors.New("invalid hit object type")

var kindBits = map[int]ObjectKind{
	TypeCircle:   KindCircle,
	TypeSlider:   KindSlider,
	TypeSpinner:  KindSpinner,
	TypeHoldNote: KindHoldNote,
}

// DecodeType splits a type byte into its variant, new-combo flag and
// colour-skip count.
func DecodeType(b int) (kind ObjectKind, newCombo bool, colorSkip int, err error) {
	kind, ok := kindBits[b&KindMask]
	if !ok {
		return 0, false, 0, fmt.Errorf("%w: %d", ErrInvalidType, b)
	}
	newCombo = b&TypeNewCombo != 0
	colorSkip = (b & ColorSkipMask) >> colorSkipShift
	return kind, newCombo, colorSkip, nil
}

// EncodeType is the inverse of DecodeType. colorSkip is clamped to 0-7.
func EncodeType(kind ObjectKind, newCombo bool, colorSkip int) int {
	var b int
	switch kind {
	case KindCircle:
		b = TypeCircle
	case KindSlider:
		b = TypeSlider
	case KindSpinner:
		b = TypeSpinner
	case KindHoldNote:
		b = TypeHoldNote
	}
	if newCombo {
		b |= TypeNewCombo
	}
	colorSkip = max(0, min(colorSkip, maxColorSkip))
	return b | colorSkip<<colorSkipShift
}

// TypeByte rebuilds the type byte of an object.
func TypeByte(o HitObject) int {
	c := o.Common()
	return EncodeType(o.Kind(), c.NewCombo, c.ColorSkip)
}
