package strict

import "fmt"

// NumClass is the numeric class held in the two high bits of a Primitive.
type NumClass uint8

const (
	ClassUnsigned NumClass = 0x00
	ClassSigned   NumClass = 0x40
	ClassNonZero  NumClass = 0x80
	ClassFloat    NumClass = 0xC0
)

const (
	classMask    = 0xC0
	sizeMask     = 0x3F
	factoredFlag = 0x20
	sizeBits     = 0x1F
)

// Primitive is the single byte type tag of a fixed width value.
type Primitive uint8

const (
	UNIT     Primitive = 0x00
	BYTE     Primitive = 0x40
	RESERVED Primitive = 0x80
	F16B     Primitive = 0xC0
)

const (
	PrimU8    Primitive = 0x01
	PrimU16   Primitive = 0x02
	PrimU24   Primitive = 0x03
	PrimU32   Primitive = 0x04
	PrimU40   Primitive = 0x05
	PrimU48   Primitive = 0x06
	PrimU56   Primitive = 0x07
	PrimU64   Primitive = 0x08
	PrimU128  Primitive = 0x10
	PrimU160  Primitive = 0x14
	PrimU256  Primitive = 0x20
	PrimU512  Primitive = 0x22
	PrimU1024 Primitive = 0x26

	PrimI8    Primitive = 0x41
	PrimI16   Primitive = 0x42
	PrimI24   Primitive = 0x43
	PrimI32   Primitive = 0x44
	PrimI40   Primitive = 0x45
	PrimI48   Primitive = 0x46
	PrimI56   Primitive = 0x47
	PrimI64   Primitive = 0x48
	PrimI128  Primitive = 0x50
	PrimI256  Primitive = 0x60
	PrimI512  Primitive = 0x62
	PrimI1024 Primitive = 0x66

	PrimN8   Primitive = 0x81
	PrimN16  Primitive = 0x82
	PrimN24  Primitive = 0x83
	PrimN32  Primitive = 0x84
	PrimN48  Primitive = 0x86
	PrimN64  Primitive = 0x88
	PrimN128 Primitive = 0x90

	PrimF16  Primitive = 0xC2
	PrimF32  Primitive = 0xC4
	PrimF64  Primitive = 0xC8
	PrimF80  Primitive = 0xCA
	PrimF128 Primitive = 0xD0
	PrimF256 Primitive = 0xE0
)

var (
	intWidths   = []uint16{1, 2, 3, 4, 5, 6, 7, 8, 16, 20, 32, 64, 128}
	floatWidths = []uint16{2, 4, 8, 10, 16, 32}
)

// NewPrimitive builds the tag for a numeric class and byte width. It
// panics on widths which have no size code.
func NewPrimitive(class NumClass, bytes uint16) Primitive {
	if !widthSupported(class, bytes) {
		panic(fmt.Sprintf("strict: unsupported %s width of %d bytes", class, bytes))
	}
	return Primitive(uint8(class) | sizeCode(bytes))
}

// ParsePrimitive validates a tag read from untrusted data.
func ParsePrimitive(code uint8) (Primitive, error) {
	p := Primitive(code)
	switch p {
	case UNIT, BYTE, F16B:
		return p, nil
	case RESERVED:
		return 0, &DataIntegrityError{Reason: "reserved primitive code 0x80"}
	}
	if code&sizeMask == 0 || sizeCode(p.ByteSize()) != code&sizeMask || !widthSupported(p.Class(), p.ByteSize()) {
		return 0, &DataIntegrityError{Reason: fmt.Sprintf("unknown primitive code %#02x", code)}
	}
	return p, nil
}

func sizeCode(bytes uint16) uint8 {
	if bytes <= sizeBits {
		return uint8(bytes)
	}
	return uint8(bytes/16-2) | factoredFlag
}

func widthSupported(class NumClass, bytes uint16) bool {
	widths := intWidths
	if class == ClassFloat {
		widths = floatWidths
	}
	for _, w := range widths {
		if w == bytes {
			return class != ClassNonZero || bytes <= 16
		}
	}
	return false
}

func (p Primitive) Class() NumClass { return NumClass(uint8(p) & classMask) }

// ByteSize reports the number of bytes a value of this primitive
// occupies on the wire.
func (p Primitive) ByteSize() uint16 {
	switch p {
	case UNIT, RESERVED:
		return 0
	case BYTE:
		return 1
	case F16B:
		return 2
	}
	code := uint8(p) & sizeMask
	if code&factoredFlag == 0 {
		return uint16(code)
	}
	return 16 * (uint16(code&sizeBits) + 2)
}

func (p Primitive) String() string {
	switch p {
	case UNIT:
		return "()"
	case BYTE:
		return "Byte"
	case RESERVED:
		return "Reserved"
	case F16B:
		return "F16b"
	}
	var prefix string
	switch p.Class() {
	case ClassUnsigned:
		prefix = "U"
	case ClassSigned:
		prefix = "I"
	case ClassNonZero:
		prefix = "N"
	case ClassFloat:
		prefix = "F"
	}
	return fmt.Sprintf("%s%d", prefix, uint32(p.ByteSize())*8)
}

func (c NumClass) String() string {
	switch c {
	case ClassUnsigned:
		return "unsigned"
	case ClassSigned:
		return "signed"
	case ClassNonZero:
		return "non-zero"
	default:
		return "float"
	}
}
