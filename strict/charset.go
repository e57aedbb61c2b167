package strict

// CharSet is a restricted set of ASCII characters.
type CharSet struct {
	name string
	bits [2]uint64
}

// NewCharSet builds a set from members. A three byte member of the
// form "a-z" adds the inclusive range, any other member adds each of
// its bytes. Non-ASCII bytes are ignored.
func NewCharSet(name string, members ...string) *CharSet {
	c := &CharSet{name: name}
	for _, m := range members {
		if len(m) == 3 && m[1] == '-' {
			for b := int(m[0]); b <= int(m[2]); b++ {
				c.add(byte(b))
			}
			continue
		}
		for i := 0; i < len(m); i++ {
			c.add(m[i])
		}
	}
	return c
}

func (c *CharSet) add(b byte) {
	if b >= 0x80 {
		return
	}
	c.bits[b>>6] |= 1 << (b & 63)
}

func (c *CharSet) Name() string { return c.name }

func (c *CharSet) Contains(b byte) bool {
	return b < 0x80 && c.bits[b>>6]&(1<<(b&63)) != 0
}

var (
	Alpha          = NewCharSet("Alpha", "A-Z", "a-z")
	AlphaCaps      = NewCharSet("AlphaCaps", "A-Z")
	AlphaSmall     = NewCharSet("AlphaSmall", "a-z")
	Dec            = NewCharSet("Dec", "0-9")
	HexDecCaps     = NewCharSet("HexDecCaps", "0-9", "A-F")
	HexDecSmall    = NewCharSet("HexDecSmall", "0-9", "a-f")
	AlphaCapsNum   = NewCharSet("AlphaCapsNum", "A-Z", "0-9")
	AlphaNum       = NewCharSet("AlphaNum", "A-Z", "a-z", "0-9")
	AlphaNumDash   = NewCharSet("AlphaNumDash", "A-Z", "a-z", "0-9", "-")
	AlphaNumLodash = NewCharSet("AlphaNumLodash", "A-Z", "a-z", "0-9", "_")
	AsciiPrintable = NewCharSet("AsciiPrintable", " -~")

	alphaLodash      = NewCharSet("AlphaLodash", "A-Z", "a-z", "_")
	alphaSmallLodash = NewCharSet("AlphaSmallLodash", "a-z", "_")
)

// Alphabet pairs the character set allowed at the first position of a
// restricted string with the set allowed everywhere else.
type Alphabet interface {
	First() *CharSet
	Rest() *CharSet
}

type (
	// IdentChars allows [A-Za-z_][A-Za-z0-9_]*.
	IdentChars struct{}
	// PrintableChars allows printable ASCII including space.
	PrintableChars struct{}
	// DecChars allows decimal digits.
	DecChars struct{}
	// HexChars allows lower case hex digits.
	HexChars struct{}
	// SlugChars allows [A-Za-z][A-Za-z0-9-]*.
	SlugChars struct{}
)

func (IdentChars) First() *CharSet     { return alphaLodash }
func (IdentChars) Rest() *CharSet      { return AlphaNumLodash }
func (PrintableChars) First() *CharSet { return AsciiPrintable }
func (PrintableChars) Rest() *CharSet  { return AsciiPrintable }
func (DecChars) First() *CharSet       { return Dec }
func (DecChars) Rest() *CharSet        { return Dec }
func (HexChars) First() *CharSet       { return HexDecSmall }
func (HexChars) Rest() *CharSet        { return HexDecSmall }
func (SlugChars) First() *CharSet      { return Alpha }
func (SlugChars) Rest() *CharSet       { return AlphaNumDash }

// checkAlphabet returns the first position of s outside of its
// allowed set together with that set, or -1.
func checkAlphabet(s []byte, first, rest *CharSet) (int, *CharSet) {
	for i, ch := range s {
		set := rest
		if i == 0 {
			set = first
		}
		if !set.Contains(ch) {
			return i, set
		}
	}
	return -1, nil
}

// lowest returns the smallest member of c, or 0 for an empty set.
func (c *CharSet) lowest() byte {
	for b := byte(0); b < 0x80; b++ {
		if c.Contains(b) {
			return b
		}
	}
	return 0
}
