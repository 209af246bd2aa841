package discriminator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Discriminator is an ordered byte sequence identifying an instruction.
//
// JSON encodes it as an array of integers (e.g. [9]) rather than the
// base64 string encoding/json uses for []byte, matching the IDL format.
type Discriminator []byte

// MarshalJSON implements json.Marshaler.
func (d Discriminator) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, b := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Itoa(int(b)))
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
// Every element must be an integer in the range 0..255.
func (d *Discriminator) UnmarshalJSON(data []byte) error {
	var values []int64
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("discriminator must be an array of integers: %w", err)
	}
	if values == nil {
		*d = nil
		return nil
	}
	out, err := FromInts(values)
	if err != nil {
		return err
	}
	*d = out
	return nil
}

// FromInts converts integers to a Discriminator, rejecting values that do
// not fit in an unsigned byte.
func FromInts[T int | int64](values []T) (Discriminator, error) {
	out := make(Discriminator, len(values))
	for i, v := range values {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("discriminator[%d]: %d is out of range 0..255", i, v)
		}
		out[i] = byte(v)
	}
	return out, nil
}

// Equal reports whether d and other hold the same bytes in the same order.
func (d Discriminator) Equal(other Discriminator) bool {
	return bytes.Equal(d, other)
}

// Ints returns the discriminator as a slice of ints, the shape used in
// JSON reports.
func (d Discriminator) Ints() []int {
	out := make([]int, len(d))
	for i, b := range d {
		out[i] = int(b)
	}
	return out
}

// String renders the discriminator as a bracketed list, e.g. "[1, 2]".
func (d Discriminator) String() string {
	parts := make([]string, len(d))
	for i, b := range d {
		parts[i] = strconv.Itoa(int(b))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Hex renders the discriminator as lowercase hex.
func (d Discriminator) Hex() string {
	return fmt.Sprintf("%x", []byte(d))
}
