package api

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Offset is a flat offset as reported by the service. Decoding never fails:
// a missing, null, non-numeric or fractional value decodes as an unset Offset
// so one bad comment cannot reject the whole response.
type Offset struct {
	value int
	set   bool
}

// At returns a set Offset.
func At(v int) Offset { return Offset{value: v, set: true} }

// Int returns the offset and whether it holds an integer.
func (o Offset) Int() (int, bool) { return o.value, o.set }

func (o Offset) String() string {
	if !o.set {
		return "invalid"
	}
	return strconv.Itoa(o.value)
}

func (o Offset) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(o.value)), nil
}

func (o *Offset) UnmarshalJSON(b []byte) error {
	*o = Offset{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] == '"' || bytes.Equal(b, []byte("null")) {
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return nil
	}
	if i, err := strconv.ParseInt(n.String(), 10, strconv.IntSize); err == nil {
		*o = At(int(i))
		return nil
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil || math.Trunc(f) != f || math.Abs(f) > math.MaxInt32 {
		return nil
	}
	*o = At(int(f))
	return nil
}
