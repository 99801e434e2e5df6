package frame

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"k8s.io/apimachinery/pkg/util/json"
)

// vecJSON is the serialized form of a vec.
type vecJSON struct {
	Key    Key          `json:"key"`
	Domain []string     `json:"domain"`
	Chunks [][]cellJSON `json:"chunks"`
}

// cellJSON encodes NA as null and infinities as the strings "Inf" and "-Inf", since JSON numbers
// cannot carry them.
type cellJSON float64

const (
	posInf = "Inf"
	negInf = "-Inf"
)

func (c cellJSON) MarshalJSON() ([]byte, error) {
	d := float64(c)
	switch {
	case math.IsNaN(d):
		return []byte("null"), nil
	case math.IsInf(d, 1):
		return json.Marshal(posInf)
	case math.IsInf(d, -1):
		return json.Marshal(negInf)
	}
	return strconv.AppendFloat(nil, d, 'g', -1, 64), nil
}

func (c *cellJSON) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*c = cellJSON(NA)
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		switch s {
		case posInf:
			*c = cellJSON(math.Inf(1))
		case negInf:
			*c = cellJSON(math.Inf(-1))
		default:
			return fmt.Errorf("invalid cell %q", s)
		}
		return nil
	}

	var d float64
	if err := json.Unmarshal(b, &d); err != nil {
		return err
	}
	*c = cellJSON(d)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v *Vec) MarshalJSON() ([]byte, error) {
	vj := vecJSON{Key: v.key, Domain: v.domain, Chunks: make([][]cellJSON, len(v.chunks))}
	for i, c := range v.chunks {
		cj := make([]cellJSON, len(c))
		for j := range c {
			cj[j] = cellJSON(c[j])
		}
		vj.Chunks[i] = cj
	}
	return json.Marshal(vj)
}

// UnmarshalJSON implements json.Unmarshaler. The decoded vec keeps the serialized key.
func (v *Vec) UnmarshalJSON(b []byte) error {
	var vj vecJSON
	if err := json.Unmarshal(b, &vj); err != nil {
		return newFrameError("failed to decode vec", err)
	}

	chunks := make([][]float64, len(vj.Chunks))
	for i, cj := range vj.Chunks {
		c := make([]float64, len(cj))
		for j := range cj {
			c[j] = float64(cj[j])
		}
		chunks[i] = c
	}

	nv, err := NewVecFromChunks(chunks, vj.Domain)
	if err != nil {
		return err
	}
	nv.key = vj.Key
	*v = *nv

	return nil
}
