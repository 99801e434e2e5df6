package frame

import "github.com/google/uuid"

// Key is the identity of a vec in the persistence layer.
type Key string

// NewKey returns a fresh random key.
func NewKey() Key { return Key("vec_" + uuid.NewString()) }

// String implements fmt.Stringer.
func (k Key) String() string { return string(k) }
