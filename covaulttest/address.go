package covaulttest

import (
	"fmt"
	"sync/atomic"

	"github.com/covault/covault"
)

var condCounter int64

// NewCondition returns a new, unique condition. Each call returns a
// different principal, deterministically derived from a process-wide
// counter.
func NewCondition() covault.Condition {
	n := atomic.AddInt64(&condCounter, 1)
	data := []byte(fmt.Sprintf("%08d", n))
	return covault.NewCondition("test", "cond", data)
}

// NewAddress returns the address of a new, unique condition.
func NewAddress() covault.Address {
	return NewCondition().Address()
}
