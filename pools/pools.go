package pools

import (
	"strings"
	"sync"
)

// NewBuilderPool creates a string builder pool whose builders start with the
// given capacity.
func NewBuilderPool(capacity int) *sync.Pool {
	return &sync.Pool{
		New: func() interface{} {
			builder := &strings.Builder{}
			builder.Grow(capacity)
			return builder
		},
	}
}

// GetBuilderFromPool gets a string builder from the pool and resets it
func GetBuilderFromPool(pool *sync.Pool) *strings.Builder {
	builder := pool.Get().(*strings.Builder)
	builder.Reset()
	return builder
}

// ReturnBuilderToPool returns a string builder to the pool
func ReturnBuilderToPool(pool *sync.Pool, builder *strings.Builder) {
	// Very large builders are dropped so one huge record does not pin memory
	if builder.Cap() > 64*1024 {
		return
	}
	pool.Put(builder)
}

// Signatures pools builders for signature strings.
var Signatures = NewBuilderPool(64)

// Lines pools builders for report lines.
var Lines = NewBuilderPool(128)
