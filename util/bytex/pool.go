package bytex

import "sync"

const defaultSize = 32 * 1024

// Bytes is a scratch byte slice borrowed from the pool.
type Bytes = []byte

var gp = sync.Pool{
	New: func() any {
		buf := make(Bytes, defaultSize)
		return &buf
	},
}

// Get returns a scratch buffer from the pool, sized to at least size bytes
// (default 32k). The binary relocator uses this for the skip/copy loop so
// that repeated region copies don't each allocate a fresh buffer.
func Get(size ...uint64) Bytes {
	buf := *(gp.Get().(*Bytes))

	s := defaultSize
	if len(size) != 0 && size[0] != 0 {
		s = int(size[0])
	}
	if cap(buf) >= s {
		return buf[:s]
	}

	gp.Put(&buf)

	ns := s
	if ns < defaultSize {
		ns = defaultSize
	}
	buf = make(Bytes, ns)
	return buf[:s]
}

// Put returns buf to the pool.
func Put(buf Bytes) {
	gp.Put(&buf)
}
