// Package buffers hands out exclusive access to pooled buffers.
package buffers

//go:generate go run ../../mockinject

// Pool owns one scratch buffer per name.
type Pool struct {
	scratch map[string]*[]byte
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{scratch: make(map[string]*[]byte)}
}

// Scratch returns the caller's exclusive scratch buffer for name, creating
// it on first use. The caller must not hold two results for the same name.
//
//mockable:inject exclusive
func (p *Pool) Scratch(name string) *[]byte {
	mockArgs, mockRes, mockDone := MockPoolScratch().Intercept(MockPoolScratchArgs{Recv: p, Name: name})
	if mockDone {
		return mockRes
	}

	p, name = mockArgs.Recv, mockArgs.Name

	buf, ok := p.scratch[name]
	if !ok {
		buf = new([]byte)
		p.scratch[name] = buf
	}

	*buf = (*buf)[:0]

	return buf
}

// Fill writes n copies of b into the scratch buffer for name and returns
// its length.
func Fill(p *Pool, name string, b byte, n int) int {
	buf := p.Scratch(name)

	for range n {
		*buf = append(*buf, b)
	}

	return len(*buf)
}
