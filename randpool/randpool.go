package randpool

import "crypto/sha1"

// Pool is a deterministic random stream. The 40-byte seed buffer acts as a
// counter; every time the 20-byte data block is exhausted the counter is
// incremented and rehashed.
type Pool struct {
	seedbuf [40]byte
	databuf [20]byte
	pos     int
}

// New builds a Pool from arbitrary seed bytes.
//
// The expansion is fixed: seedbuf = SHA1(seed) ‖ SHA1(SHA1(seed)), and the
// data block is SHA1(seedbuf). Changing any step here changes every puzzle
// ever generated, so don't.
func New(seed []byte) *Pool {
	p := &Pool{}
	h := sha1.Sum(seed)
	copy(p.seedbuf[:20], h[:])
	h = sha1.Sum(p.seedbuf[:20])
	copy(p.seedbuf[20:], h[:])
	p.databuf = sha1.Sum(p.seedbuf[:])
	return p
}

// NewString is New for a string seed.
func NewString(seed string) *Pool {
	return New([]byte(seed))
}

// refill steps the counter portion of the seed buffer and rehashes.
func (p *Pool) refill() {
	for i := 0; i < 20; i++ {
		if p.seedbuf[i] != 0xFF {
			p.seedbuf[i]++
			break
		}
		p.seedbuf[i] = 0
	}
	p.databuf = sha1.Sum(p.seedbuf[:])
	p.pos = 0
}

// Bits returns the next k random bits, 1 ≤ k ≤ 32.
func (p *Pool) Bits(k int) uint32 {
	if k < 1 || k > 32 {
		panic("randpool: Bits wants 1..32 bits")
	}
	var ret uint64
	for n := 0; n < k; n += 8 {
		if p.pos >= 20 {
			p.refill()
		}
		ret = (ret << 8) | uint64(p.databuf[p.pos])
		p.pos++
	}
	return uint32(ret & ((1 << uint(k)) - 1))
}

// Byte returns the next 8 random bits.
func (p *Pool) Byte() byte {
	return byte(p.Bits(8))
}

// Upto returns a uniformly distributed integer in [0, limit).
//
// It draws ceil(log2 limit)+3 bits and rejects draws beyond the largest
// multiple of limit that fits, so every residue is exactly equally likely.
func (p *Pool) Upto(limit int) int {
	if limit < 1 {
		panic("randpool: Upto wants a positive limit")
	}
	bits := 0
	for (limit >> uint(bits)) != 0 {
		bits++
	}
	bits += 3
	if bits >= 32 {
		panic("randpool: Upto limit too large")
	}

	max := uint32(1) << uint(bits)
	divisor := max / uint32(limit)
	max = uint32(limit) * divisor

	var data uint32
	for {
		data = p.Bits(bits)
		if data < max {
			break
		}
	}
	return int(data / divisor)
}

// Shuffle permutes n elements with Fisher–Yates, calling swap(i, j) for
// each transposition. Matches the ordering contract of Upto, so shuffles
// are reproducible from the seed.
func (p *Pool) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := p.Upto(i + 1)
		if j != i {
			swap(i, j)
		}
	}
}

// ShuffleInts is Shuffle specialized to an int slice.
func ShuffleInts(a []int, p *Pool) {
	p.Shuffle(len(a), func(i, j int) { a[i], a[j] = a[j], a[i] })
}
