package bitgen

// Uint32Buffer adapts a 64-bit generator to 32-bit demand. One 64-bit
// draw serves two 32-bit calls: the low half is returned first and the
// high half is cached. Any seed, jump, advance or state restore must
// invalidate the cache.
type Uint32Buffer struct {
	has  bool
	word uint32
}

// Next returns the next 32-bit value, drawing from next64 only when the
// cache is empty.
func (b *Uint32Buffer) Next(next64 func() uint64) uint32 {
	if b.has {
		b.has = false
		return b.word
	}
	v := next64()
	b.has = true
	b.word = uint32(v >> 32)
	return uint32(v)
}

// Invalidate drops any cached half word.
func (b *Uint32Buffer) Invalidate() {
	b.has = false
	b.word = 0
}

// Cached reports the cache contents, for snapshots.
func (b *Uint32Buffer) Cached() (bool, uint32) { return b.has, b.word }

// Restore sets the cache contents, for snapshot restore.
func (b *Uint32Buffer) Restore(has bool, word uint32) {
	b.has = has
	b.word = word
}
