package protocol

import (
	"fmt"
	"io"
	"math/bits"
)

// MaxBitSetWords caps a decoded BitSet at 2^16 words.
const MaxBitSetWords = 1 << 16

// BitSet is a growable bit mask, stored as 64-bit words with bit i in word i/64.
// It is used for "which of N sections carry data" presence masks.
type BitSet struct {
	words []uint64
}

func NewBitSet(indices ...int) BitSet {
	var b BitSet
	for _, i := range indices {
		b.Set(i)
	}
	return b
}

func BitSetFromWords(words []uint64) BitSet {
	w := append([]uint64(nil), words...)
	return BitSet{words: trimWords(w)}
}

func trimWords(w []uint64) []uint64 {
	n := len(w)
	for n > 0 && w[n-1] == 0 {
		n--
	}
	if n == 0 {
		return nil
	}
	return w[:n]
}

func (b *BitSet) Set(i int) {
	if i < 0 {
		return
	}
	word := i / 64
	for len(b.words) <= word {
		b.words = append(b.words, 0)
	}
	b.words[word] |= 1 << uint(i%64)
}

func (b *BitSet) Clear(i int) {
	word := i / 64
	if i < 0 || word >= len(b.words) {
		return
	}
	b.words[word] &^= 1 << uint(i%64)
	b.words = trimWords(b.words)
}

func (b BitSet) Get(i int) bool {
	word := i / 64
	if i < 0 || word >= len(b.words) {
		return false
	}
	return b.words[word]&(1<<uint(i%64)) != 0
}

// Len returns the index of the highest set bit plus one.
func (b BitSet) Len() int {
	if len(b.words) == 0 {
		return 0
	}
	last := b.words[len(b.words)-1]
	return (len(b.words)-1)*64 + 64 - bits.LeadingZeros64(last)
}

func (b BitSet) Cardinality() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

func (b BitSet) Words() []uint64 {
	return append([]uint64(nil), b.words...)
}

func (b BitSet) Equal(o BitSet) bool {
	if len(b.words) != len(o.words) {
		return false
	}
	for i := range b.words {
		if b.words[i] != o.words[i] {
			return false
		}
	}
	return true
}

// ReadBitSet reads a varint word count followed by big-endian longs.
func ReadBitSet(r io.Reader) (BitSet, error) {
	n, err := readLength(r, MaxBitSetWords)
	if err != nil {
		return BitSet{}, err
	}
	words := make([]uint64, n)
	for i := range words {
		v, err := ReadInt64(r)
		if err != nil {
			return BitSet{}, fmt.Errorf("read bitset word %d: %w", i, err)
		}
		words[i] = uint64(v)
	}
	return BitSet{words: trimWords(words)}, nil
}

func WriteBitSet(w io.Writer, b BitSet) error {
	if err := WriteVarint(w, int32(len(b.words))); err != nil {
		return err
	}
	for _, word := range b.words {
		if err := WriteInt64(w, int64(word)); err != nil {
			return err
		}
	}
	return nil
}

// ReadFixedBitSet reads a mask of exactly n bits packed into ceil(n/8) bytes.
func ReadFixedBitSet(r io.Reader, n int) (BitSet, error) {
	buf := make([]byte, (n+7)/8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return BitSet{}, err
	}
	var b BitSet
	for i := 0; i < n; i++ {
		if buf[i/8]&(1<<uint(i%8)) != 0 {
			b.Set(i)
		}
	}
	return b, nil
}

func WriteFixedBitSet(w io.Writer, b BitSet, n int) error {
	if b.Len() > n {
		return fmt.Errorf("%w: bitset of %d bits > %d", ErrSizeLimit, b.Len(), n)
	}
	buf := make([]byte, (n+7)/8)
	for i := 0; i < n; i++ {
		if b.Get(i) {
			buf[i/8] |= 1 << uint(i%8)
		}
	}
	_, err := w.Write(buf)
	return err
}
