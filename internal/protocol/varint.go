package protocol

import (
	"io"
)

const (
	SEGMENT_BITS = 0x7F
	CONTINUE_BIT = 0x80

	MaxVarIntLen  = 5
	MaxVarLongLen = 10
)

func readOne(r io.Reader, buf []byte) (byte, error) {
	if br, ok := r.(io.ByteReader); ok {
		return br.ReadByte()
	}
	if _, err := io.ReadFull(r, buf[:1]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadVarint reads a 7-bits-per-byte, least-significant-group-first integer.
// More than five bytes is an error, never a silent wrap.
func ReadVarint(r io.Reader) (value int32, err error) {
	var buf [1]byte
	var uvalue uint32
	for i := 0; ; i++ {
		if i == MaxVarIntLen {
			return 0, ErrVarIntTooLong
		}
		b, err := readOne(r, buf[:])
		if err != nil {
			if i > 0 && err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		uvalue |= uint32(b&SEGMENT_BITS) << (7 * i)
		if b&CONTINUE_BIT == 0 {
			return int32(uvalue), nil
		}
	}
}

func WriteVarint(w io.Writer, value int32) (err error) {
	var buf [MaxVarIntLen]byte
	n := PutVarint(buf[:], value)
	_, err = w.Write(buf[:n])
	return
}

// PutVarint encodes value into buf and returns the number of bytes written.
// buf must hold at least MaxVarIntLen bytes.
func PutVarint(buf []byte, value int32) int {
	uvalue := uint32(value)
	n := 0
	for {
		temp := byte(uvalue & SEGMENT_BITS)
		uvalue >>= 7
		if uvalue != 0 {
			temp |= CONTINUE_BIT
		}
		buf[n] = temp
		n++
		if uvalue == 0 {
			return n
		}
	}
}

func ReadVarLong(r io.Reader) (value int64, err error) {
	var buf [1]byte
	var uvalue uint64
	for i := 0; ; i++ {
		if i == MaxVarLongLen {
			return 0, ErrVarLongTooLong
		}
		b, err := readOne(r, buf[:])
		if err != nil {
			if i > 0 && err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		uvalue |= uint64(b&SEGMENT_BITS) << (7 * i)
		if b&CONTINUE_BIT == 0 {
			return int64(uvalue), nil
		}
	}
}

func WriteVarLong(w io.Writer, value int64) (err error) {
	var buf [MaxVarLongLen]byte
	uvalue := uint64(value)
	n := 0
	for {
		temp := byte(uvalue & SEGMENT_BITS)
		uvalue >>= 7
		if uvalue != 0 {
			temp |= CONTINUE_BIT
		}
		buf[n] = temp
		n++
		if uvalue == 0 {
			break
		}
	}
	_, err = w.Write(buf[:n])
	return
}

// VarIntLen returns the encoded size of value in bytes.
func VarIntLen(value int32) int {
	uvalue := uint32(value)
	count := 0
	for {
		count++
		uvalue >>= 7
		if uvalue == 0 {
			return count
		}
	}
}
