package protocol

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		f    Frame
		want []byte
	}{
		{"空负载", Frame{ID: 0x00}, []byte{0x01, 0x00}},
		{"带负载", Frame{ID: 0x1B, Payload: []byte{0xAA, 0xBB}}, []byte{0x03, 0x1B, 0xAA, 0xBB}},
		{"两字节 id", Frame{ID: 200, Payload: []byte{0x01}}, []byte{0x03, 0xC8, 0x01, 0x01}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			if err := WriteFrame(buf, &tt.f); err != nil {
				t.Fatalf("WriteFrame 返回错误: %v", err)
			}
			if !bytes.Equal(buf.Bytes(), tt.want) {
				t.Errorf("WriteFrame = %X, 期望 %X", buf.Bytes(), tt.want)
			}
			got, err := ReadFrame(buf, 0)
			if err != nil {
				t.Fatalf("ReadFrame 返回错误: %v", err)
			}
			if got.ID != tt.f.ID || !bytes.Equal(got.Payload, tt.f.Payload) {
				t.Errorf("ReadFrame = %+v, 期望 %+v", got, tt.f)
			}
		})
	}
}

func TestReadFrameErrors(t *testing.T) {
	t.Run("长度为零", func(t *testing.T) {
		if _, err := ReadFrame(bytes.NewReader([]byte{0x00}), 0); !errors.Is(err, ErrInvalidPacket) {
			t.Errorf("期望 ErrInvalidPacket, 实际: %v", err)
		}
	})

	t.Run("超过上限", func(t *testing.T) {
		buf := &bytes.Buffer{}
		WriteVarint(buf, 1025)
		_, err := ReadFrame(buf, 1024)
		if !errors.Is(err, ErrPacketTooLarge) {
			t.Errorf("期望 ErrPacketTooLarge, 实际: %v", err)
		}
		if KindOf(err) != KindSizeLimit {
			t.Errorf("KindOf = %s, 期望 size_limit", KindOf(err))
		}
	})

	t.Run("截断", func(t *testing.T) {
		_, err := ReadFrame(bytes.NewReader([]byte{0x05, 0x01}), 0)
		if !errors.Is(err, io.ErrUnexpectedEOF) || !errors.Is(err, ErrInvalidPacket) {
			t.Errorf("期望 ErrInvalidPacket 与 io.ErrUnexpectedEOF, 实际: %v", err)
		}
	})

	t.Run("流结束", func(t *testing.T) {
		if _, err := ReadFrame(bytes.NewReader(nil), 0); err != io.EOF {
			t.Errorf("期望 io.EOF, 实际: %v", err)
		}
	})
}

func TestMultipleFrames(t *testing.T) {
	buf := &bytes.Buffer{}
	for i := int32(0); i < 3; i++ {
		WriteFrame(buf, &Frame{ID: i, Payload: []byte{byte(i)}})
	}
	for i := int32(0); i < 3; i++ {
		f, err := ReadFrame(buf, 0)
		if err != nil {
			t.Fatalf("第 %d 个包返回错误: %v", i, err)
		}
		if f.ID != i || f.Payload[0] != byte(i) {
			t.Errorf("第 %d 个包 = %+v", i, f)
		}
	}
}

func TestAppendFrame(t *testing.T) {
	got := AppendFrame([]byte{0xFF}, &Frame{ID: 300, Payload: []byte{0x01}})
	if !bytes.Equal(got, []byte{0xFF, 0xAC, 0x02, 0x01}) {
		t.Errorf("AppendFrame = %X", got)
	}
	f, err := ParseFrame(got[1:])
	if err != nil || f.ID != 300 || !bytes.Equal(f.Payload, []byte{0x01}) {
		t.Errorf("ParseFrame = %+v, %v", f, err)
	}
}

func FuzzReadFrame(f *testing.F) {
	f.Add([]byte{0x01, 0x00})
	f.Add([]byte{0x03, 0x1B, 0xAA, 0xBB})
	f.Add([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x07})

	f.Fuzz(func(t *testing.T, data []byte) {
		frame, err := ReadFrame(bytes.NewReader(data), 4096)
		if err != nil {
			return
		}
		buf := &bytes.Buffer{}
		if err := WriteFrame(buf, frame); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	})
}
