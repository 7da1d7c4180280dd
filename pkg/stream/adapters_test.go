package stream

import (
	"io"
	"strings"
	"testing"
)

func TestEmpty(t *testing.T) {
	var empty Empty
	if n, err := empty.Read(make([]byte, 8)); err != io.EOF {
		t.Error("expected end of stream, got:", err)
	} else if n != 0 {
		t.Error("read count mismatch:", n, "!=", 0)
	}
	if position, err := empty.Seek(10, io.SeekCurrent); err != nil {
		t.Error("seek failed:", err)
	} else if position != 0 {
		t.Error("seek position mismatch:", position, "!=", 0)
	}
	if _, err := empty.Fill(); err != io.EOF {
		t.Error("expected end of stream, got:", err)
	}
}

func TestRepeat(t *testing.T) {
	buffer := make([]byte, 16)
	if n, err := Repeat{Byte: 0x2a}.Read(buffer); err != nil {
		t.Fatal("read failed:", err)
	} else if n != 16 {
		t.Error("read count mismatch:", n, "!=", 16)
	}
	for _, b := range buffer {
		if b != 0x2a {
			t.Fatal("read yielded unexpected byte:", b)
		}
	}
}

func TestDiscard(t *testing.T) {
	var discard Discard
	if n, err := discard.Write(make([]byte, 1024)); err != nil {
		t.Error("write failed:", err)
	} else if n != 1024 {
		t.Error("write count mismatch:", n, "!=", 1024)
	}
	if err := discard.Flush(); err != nil {
		t.Error("flush failed:", err)
	}
}

func TestLimitReader(t *testing.T) {
	limited := LimitReader(strings.NewReader("Hello, world!"), 5)
	data, err := ReadAll(limited)
	if err != nil {
		t.Fatal("read failed:", err)
	}
	if string(data) != "Hello" {
		t.Error("read content mismatch:", string(data), "!=", "Hello")
	}
	if limited.N != 0 {
		t.Error("remaining count mismatch:", limited.N, "!=", 0)
	}
}

func TestLimitReaderExhaustedWithoutInnerRead(t *testing.T) {
	// Limit an infinite source to make sure that the limiter stops consulting
	// it once the limit is reached.
	limited := LimitReader(Repeat{Byte: 'x'}, 3)
	data, err := ReadAll(limited)
	if err != nil {
		t.Fatal("read failed:", err)
	}
	if string(data) != "xxx" {
		t.Error("read content mismatch:", string(data), "!=", "xxx")
	}
	if n, err := limited.Read(make([]byte, 1)); err != io.EOF {
		t.Error("expected end of stream, got:", err)
	} else if n != 0 {
		t.Error("read count mismatch:", n, "!=", 0)
	}
}
