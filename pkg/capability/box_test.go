package capability

import (
	"io"
	"testing"

	"github.com/capstream-io/capstream/pkg/stream"
)

func TestReaderBoxPreservesCapabilities(t *testing.T) {
	// Create a handle with positioning declared, reposition the stream
	// through an accessor, and then convert the handle.
	reader := NewReader(stream.NewCursor([]byte("Hello, world!")))
	DeclareSeeker(reader)
	if seeker, ok := reader.Seeker(); !ok {
		t.Fatal("declared positioning capability absent")
	} else if _, err := seeker.Seek(5, io.SeekStart); err != nil {
		t.Fatal("seek failed:", err)
	}
	box := reader.Box()

	// Verify that the box reports the declared capability and that its
	// accessor observes the repositioned stream.
	if !box.Has(CapabilitySeek) {
		t.Error("positioning capability absent after conversion")
	}
	seeker, ok := box.Seeker()
	if !ok {
		t.Fatal("positioning accessor absent after conversion")
	}
	if position, err := seeker.Seek(2, io.SeekCurrent); err != nil {
		t.Fatal("seek failed:", err)
	} else if position != 7 {
		t.Error("seek position mismatch:", position, "!=", 7)
	}
	if data, err := stream.ReadAll(box); err != nil {
		t.Fatal("read failed:", err)
	} else if string(data) != "world!" {
		t.Error("read content mismatch:", string(data), "!=", "world!")
	}
}

func TestReaderBoxWithoutDeclarations(t *testing.T) {
	box := NewReader(stream.NewCursor([]byte("Hello, world!"))).Box()
	if _, ok := box.Seeker(); ok {
		t.Error("positioning available without declaration")
	}
	if _, ok := box.Buffered(); ok {
		t.Error("readahead available without declaration")
	}
	if _, ok := box.Identify(); ok {
		t.Error("identity available without declaration")
	}
	if data, err := stream.ReadAll(box); err != nil {
		t.Fatal("read failed:", err)
	} else if string(data) != "Hello, world!" {
		t.Error("read content mismatch:", string(data), "!=", "Hello, world!")
	}
}

func TestReaderBoxStaysErased(t *testing.T) {
	// Without an identity declaration, conversion must be a one-way door:
	// neither the box's accessors nor the box itself may reveal the concrete
	// stream type.
	box := NewReader(stream.NewCursor([]byte("Hello, world!"))).Box()
	if _, ok := box.Stream().(*stream.Cursor); ok {
		t.Error("concrete stream type recoverable from reading accessor")
	}
	if _, ok := box.Stream().(stream.Seeker); ok {
		t.Error("undeclared positioning recoverable from reading accessor")
	}
}

func TestReaderBoxIdentityRecovery(t *testing.T) {
	cursor := stream.NewCursor([]byte("Hello, world!"))
	reader := NewReader(cursor)
	DeclareIdentity(reader)
	box := reader.Box()
	value, ok := box.Identify()
	if !ok {
		t.Fatal("identity capability absent after conversion")
	}
	recovered, ok := value.(*stream.Cursor)
	if !ok {
		t.Fatal("identity value has unexpected type")
	}
	if recovered != cursor {
		t.Error("identity value is not the original stream")
	}
}

func TestReaderBoxDetachesHandle(t *testing.T) {
	reader := NewReader(stream.NewCursor([]byte("Hello, world!")))
	box := reader.Box()

	// Verify that the handle refuses all further use.
	mustPanic(t, "read after conversion", func() { reader.Read(make([]byte, 1)) })
	mustPanic(t, "declaration after conversion", func() { DeclareSeeker(reader) })
	mustPanic(t, "second conversion", func() { reader.Box() })
	mustPanic(t, "unwrap after conversion", func() { reader.Unwrap() })

	// Verify that the box still operates.
	if data, err := stream.ReadAll(box); err != nil {
		t.Fatal("read failed:", err)
	} else if string(data) != "Hello, world!" {
		t.Error("read content mismatch:", string(data), "!=", "Hello, world!")
	}
}
