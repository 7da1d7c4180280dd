package capability

import (
	"io"
	"strings"
	"testing"

	"github.com/capstream-io/capstream/pkg/stream"
)

func TestReaderCapabilitiesAbsentByDefault(t *testing.T) {
	// Create a handle over a stream that could support every optional
	// capability, but don't declare any of them.
	reader := NewReader(stream.NewCursor([]byte("Hello, world!")))

	// Verify that reading still works.
	buffer := make([]byte, 5)
	if n, err := reader.Read(buffer); err != nil {
		t.Fatal("read failed:", err)
	} else if string(buffer[:n]) != "Hello" {
		t.Error("read content mismatch:", string(buffer[:n]), "!=", "Hello")
	}

	// Verify that no optional capability is reported.
	if _, ok := reader.Seeker(); ok {
		t.Error("positioning available without declaration")
	}
	if _, ok := reader.Buffered(); ok {
		t.Error("readahead available without declaration")
	}
	if _, ok := reader.Identify(); ok {
		t.Error("identity available without declaration")
	}
	if declared := reader.Declared(); len(declared) != 0 {
		t.Error("unexpected declared capabilities:", declared)
	}
}

func TestReaderMandatoryAccessorHidesUndeclared(t *testing.T) {
	// The underlying stream supports positioning and readahead, but neither
	// has been declared, so the reading accessor must not allow either to be
	// rediscovered via type assertion.
	reader := NewReader(stream.NewCursor([]byte("Hello, world!")))
	accessor := reader.Stream()
	if _, ok := accessor.(stream.Seeker); ok {
		t.Error("undeclared positioning recoverable from reading accessor")
	}
	if _, ok := accessor.(stream.BufferedReader); ok {
		t.Error("undeclared readahead recoverable from reading accessor")
	}
	if _, ok := accessor.(*stream.Cursor); ok {
		t.Error("concrete stream type recoverable from reading accessor")
	}
}

func TestReaderDeclaredAccessorIsNarrow(t *testing.T) {
	reader := NewReader(stream.NewCursor([]byte("Hello, world!")))
	DeclareSeeker(reader)
	seeker, ok := reader.Seeker()
	if !ok {
		t.Fatal("declared positioning capability absent")
	}
	if _, ok := seeker.(stream.Reader); ok {
		t.Error("positioning accessor exposes reading")
	}
	if _, ok := seeker.(*stream.Cursor); ok {
		t.Error("concrete stream type recoverable from positioning accessor")
	}
}

func TestReaderDeclareSeeker(t *testing.T) {
	// Create a handle and declare positioning support.
	reader := NewReader(stream.NewCursor([]byte("Hello, world!")))
	DeclareSeeker(reader)

	// Verify that the capability is reported.
	if !reader.Has(CapabilitySeek) {
		t.Error("declared positioning capability not reported")
	}
	if declared := reader.Declared(); len(declared) != 1 || declared[0] != CapabilitySeek {
		t.Error("declared capability set mismatch:", declared)
	}

	// Verify that the accessor drives the underlying stream.
	seeker, ok := reader.Seeker()
	if !ok {
		t.Fatal("declared positioning capability absent")
	}
	if position, err := seeker.Seek(7, io.SeekStart); err != nil {
		t.Fatal("seek failed:", err)
	} else if position != 7 {
		t.Error("seek position mismatch:", position, "!=", 7)
	}
	if data, err := stream.ReadAll(reader); err != nil {
		t.Fatal("read failed:", err)
	} else if string(data) != "world!" {
		t.Error("read content mismatch:", string(data), "!=", "world!")
	}
}

func TestReaderDeclareBuffered(t *testing.T) {
	reader := NewReader(stream.NewCursor([]byte("alpha\nbeta\n")))
	DeclareBuffered(reader)

	// Verify that the readahead accessor supports delimited reads.
	buffered, ok := reader.Buffered()
	if !ok {
		t.Fatal("declared readahead capability absent")
	}
	if line, err := stream.ReadUntil(buffered, '\n'); err != nil {
		t.Fatal("delimited read failed:", err)
	} else if string(line) != "alpha\n" {
		t.Error("line mismatch:", string(line), "!=", "alpha\n")
	}

	// Verify that the accessor and the handle share stream state.
	if data, err := stream.ReadAll(reader); err != nil {
		t.Fatal("read failed:", err)
	} else if string(data) != "beta\n" {
		t.Error("remainder mismatch:", string(data), "!=", "beta\n")
	}
}

func TestReaderDeclareBufferedOverReadahead(t *testing.T) {
	// Wrap a plain reader with readahead and declare the resulting
	// capability on a handle.
	readahead := stream.NewReadahead(strings.NewReader("alpha\nbeta"))
	reader := NewReader(readahead)
	DeclareBuffered(reader)
	buffered, ok := reader.Buffered()
	if !ok {
		t.Fatal("declared readahead capability absent")
	}
	if line, err := stream.ReadUntil(buffered, '\n'); err != nil {
		t.Fatal("delimited read failed:", err)
	} else if string(line) != "alpha\n" {
		t.Error("line mismatch:", string(line), "!=", "alpha\n")
	}
}

func TestReaderRedeclarationIsIdempotent(t *testing.T) {
	reader := NewReader(stream.NewCursor([]byte("Hello, world!")))
	DeclareSeeker(reader)
	DeclareSeeker(reader)
	if declared := reader.Declared(); len(declared) != 1 || declared[0] != CapabilitySeek {
		t.Error("declared capability set mismatch:", declared)
	}
	if seeker, ok := reader.Seeker(); !ok {
		t.Fatal("declared positioning capability absent")
	} else if position, err := seeker.Seek(7, io.SeekStart); err != nil {
		t.Fatal("seek failed:", err)
	} else if position != 7 {
		t.Error("seek position mismatch:", position, "!=", 7)
	}
}

func TestReaderCapabilitiesNotRetracted(t *testing.T) {
	// Declare positioning and run the handle through a view cycle and a
	// conversion, verifying that the capability survives both.
	reader := NewReader(stream.NewCursor([]byte("Hello, world!")))
	DeclareSeeker(reader)

	view := reader.View()
	if !view.Has(CapabilitySeek) {
		t.Error("capability absent through view")
	}
	if err := view.Close(); err != nil {
		t.Fatal("close failed:", err)
	}
	if !reader.Has(CapabilitySeek) {
		t.Error("capability absent after view closed")
	}

	box := reader.Box()
	if !box.Has(CapabilitySeek) {
		t.Error("capability absent after conversion")
	}
}

func TestReaderIdentity(t *testing.T) {
	cursor := stream.NewCursor([]byte("Hello, world!"))
	reader := NewReader(cursor)
	DeclareIdentity(reader)
	value, ok := reader.Identify()
	if !ok {
		t.Fatal("declared identity capability absent")
	}
	recovered, ok := value.(*stream.Cursor)
	if !ok {
		t.Fatal("identity value has unexpected type")
	}
	if recovered != cursor {
		t.Error("identity value is not the original stream")
	}
}

func TestReaderUnwrap(t *testing.T) {
	// Create a handle, declare positioning, and reposition the stream
	// through the accessor.
	cursor := stream.NewCursor([]byte("Hello, world!"))
	reader := NewReader(cursor)
	DeclareSeeker(reader)
	if seeker, ok := reader.Seeker(); !ok {
		t.Fatal("declared positioning capability absent")
	} else if _, err := seeker.Seek(7, io.SeekStart); err != nil {
		t.Fatal("seek failed:", err)
	}

	// Unwrap the handle and verify that the original stream comes back with
	// the accessor's mutations intact.
	unwrapped := reader.Unwrap()
	if unwrapped != cursor {
		t.Error("unwrapped stream is not the original stream")
	}
	if unwrapped.Position() != 7 {
		t.Error("unwrapped stream position mismatch:", unwrapped.Position(), "!=", 7)
	}

	// Verify that the handle is unusable after unwrapping.
	mustPanic(t, "read after unwrap", func() { reader.Read(make([]byte, 1)) })
	mustPanic(t, "declaration after unwrap", func() { DeclareSeeker(reader) })
	mustPanic(t, "view after unwrap", func() { reader.View() })
	mustPanic(t, "conversion after unwrap", func() { reader.Box() })
}
