package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bnema/viewkit/internal/logger"
	"github.com/bnema/viewkit/view"
)

// Magic starts every trace
var Magic = [4]byte{'V', 'K', 'T', '1'}

// maxFrame bounds the length prefix of a single event
const maxFrame = 4096

var (
	// ErrBadMagic is returned when a stream is not a trace
	ErrBadMagic = errors.New("trace: not a trace file")
	// ErrFrameSize is returned for length prefixes out of range
	ErrFrameSize = errors.New("trace: invalid frame length")
)

// Writer appends events to a trace
type Writer struct {
	w           *bufio.Writer
	wroteHeader bool
	count       int
}

// NewWriter returns a writer that buffers output until Flush
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write appends one event with its length prefix
func (tw *Writer) Write(ev view.Event) error {
	data, err := Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if !tw.wroteHeader {
		if _, err := tw.w.Write(Magic[:]); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		tw.wroteHeader = true
	}

	// Write length prefix (4 bytes, big-endian)
	length := len(data)
	lengthBuf := []byte{
		byte(length >> 24),
		byte(length >> 16),
		byte(length >> 8),
		byte(length),
	}
	if _, err := tw.w.Write(lengthBuf); err != nil {
		return fmt.Errorf("failed to write length: %w", err)
	}
	if _, err := tw.w.Write(data); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	tw.count++
	return nil
}

// Count is the number of events written so far
func (tw *Writer) Count() int {
	return tw.count
}

// Flush writes buffered events. An empty trace still gets its header.
func (tw *Writer) Flush() error {
	if !tw.wroteHeader {
		if _, err := tw.w.Write(Magic[:]); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		tw.wroteHeader = true
	}
	return tw.w.Flush()
}

// Reader reads events from a trace
type Reader struct {
	r          *bufio.Reader
	readHeader bool
}

// NewReader returns a reader for r
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Read returns the next event, or io.EOF after the last one. Events whose
// kind this version does not know are skipped.
func (tr *Reader) Read() (view.Event, error) {
	if !tr.readHeader {
		var magic [4]byte
		if _, err := io.ReadFull(tr.r, magic[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return view.Event{}, ErrBadMagic
			}
			return view.Event{}, err
		}
		if magic != Magic {
			return view.Event{}, ErrBadMagic
		}
		tr.readHeader = true
	}

	for {
		// Read the length prefix (4 bytes)
		lengthBuf := make([]byte, 4)
		if _, err := io.ReadFull(tr.r, lengthBuf); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return view.Event{}, fmt.Errorf("truncated length prefix: %w", err)
			}
			return view.Event{}, err
		}

		length := int(lengthBuf[0])<<24 | int(lengthBuf[1])<<16 | int(lengthBuf[2])<<8 | int(lengthBuf[3])
		if length <= 0 || length > maxFrame {
			return view.Event{}, fmt.Errorf("%w: %d", ErrFrameSize, length)
		}

		frame := make([]byte, length)
		if _, err := io.ReadFull(tr.r, frame); err != nil {
			return view.Event{}, fmt.Errorf("truncated event: %w", io.ErrUnexpectedEOF)
		}

		ev, err := Unmarshal(frame)
		if errors.Is(err, ErrUnknownKind) {
			logger.Debugf("trace: skipping event: %v", err)
			continue
		}
		return ev, err
	}
}

// ReadAll reads events until the end of the trace
func (tr *Reader) ReadAll() ([]view.Event, error) {
	var events []view.Event
	for {
		ev, err := tr.Read()
		if errors.Is(err, io.EOF) {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
}

// ReadFile reads every event of the trace at path
func ReadFile(path string) ([]view.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace: %w", err)
	}
	defer f.Close()

	events, err := NewReader(f).ReadAll()
	if err != nil {
		return events, fmt.Errorf("failed to read trace %s: %w", path, err)
	}
	return events, nil
}
