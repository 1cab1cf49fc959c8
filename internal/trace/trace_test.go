package trace

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
	"gopkg.in/yaml.v3"

	"github.com/bnema/viewkit/view"
)

var keyValOpt = cmp.Comparer(func(a, b view.KeyVal) bool {
	ac, aok := a.Char()
	bc, bok := b.Char()
	if aok || bok {
		return aok == bok && ac == bc
	}
	as, _ := a.Special()
	bs, _ := b.Special()
	return as == bs
})

func ctx(x, y float64) view.EventContext {
	return view.EventContext{Pos: view.Coord{X: x, Y: y}, PosRoot: view.Coord{X: x + 100, Y: y + 200}, Time: 12.5}
}

func sampleEvents() []view.Event {
	return []view.Event{
		{Data: view.KeyPress{Key: view.Key{Val: view.Character('é'), Modifiers: view.ModShift, Code: 26}}, Context: ctx(1, 2)},
		{Data: view.KeyRelease{Key: view.Key{Val: view.Special(view.KeyEscape), Code: 9}}, Context: ctx(3, 4)},
		{Data: view.KeyPress{Key: view.Key{Val: view.Character(0)}}, Context: ctx(0, 0)},
		{Data: view.ButtonPress{MouseButton: view.MouseButton{Num: 1, Modifiers: view.ModCtrl | view.ModAlt}}, Context: ctx(5, 6)},
		{Data: view.ButtonRelease{MouseButton: view.MouseButton{Num: 3}}, Context: ctx(7, 8)},
		{Data: view.Motion{MotionContext: view.MotionContext{Flags: view.FlagIsHint}}, Context: ctx(-9, 10)},
		{Data: view.Wheel{Scroll: view.Scroll{DX: -0.5, DY: 1, Modifiers: view.ModSuper}}, Context: ctx(11, 12)},
		{Data: view.PointerIn{}, Context: ctx(13, 14)},
		{Data: view.PointerOut{}, Context: ctx(15, 16)},
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	for _, ev := range sampleEvents() {
		t.Run(ev.Kind(), func(t *testing.T) {
			data, err := Marshal(ev)
			require.NoError(t, err)

			got, err := Unmarshal(data)
			require.NoError(t, err)
			if diff := cmp.Diff(ev, got, keyValOpt); diff != "" {
				t.Errorf("event mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMarshalUnknownKind(t *testing.T) {
	_, err := Marshal(view.Event{})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestUnmarshalErrors(t *testing.T) {
	t.Run("truncated varint", func(t *testing.T) {
		b := protowire.AppendTag(nil, fieldKind, protowire.VarintType)
		b = append(b, 0x80)
		_, err := Unmarshal(b)
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("unknown kind", func(t *testing.T) {
		b := protowire.AppendTag(nil, fieldKind, protowire.VarintType)
		b = protowire.AppendVarint(b, 99)
		_, err := Unmarshal(b)
		assert.ErrorIs(t, err, ErrUnknownKind)
	})

	t.Run("unknown fields are skipped", func(t *testing.T) {
		b := protowire.AppendTag(nil, 40, protowire.BytesType)
		b = protowire.AppendBytes(b, []byte("future"))
		b = protowire.AppendTag(b, fieldKind, protowire.VarintType)
		b = protowire.AppendVarint(b, kindPointerIn)

		ev, err := Unmarshal(b)
		require.NoError(t, err)
		assert.Equal(t, "pointer-in", ev.Kind())
	})
}

func TestWriterReader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	events := sampleEvents()
	for _, ev := range events {
		require.NoError(t, w.Write(ev))
	}
	require.NoError(t, w.Flush())
	assert.Equal(t, len(events), w.Count())
	assert.Equal(t, Magic[:], buf.Bytes()[:4])

	got, err := NewReader(&buf).ReadAll()
	require.NoError(t, err)
	if diff := cmp.Diff(events, got, keyValOpt); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyTrace(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).Flush())
	assert.Equal(t, Magic[:], buf.Bytes())

	got, err := NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReaderErrors(t *testing.T) {
	frame := func(length int, payload ...byte) []byte {
		b := append([]byte{}, Magic[:]...)
		b = append(b, byte(length>>24), byte(length>>16), byte(length>>8), byte(length))
		return append(b, payload...)
	}

	tests := []struct {
		name  string
		input []byte
		check func(t *testing.T, err error)
	}{
		{"empty input", nil, func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrBadMagic) }},
		{"wrong magic", []byte("PNG\x89"), func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrBadMagic) }},
		{"zero length", frame(0), func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrFrameSize) }},
		{"oversized", frame(maxFrame + 1), func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrFrameSize) }},
		{"truncated frame", frame(10, 0x08), func(t *testing.T, err error) { assert.ErrorIs(t, err, io.ErrUnexpectedEOF) }},
		{"truncated prefix", append(append([]byte{}, Magic[:]...), 0, 0), func(t *testing.T, err error) {
			assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(bytes.NewReader(tt.input)).Read()
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestReaderSkipsUnknownKinds(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(Magic[:])

	unknown := protowire.AppendTag(nil, fieldKind, protowire.VarintType)
	unknown = protowire.AppendVarint(unknown, 42)
	buf.Write([]byte{0, 0, 0, byte(len(unknown))})
	buf.Write(unknown)

	w := NewWriter(&buf)
	w.wroteHeader = true
	require.NoError(t, w.Write(view.Event{Data: view.PointerOut{}}))
	require.NoError(t, w.Flush())

	got, err := NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "pointer-out", got[0].Kind())
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.trace")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := NewWriter(f)
	require.NoError(t, w.Write(sampleEvents()[3]))
	require.NoError(t, w.Flush())
	require.NoError(t, f.Close())

	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "button-press", got[0].Kind())

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.trace"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, sampleEvents()[:7]))

	var entries []Entry
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 7)

	assert.Equal(t, Entry{
		Kind: "key-press", Time: 12.5, Pos: [2]float64{1, 2}, PosRoot: [2]float64{101, 202},
		Modifiers: "shift", Key: `'é'`, Code: 26,
	}, entries[0])
	assert.Equal(t, "Escape", entries[1].Key)
	assert.Equal(t, "ctrl+alt", entries[3].Modifiers)
	assert.Equal(t, uint32(1), entries[3].Button)
	assert.True(t, entries[5].Hint)
	assert.Equal(t, []float64{-0.5, 1}, entries[6].Scroll)
	assert.Contains(t, buf.String(), "kind: scroll")
}
