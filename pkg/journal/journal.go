// Package journal persists menu traffic as zstd-compressed JSON lines,
// indexes it in SQLite and replays recorded clicks.
package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/go-mclib/menu/pkg/trace"
)

// Entry kinds, one per trace event type.
const (
	KindSlotChanged = "slot_changed"
	KindDataChanged = "data_changed"
	KindContentSent = "content_sent"
	KindSlotSent    = "slot_sent"
	KindCarriedSent = "carried_sent"
	KindDataSent    = "data_sent"
	KindClicked     = "clicked"
	KindClosed      = "closed"
)

// Entry is one journal line. Data holds the JSON form of the trace event.
type Entry struct {
	Seq  uint64          `json:"seq"`
	Time time.Time       `json:"time"`
	Kind string          `json:"kind"`
	Menu trace.MenuRef   `json:"menu"`
	Data json.RawMessage `json:"data"`
}

// Writer appends entries to a zstd stream. It is safe for concurrent use.
type Writer struct {
	Logger *log.Logger

	mu      sync.Mutex
	seq     uint64
	closer  io.Closer
	enc     *zstd.Encoder
	w       *bufio.Writer
	onEntry []func(e Entry)
}

// NewWriter starts a journal on dst. Closing the Writer does not close dst.
func NewWriter(dst io.Writer) (*Writer, error) {
	enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	return &Writer{
		Logger: log.New(io.Discard, "", 0),
		enc:    enc,
		w:      bufio.NewWriterSize(enc, 64*1024),
	}, nil
}

// Create starts a journal in a new file at path, creating parent
// directories as needed. Closing the Writer closes the file.
func Create(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

// OnEntry registers a callback run after every written entry.
func (w *Writer) OnEntry(cb func(e Entry)) {
	w.mu.Lock()
	w.onEntry = append(w.onEntry, cb)
	w.mu.Unlock()
}

// Write appends one entry of the given kind with v as its data.
func (w *Writer) Write(kind string, ref trace.MenuRef, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("journal: encode %s: %w", kind, err)
	}

	w.mu.Lock()
	if w.enc == nil {
		w.mu.Unlock()
		return fmt.Errorf("journal: write %s: writer closed", kind)
	}
	w.seq++
	e := Entry{Seq: w.seq, Time: time.Now().UTC(), Kind: kind, Menu: ref, Data: data}
	b, err := json.Marshal(e)
	if err == nil {
		_, err = w.w.Write(append(b, '\n'))
	}
	if err == nil {
		err = w.w.Flush()
	}
	cbs := w.onEntry
	w.mu.Unlock()

	if err != nil {
		return fmt.Errorf("journal: write %s: %w", kind, err)
	}
	for _, cb := range cbs {
		cb(e)
	}
	return nil
}

// Attach journals every trace event published on bus until detach is called.
func (w *Writer) Attach(bus *trace.Bus) (detach func()) {
	unsubs := []func(){
		subscribe(w, bus, KindSlotChanged, func(e trace.SlotChanged) trace.MenuRef { return e.Menu }),
		subscribe(w, bus, KindDataChanged, func(e trace.DataChanged) trace.MenuRef { return e.Menu }),
		subscribe(w, bus, KindContentSent, func(e trace.ContentSent) trace.MenuRef { return e.Menu }),
		subscribe(w, bus, KindSlotSent, func(e trace.SlotSent) trace.MenuRef { return e.Menu }),
		subscribe(w, bus, KindCarriedSent, func(e trace.CarriedSent) trace.MenuRef { return e.Menu }),
		subscribe(w, bus, KindDataSent, func(e trace.DataSent) trace.MenuRef { return e.Menu }),
		subscribe(w, bus, KindClicked, func(e trace.Clicked) trace.MenuRef { return e.Menu }),
		subscribe(w, bus, KindClosed, func(e trace.Closed) trace.MenuRef { return e.Menu }),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func subscribe[T any](w *Writer, bus *trace.Bus, kind string, ref func(T) trace.MenuRef) func() {
	return trace.Subscribe(bus, func(e T) {
		if err := w.Write(kind, ref(e), e); err != nil {
			w.Logger.Println(err)
		}
	})
}

// Close flushes and finishes the zstd stream.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.enc == nil {
		return nil
	}
	err := w.w.Flush()
	if cerr := w.enc.Close(); err == nil {
		err = cerr
	}
	w.enc, w.w = nil, nil
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
		w.closer = nil
	}
	return err
}

// ReadAll decodes every entry of a journal stream.
func ReadAll(r io.Reader) ([]Entry, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	var entries []Entry
	for sc.Scan() {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return entries, fmt.Errorf("journal: entry %d: %w", len(entries)+1, err)
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return entries, fmt.Errorf("journal: %w", err)
	}
	return entries, nil
}

// Open reads every entry of the journal file at path.
func Open(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadAll(f)
}
