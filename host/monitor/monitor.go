// Package monitor follows the debug output of a running blink firmware over
// a serial line, splitting it into lines and tracking loop progress.
package monitor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// maxLine bounds a line with no terminator; longer input is split
const maxLine = 256

// Kind classifies a firmware debug line
type Kind int

const (
	KindOther Kind = iota
	KindInit       // "init: DDRB=..."
	KindLoop       // "loop N"
	KindReset      // "soft reset"
	KindPattern    // "two-led pattern armed"
)

func (k Kind) String() string {
	switch k {
	case KindInit:
		return "init"
	case KindLoop:
		return "loop"
	case KindReset:
		return "reset"
	case KindPattern:
		return "pattern"
	}
	return "other"
}

// Line is one line of firmware output
type Line struct {
	Text string
	Kind Kind
	Loop uint32 // Iteration number for KindLoop
	At   time.Time
}

// Stats summarises what the monitor has seen
type Stats struct {
	Lines    int
	Loops    int
	Resets   int
	Gaps     int    // Loop numbers skipped (dropped async debug lines)
	LastLoop uint32 // Highest loop number seen
}

// Monitor reads firmware output from r
type Monitor struct {
	r      io.Reader
	log    zerolog.Logger
	follow bool

	OnLine func(Line)
	stats  Stats
	now    func() time.Time
}

// New creates a monitor. With follow set, io.EOF is treated as a serial
// read timeout and reading continues until ctx is done.
func New(r io.Reader, log zerolog.Logger, follow bool) *Monitor {
	return &Monitor{r: r, log: log, follow: follow, now: time.Now}
}

// Stats returns the counters collected so far
func (m *Monitor) Stats() Stats {
	return m.stats
}

// Run reads until EOF (when not following), a read error, or ctx is done
func (m *Monitor) Run(ctx context.Context) error {
	buf := make([]byte, 64)
	var pending []byte

	for {
		if err := ctx.Err(); err != nil {
			m.flush(pending)
			return err
		}

		n, err := m.r.Read(buf)
		if n > 0 {
			pending = m.consume(append(pending, buf[:n]...))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				if m.follow {
					continue
				}
				m.flush(pending)
				return nil
			}
			return fmt.Errorf("serial read failed: %w", err)
		}
	}
}

// consume emits every complete line in data and returns the remainder
func (m *Monitor) consume(data []byte) []byte {
	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			if len(data) >= maxLine {
				m.emit(data[:maxLine])
				data = data[maxLine:]
				continue
			}
			return data
		}
		m.emit(data[:i])
		data = data[i+1:]
	}
}

func (m *Monitor) flush(pending []byte) {
	if len(pending) > 0 {
		m.emit(pending)
	}
}

func (m *Monitor) emit(raw []byte) {
	text := strings.TrimRight(string(raw), "\r")
	if text == "" {
		return
	}

	line := Classify(text)
	line.At = m.now()
	m.stats.Lines++

	switch line.Kind {
	case KindLoop:
		if m.stats.Loops > 0 && line.Loop > m.stats.LastLoop+1 {
			missed := int(line.Loop - m.stats.LastLoop - 1)
			m.stats.Gaps += missed
			m.log.Warn().Uint32("after", m.stats.LastLoop).Int("missed", missed).Msg("loop lines dropped")
		}
		m.stats.Loops++
		if line.Loop > m.stats.LastLoop {
			m.stats.LastLoop = line.Loop
		}
	case KindReset:
		m.stats.Resets++
		m.stats.LastLoop = 0
		m.stats.Loops = 0
		m.log.Warn().Msg("firmware soft reset")
	case KindInit:
		m.log.Info().Str("registers", strings.TrimPrefix(text, "init: ")).Msg("firmware init")
	}
	m.log.Debug().Str("kind", line.Kind.String()).Msg(text)

	if m.OnLine != nil {
		m.OnLine(line)
	}
}

// Classify parses one line of firmware output
func Classify(text string) Line {
	line := Line{Text: text, Kind: KindOther}
	switch {
	case strings.HasPrefix(text, "init: "):
		line.Kind = KindInit
	case strings.HasPrefix(text, "loop "):
		n, err := strconv.ParseUint(strings.TrimPrefix(text, "loop "), 10, 32)
		if err == nil {
			line.Kind = KindLoop
			line.Loop = uint32(n)
		}
	case text == "soft reset":
		line.Kind = KindReset
	case text == "two-led pattern armed":
		line.Kind = KindPattern
	}
	return line
}
