package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/ledgewalker/parameter"
)

// voice tracks a playing cue instance
type voice struct {
	buffer floatBuffer
	pos    int
	volume float64
}

// Mixer sums cue voices and writes s16le stereo frames on a fixed cadence
type Mixer struct {
	output io.Writer
	bank   *cueBank
	volume float64

	playQueue chan Cue
	stopChan  chan struct{}
	done      chan struct{}
	stopped   atomic.Bool

	// Accessed only by the mix goroutine
	active []voice

	played  atomic.Uint64
	dropped atomic.Uint64

	errChan chan error
}

// NewMixer creates a mixer writing to out
func NewMixer(out io.Writer, bank *cueBank, volume float64) *Mixer {
	return &Mixer{
		output:    out,
		bank:      bank,
		volume:    volume,
		playQueue: make(chan Cue, parameter.AudioQueueSize),
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
		active:    make([]voice, 0, parameter.AudioMaxVoices),
		errChan:   make(chan error, 1),
	}
}

// Start begins the mixing loop
func (m *Mixer) Start() {
	go m.loop(parameter.AudioBufferDuration)
}

// Stop halts the loop and waits for it to exit
func (m *Mixer) Stop() {
	if m.stopped.CompareAndSwap(false, true) {
		close(m.stopChan)
		<-m.done
	}
}

// Play queues a cue without blocking; a full queue drops the request
func (m *Mixer) Play(c Cue) bool {
	if m.stopped.Load() || c == CueNone {
		return false
	}
	select {
	case m.playQueue <- c:
		return true
	default:
		m.dropped.Add(1)
		return false
	}
}

// Errors returns channel for pipe errors
func (m *Mixer) Errors() <-chan error {
	return m.errChan
}

// Stats returns played and dropped counts
func (m *Mixer) Stats() (played, dropped uint64) {
	return m.played.Load(), m.dropped.Load()
}

func (m *Mixer) loop(period time.Duration) {
	defer close(m.done)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	mixBuf := make([]float64, parameter.AudioBufferSamples)
	outBytes := make([]byte, parameter.AudioBufferSamples*parameter.AudioBytesPerFrame)

	for {
		select {
		case <-m.stopChan:
			return

		case c := <-m.playQueue:
			m.start(c)

		case <-ticker.C:
			clear(mixBuf)
			m.active = m.mix(mixBuf)
			floatToBytes(mixBuf, outBytes)

			if _, err := m.output.Write(outBytes); err != nil {
				select {
				case m.errChan <- fmt.Errorf("%w: %v", ErrPipeClosed, err):
				default:
				}
				return
			}
		}
	}
}

// start adds a voice, cutting the oldest when at the voice cap
func (m *Mixer) start(c Cue) {
	buf := m.bank.get(c)
	if len(buf) == 0 {
		return
	}
	if len(m.active) >= parameter.AudioMaxVoices {
		m.active = append(m.active[:0], m.active[1:]...)
	}
	m.active = append(m.active, voice{buffer: buf, volume: m.volume})
	m.played.Add(1)
}

// mix sums active voices into buf and returns those still sounding
func (m *Mixer) mix(buf []float64) []voice {
	remaining := m.active[:0]
	for i := range m.active {
		v := m.active[i]
		for j := 0; j < len(buf) && v.pos < len(v.buffer); j++ {
			buf[j] += v.buffer[v.pos] * v.volume
			v.pos++
		}
		if v.pos < len(v.buffer) {
			remaining = append(remaining, v)
		}
	}
	return remaining
}

// floatToBytes converts float64 mono to interleaved stereo int16 LE bytes
// Applies soft limiting before hard clip
func floatToBytes(in []float64, out []byte) {
	for i, v := range in {
		if v > 0.8 {
			v = 0.8 + 0.2*(1.0-1.0/(1.0+(v-0.8)*5.0))
		} else if v < -0.8 {
			v = -0.8 - 0.2*(1.0-1.0/(1.0+(-v-0.8)*5.0))
		}
		v = max(-1, min(1, v))

		s := uint16(int16(v * 32767))
		idx := i * parameter.AudioBytesPerFrame
		binary.LittleEndian.PutUint16(out[idx:], s)   // L
		binary.LittleEndian.PutUint16(out[idx+2:], s) // R
	}
}
