package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/ledgewalker/parameter"
	"github.com/lixenwraith/ledgewalker/telemetry"
)

func TestCueFor(t *testing.T) {
	cases := map[telemetry.Kind]Cue{
		telemetry.KindTargetPick:      CuePick,
		telemetry.KindTargetReached:   CueArrive,
		telemetry.KindReroute:         CueReroute,
		telemetry.KindStagnation:      CueRecover,
		telemetry.KindLoopFallback:    CueFallback,
		telemetry.KindWorldDrift:      CueDrift,
		telemetry.KindRespawn:         CueRespawn,
		telemetry.KindGraphRebuild:    CueNone,
		telemetry.KindEdgeInvalidated: CueNone,
	}
	for k, want := range cases {
		assert.Equal(t, want, CueFor(k), k.String())
	}
}

func TestSynthesize(t *testing.T) {
	rate := beep.SampleRate(parameter.AudioSampleRate)
	assert.Nil(t, Synthesize(CueNone, rate))

	buf := render(Synthesize(CueArrive, rate))
	require.Len(t, buf, 2*rate.N(parameter.CueNoteDuration))
	assert.Zero(t, buf[0], "attack starts from silence")

	peak := 0.0
	for _, v := range buf {
		peak = max(peak, math.Abs(v))
	}
	assert.Positive(t, peak)
	assert.LessOrEqual(t, peak, cueShapes[CueArrive].gain+1e-9)
}

func TestCueBankRendersEveryCue(t *testing.T) {
	bank := newCueBank()
	assert.Empty(t, bank.get(CueNone))
	for c := CueNone + 1; c < cueCount; c++ {
		assert.NotEmpty(t, bank.get(c), c.String())
	}
	assert.Nil(t, bank.get(cueCount+3))
}

func TestFloatToBytes(t *testing.T) {
	in := []float64{0, 0.5, 2, -2}
	out := make([]byte, len(in)*parameter.AudioBytesPerFrame)
	floatToBytes(in, out)

	sample := func(i int) (int16, int16) {
		l := int16(binary.LittleEndian.Uint16(out[i*4:]))
		r := int16(binary.LittleEndian.Uint16(out[i*4+2:]))
		return l, r
	}
	l, r := sample(0)
	assert.Zero(t, l)
	assert.Equal(t, l, r)

	l, _ = sample(1)
	assert.Equal(t, int16(16383), l)

	hi, _ := sample(2)
	lo, _ := sample(3)
	assert.Greater(t, hi, int16(26213), "soft limited, not folded")
	assert.Equal(t, -hi, lo)
}

func TestMixerVoices(t *testing.T) {
	m := NewMixer(&bytes.Buffer{}, newCueBank(), 1)
	for range parameter.AudioMaxVoices + 3 {
		m.start(CuePick)
	}
	assert.Len(t, m.active, parameter.AudioMaxVoices)
	played, _ := m.Stats()
	assert.Equal(t, uint64(parameter.AudioMaxVoices+3), played)

	buf := make([]float64, parameter.AudioBufferSamples)
	for len(m.active) > 0 {
		clear(buf)
		m.active = m.mix(buf)
	}
	assert.Empty(t, m.active)
}

func TestMixerQueueDrops(t *testing.T) {
	m := NewMixer(&bytes.Buffer{}, newCueBank(), 1)
	assert.False(t, m.Play(CueNone))
	for range parameter.AudioQueueSize {
		require.True(t, m.Play(CuePick))
	}
	assert.False(t, m.Play(CuePick))
	_, dropped := m.Stats()
	assert.Equal(t, uint64(1), dropped)
}

// pipe is a concurrency-safe WriteCloser
type pipe struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	closed bool
}

func (p *pipe) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0, errors.New("closed")
	}
	return p.buf.Write(b)
}

func (p *pipe) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *pipe) nonZero() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, b := range p.buf.Bytes() {
		if b != 0 {
			return true
		}
	}
	return false
}

func TestCueSinkWritesFrames(t *testing.T) {
	out := &pipe{}
	s := NewCueSink()
	require.NoError(t, s.StartWriter(out))
	assert.Error(t, s.StartWriter(out), "second start is rejected")
	assert.True(t, s.Enabled())

	s.Emit(telemetry.Event{Kind: telemetry.KindGraphRebuild})
	s.Emit(telemetry.Event{Kind: telemetry.KindTargetReached})

	require.Eventually(t, func() bool {
		played, _ := s.Stats()
		return played == 1 && out.nonZero()
	}, 2*time.Second, 10*time.Millisecond)

	assert.False(t, s.ToggleMute())
	s.Emit(telemetry.Event{Kind: telemetry.KindTargetPick})
	played, _ := s.Stats()
	assert.Equal(t, uint64(1), played)

	s.Stop()
	assert.False(t, s.Enabled())
	s.Stop()
}

func TestDetectBackend(t *testing.T) {
	only := func(name string) func(string) (string, error) {
		return func(n string) (string, error) {
			if n == name {
				return "/usr/bin/" + n, nil
			}
			return "", errors.New("not found")
		}
	}

	b, err := detect(only("aplay"))
	require.NoError(t, err)
	assert.Equal(t, BackendALSA, b.Type)
	assert.Equal(t, "/usr/bin/aplay", b.Path)
	assert.Contains(t, b.Args, "44100")

	b, err = detect(only("pacat"))
	require.NoError(t, err)
	assert.Equal(t, BackendPulse, b.Type)
	assert.Empty(t, candidates[0].Path, "candidates are not mutated")

	if runtime.GOOS != "freebsd" {
		_, err = detect(only("none"))
		assert.ErrorIs(t, err, ErrNoAudioBackend)
	}
}
