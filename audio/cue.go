package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/ledgewalker/parameter"
	"github.com/lixenwraith/ledgewalker/telemetry"
)

// Cue is an audible marker for a class of navigation events
type Cue uint8

const (
	CueNone Cue = iota
	CuePick
	CueArrive
	CueReroute
	CueRecover
	CueFallback
	CueDrift
	CueRespawn
	CueManual
	cueCount
)

var cueNames = [...]string{"none", "pick", "arrive", "reroute", "recover", "fallback", "drift", "respawn", "manual"}

func (c Cue) String() string {
	if int(c) < len(cueNames) {
		return cueNames[c]
	}
	return "unknown"
}

// CueFor maps a telemetry kind to its cue, CueNone for kinds too frequent to voice
func CueFor(k telemetry.Kind) Cue {
	switch k {
	case telemetry.KindTargetPick:
		return CuePick
	case telemetry.KindTargetReached:
		return CueArrive
	case telemetry.KindReroute:
		return CueReroute
	case telemetry.KindRecovery, telemetry.KindStagnation:
		return CueRecover
	case telemetry.KindLoopFallback:
		return CueFallback
	case telemetry.KindWorldDrift:
		return CueDrift
	case telemetry.KindRespawn:
		return CueRespawn
	case telemetry.KindManualTarget:
		return CueManual
	}
	return CueNone
}

type cueShape struct {
	wave    WaveType
	notes   []float64 // Hz, played in sequence
	note    time.Duration
	release time.Duration
	gain    float64
}

var cueShapes = [cueCount]cueShape{
	CuePick:     {wave: WaveSine, notes: []float64{660}, note: parameter.CueNoteDuration, release: parameter.CueRelease, gain: 0.5},
	CueArrive:   {wave: WaveSine, notes: []float64{880, 1320}, note: parameter.CueNoteDuration, release: parameter.CueRelease, gain: 0.6},
	CueReroute:  {wave: WaveSquare, notes: []float64{520, 440}, note: parameter.CueNoteDuration, release: parameter.CueRelease, gain: 0.3},
	CueRecover:  {wave: WaveSaw, notes: []float64{220}, note: parameter.CueNoteDuration, release: parameter.CueRelease, gain: 0.4},
	CueFallback: {wave: WaveSaw, notes: []float64{180, 120}, note: parameter.CueLongNoteDuration, release: parameter.CueLongRelease, gain: 0.5},
	CueDrift:    {wave: WaveNoise, notes: []float64{1}, note: parameter.CueLongNoteDuration, release: parameter.CueLongRelease, gain: 0.3},
	CueRespawn:  {wave: WaveSquare, notes: []float64{330, 262, 196}, note: parameter.CueNoteDuration, release: parameter.CueRelease, gain: 0.4},
	CueManual:   {wave: WaveSine, notes: []float64{988}, note: parameter.CueNoteDuration, release: parameter.CueRelease, gain: 0.5},
}

// Synthesize builds the streamer for a cue, nil for CueNone
func Synthesize(c Cue, rate beep.SampleRate) beep.Streamer {
	if c == CueNone || c >= cueCount {
		return nil
	}
	shape := cueShapes[c]
	notes := make([]beep.Streamer, 0, len(shape.notes))
	for _, f := range shape.notes {
		osc := NewOscillator(f, shape.note, shape.wave, rate)
		notes = append(notes, NewEnvelope(osc, shape.note, parameter.CueAttack, shape.release, rate))
	}
	return newVolume(beep.Seq(notes...), shape.gain)
}

// cueBank holds pre-rendered cue buffers at the output rate
type cueBank [cueCount]floatBuffer

func newCueBank() *cueBank {
	var b cueBank
	for c := CueNone + 1; c < cueCount; c++ {
		b[c] = render(Synthesize(c, beep.SampleRate(parameter.AudioSampleRate)))
	}
	return &b
}

func (b *cueBank) get(c Cue) floatBuffer {
	if c >= cueCount {
		return nil
	}
	return b[c]
}
