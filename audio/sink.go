package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/ledgewalker/parameter"
	"github.com/lixenwraith/ledgewalker/telemetry"
)

// CueSink voices telemetry events through a system audio player or the beep speaker
// Emit never blocks; with no backend the sink runs silent
type CueSink struct {
	bank  *cueBank
	mixer *Mixer

	// useSpeaker is set when playing through beep's speaker instead of the mixer
	useSpeaker bool

	backend *BackendConfig
	cmd     *exec.Cmd
	pipe    io.WriteCloser

	running atomic.Bool
	muted   atomic.Bool
	silent  atomic.Bool

	mu sync.Mutex
	wg sync.WaitGroup
}

func NewCueSink() *CueSink {
	return &CueSink{bank: newCueBank()}
}

// Start launches the first available backend; a missing backend leaves the sink silent, not failed
func (s *CueSink) Start() error {
	backend, err := DetectBackend()
	if errors.Is(err, ErrNoAudioBackend) {
		s.silent.Store(true)
		s.running.Store(true)
		return nil
	}
	if err != nil {
		return err
	}

	var out io.WriteCloser
	if backend.Type == BackendOSS {
		f, err := os.OpenFile(backend.Path, os.O_WRONLY, 0)
		if err != nil {
			s.silent.Store(true)
			s.running.Store(true)
			return nil
		}
		out = f
	} else {
		cmd := exec.Command(backend.Path, backend.Args...)
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return err
		}
		if err := cmd.Start(); err != nil {
			stdin.Close()
			s.silent.Store(true)
			s.running.Store(true)
			return nil
		}
		s.cmd = cmd
		out = stdin

		s.wg.Add(1)
		go s.monitorProcess()
	}

	s.backend = backend
	return s.StartWriter(out)
}

// StartWriter mixes into out instead of a detected player; out is closed on Stop
func (s *CueSink) StartWriter(out io.WriteCloser) error {
	if !s.running.CompareAndSwap(false, true) {
		return errors.New("cue sink already running")
	}
	s.mu.Lock()
	s.pipe = out
	s.mixer = NewMixer(out, s.bank, parameter.AudioMasterVolume)
	s.mu.Unlock()
	s.mixer.Start()

	s.wg.Add(1)
	go s.monitorMixer(s.mixer)
	return nil
}

// StartSpeaker plays cues through the beep speaker device
func (s *CueSink) StartSpeaker() error {
	if !s.running.CompareAndSwap(false, true) {
		return errors.New("cue sink already running")
	}
	sr := beep.SampleRate(parameter.AudioSampleRate)
	if err := speaker.Init(sr, sr.N(parameter.AudioBufferDuration*2)); err != nil {
		s.running.Store(false)
		return fmt.Errorf("init speaker: %w", err)
	}
	s.useSpeaker = true
	return nil
}

func (s *CueSink) monitorProcess() {
	defer s.wg.Done()
	if err := s.cmd.Wait(); err != nil && s.running.Load() {
		s.silent.Store(true)
	}
}

func (s *CueSink) monitorMixer(m *Mixer) {
	defer s.wg.Done()
	select {
	case <-m.Errors():
		s.silent.Store(true)
	case <-m.done:
	}
}

// Emit plays the cue mapped to the event kind
func (s *CueSink) Emit(e telemetry.Event) {
	if !s.Enabled() {
		return
	}
	c := CueFor(e.Kind)
	if c == CueNone {
		return
	}
	if s.useSpeaker {
		speaker.Play(newVolume(Synthesize(c, beep.SampleRate(parameter.AudioSampleRate)), parameter.AudioMasterVolume))
		return
	}
	s.mu.Lock()
	m := s.mixer
	s.mu.Unlock()
	if m != nil {
		m.Play(c)
	}
}

// Stop halts mixing and releases the backend
func (s *CueSink) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	s.mu.Lock()
	m, pipe := s.mixer, s.pipe
	s.mu.Unlock()

	if s.useSpeaker {
		speaker.Close()
	}
	if m != nil {
		m.Stop()
	}
	if pipe != nil {
		pipe.Close()
	}
	if s.cmd != nil && s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
	s.wg.Wait()
}

// ToggleMute flips mute and returns true when sound is now on
func (s *CueSink) ToggleMute() bool {
	muted := !s.muted.Load()
	s.muted.Store(muted)
	return !muted
}

func (s *CueSink) Muted() bool  { return s.muted.Load() }
func (s *CueSink) Silent() bool { return s.silent.Load() }

// Enabled reports running, unmuted and backed by an output
func (s *CueSink) Enabled() bool {
	return s.running.Load() && !s.muted.Load() && !s.silent.Load()
}

// Backend returns the detected player name, empty when none
func (s *CueSink) Backend() string {
	if s.backend == nil {
		return ""
	}
	return s.backend.Name
}

// Stats returns played and dropped cue counts
func (s *CueSink) Stats() (played, dropped uint64) {
	s.mu.Lock()
	m := s.mixer
	s.mu.Unlock()
	if m == nil {
		return 0, 0
	}
	return m.Stats()
}
