// @focus: #sys { audio }
package audio

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strconv"

	"github.com/lixenwraith/ledgewalker/parameter"
)

// BackendType identifies the audio backend
type BackendType int

const (
	BackendPulse BackendType = iota
	BackendPipeWire
	BackendALSA
	BackendSoX
	BackendFFplay
	BackendOSS
)

// BackendConfig describes a CLI audio backend fed raw s16le stereo on stdin
type BackendConfig struct {
	Type BackendType
	Name string
	Path string
	Args []string
}

var (
	ErrNoAudioBackend = errors.New("no compatible audio backend found")
	ErrPipeClosed     = errors.New("audio pipe closed")
)

var rate = strconv.Itoa(parameter.AudioSampleRate)

// candidates in priority order: pacat > pw-cat > aplay > play (sox) > ffplay
var candidates = []BackendConfig{
	{Type: BackendPulse, Name: "pacat", Args: []string{
		"--raw", "--format=s16le", "--rate=" + rate, "--channels=2", "--latency-msec=50", "--playback",
	}},
	{Type: BackendPipeWire, Name: "pw-cat", Args: []string{
		"--playback", "--format=s16", "--rate=" + rate, "--channels=2", "--latency=50ms", "-",
	}},
	{Type: BackendALSA, Name: "aplay", Args: []string{
		"-t", "raw", "-f", "S16_LE", "-r", rate, "-c", "2", "-q",
	}},
	{Type: BackendSoX, Name: "play", Args: []string{
		"-t", "raw", "-e", "signed", "-b", "16", "-c", "2", "-r", rate, "-", "-d", "-q",
	}},
	{Type: BackendFFplay, Name: "ffplay", Args: []string{
		"-nodisp", "-autoexit", "-f", "s16le", "-ac", "2", "-ar", rate,
		"-probesize", "32", "-analyzeduration", "0", "-i", "pipe:0", "-loglevel", "quiet",
	}},
}

// DetectBackend returns the first player found on PATH, or the FreeBSD OSS device
func DetectBackend() (*BackendConfig, error) {
	return detect(exec.LookPath)
}

func detect(lookPath func(string) (string, error)) (*BackendConfig, error) {
	for _, c := range candidates {
		if path, err := lookPath(c.Name); err == nil {
			b := c
			b.Path = path
			return &b, nil
		}
	}

	if runtime.GOOS == "freebsd" {
		if _, err := os.Stat("/dev/dsp"); err == nil {
			return &BackendConfig{Type: BackendOSS, Name: "oss", Path: "/dev/dsp"}, nil
		}
	}
	return nil, ErrNoAudioBackend
}
