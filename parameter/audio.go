package parameter

import "time"

// Audio - Output format
const (
	AudioSampleRate    = 44100
	AudioChannels      = 2
	AudioBitDepth      = 16
	AudioBytesPerFrame = AudioChannels * (AudioBitDepth / 8) // 4 bytes
)

// Audio - Mixer timing
const (
	// AudioBufferDuration determines latency and mixer tick rate
	AudioBufferDuration = 50 * time.Millisecond

	// AudioBufferSamples is frames per mixer tick at 44.1kHz
	AudioBufferSamples = (AudioSampleRate * 50) / 1000 // 2205

	// AudioQueueSize is the cue request buffer, requests beyond it are dropped
	AudioQueueSize = 32

	// AudioMaxVoices caps cues mixed at once, the oldest voice is cut
	AudioMaxVoices = 6

	// AudioMasterVolume scales every cue
	AudioMasterVolume = 0.5
)

// Audio - Cue shapes
const (
	CueNoteDuration = 70 * time.Millisecond
	CueAttack       = 5 * time.Millisecond
	CueRelease      = 40 * time.Millisecond

	// CueLongNoteDuration is used for warnings that should stand out
	CueLongNoteDuration = 180 * time.Millisecond
	CueLongRelease      = 120 * time.Millisecond
)
