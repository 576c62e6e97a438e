package media

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/voxscribe/transcription-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// buildWAV produces a minimal PCM RIFF file with the given parameters.
func buildWAV(sampleRate, channels int, seconds float64) []byte {
	byteRate := sampleRate * channels * 2
	dataSize := int(float64(byteRate) * seconds)

	buf := make([]byte, 0, 44+dataSize)
	buf = append(buf, []byte("RIFF")...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(36+dataSize))
	buf = append(buf, []byte("WAVE")...)

	buf = append(buf, []byte("fmt ")...)
	buf = binary.LittleEndian.AppendUint32(buf, 16)
	buf = binary.LittleEndian.AppendUint16(buf, 1) // PCM
	buf = binary.LittleEndian.AppendUint16(buf, uint16(channels))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(sampleRate))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(byteRate))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(channels*2))
	buf = binary.LittleEndian.AppendUint16(buf, 16)

	buf = append(buf, []byte("data")...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(dataSize))
	buf = append(buf, make([]byte, dataSize)...)
	return buf
}

func TestIsAudioFilename(t *testing.T) {
	audio := []string{"a.mp3", "b.WAV", "c.m4a", "d.aac", "e.ogg", "f.flac", "g.wma", "h.aiff"}
	for _, name := range audio {
		if !IsAudioFilename(name) {
			t.Errorf("IsAudioFilename(%q) = false, want true", name)
		}
	}
	notAudio := []string{"a.txt", "b.pdf", "noext", "c.mp4", "d.mp3.bak"}
	for _, name := range notAudio {
		if IsAudioFilename(name) {
			t.Errorf("IsAudioFilename(%q) = true, want false", name)
		}
	}
}

func TestEstimateWAVHeader(t *testing.T) {
	e := NewEstimator(testLogger(t))
	path := writeFile(t, "tone.wav", buildWAV(22050, 1, 2.5))

	md := e.Estimate(path, "tone.wav")
	if !md.IsAudio {
		t.Fatal("wav not classified as audio")
	}
	if math.Abs(md.Duration-2.5) > 0.01 {
		t.Errorf("duration = %v, want ~2.5", md.Duration)
	}
	if md.SampleRate != 22050 || md.Channels != 1 {
		t.Errorf("got rate=%d channels=%d, want 22050/1", md.SampleRate, md.Channels)
	}
}

func TestEstimateMP3Frame(t *testing.T) {
	e := NewEstimator(testLogger(t))

	// MPEG1 Layer III, 128kbps, 44100Hz, stereo. 32000 bytes at 128kbps
	// is exactly 2 seconds.
	frame := []byte{0xff, 0xfb, 0x90, 0x00}
	data := append(frame, make([]byte, 32000-4)...)
	path := writeFile(t, "speech.mp3", data)

	md := e.Estimate(path, "speech.mp3")
	if !md.IsAudio {
		t.Fatal("mp3 not classified as audio")
	}
	if math.Abs(md.Duration-2.0) > 0.01 {
		t.Errorf("duration = %v, want ~2.0", md.Duration)
	}
	if md.SampleRate != 44100 || md.Channels != 2 {
		t.Errorf("got rate=%d channels=%d, want 44100/2", md.SampleRate, md.Channels)
	}
}

func TestEstimateSizeFallback(t *testing.T) {
	e := NewEstimator(testLogger(t))

	// m4a has no precise probe: 2 MiB at 1 MiB/min is 120 seconds.
	path := writeFile(t, "voice.m4a", make([]byte, 2*1024*1024))
	md := e.Estimate(path, "voice.m4a")
	if !md.IsAudio {
		t.Fatal("m4a not classified as audio")
	}
	if math.Abs(md.Duration-120) > 0.01 {
		t.Errorf("duration = %v, want 120", md.Duration)
	}

	// Corrupt wav falls through the header probe to the wav rate,
	// 10 MiB/min: 5 MiB is 30 seconds.
	path = writeFile(t, "broken.wav", make([]byte, 5*1024*1024))
	md = e.Estimate(path, "broken.wav")
	if math.Abs(md.Duration-30) > 0.01 {
		t.Errorf("duration = %v, want 30", md.Duration)
	}
}

func TestEstimateMinimumOneSecond(t *testing.T) {
	e := NewEstimator(testLogger(t))
	path := writeFile(t, "tiny.ogg", []byte{0x01})
	md := e.Estimate(path, "tiny.ogg")
	if md.Duration < 1 {
		t.Errorf("duration = %v, want >= 1", md.Duration)
	}
}

func TestEstimateFixedDefault(t *testing.T) {
	e := NewEstimator(testLogger(t))
	// Missing file: every probe fails, the fixed default applies.
	md := e.Estimate(filepath.Join(t.TempDir(), "missing.mp3"), "missing.mp3")
	if !md.IsAudio {
		t.Fatal("audio extension must stay audio even when probes fail")
	}
	if md.Duration != 60 || md.SampleRate != 44100 || md.Channels != 2 {
		t.Errorf("got %+v, want 60s/44100/2 default", md)
	}
}

func TestEstimateNonAudio(t *testing.T) {
	e := NewEstimator(testLogger(t))
	path := writeFile(t, "notes.txt", []byte("hello"))
	md := e.Estimate(path, "notes.txt")
	if md.IsAudio {
		t.Fatal("txt classified as audio")
	}
	if md.Duration != 0 {
		t.Errorf("non-audio duration = %v, want 0", md.Duration)
	}
}

func TestSniffMimeType(t *testing.T) {
	if got := SniffMimeType([]byte("plain text content")); got == "" {
		t.Error("empty mime for text")
	}
	wav := buildWAV(44100, 2, 0.1)
	if got := SniffMimeType(wav); got != "audio/wav" {
		t.Errorf("wav mime = %q, want audio/wav", got)
	}
}
