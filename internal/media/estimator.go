package media

import (
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/voxscribe/transcription-backend/internal/platform/logger"
)

// Metadata is the estimator's best answer for one stored file. The estimator
// is total: it always returns something usable, never an error.
type Metadata struct {
	IsAudio    bool
	Duration   float64
	SampleRate int
	Channels   int
}

var audioExtensions = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".m4a":  {},
	".aac":  {},
	".ogg":  {},
	".flac": {},
	".wma":  {},
	".aiff": {},
}

// IsAudioFilename classifies by extension only. Unknown extensions are never
// treated as audio regardless of content.
func IsAudioFilename(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	_, ok := audioExtensions[ext]
	return ok
}

// SniffMimeType inspects uploaded bytes and returns the detected content type.
func SniffMimeType(data []byte) string {
	return mimetype.Detect(data).String()
}

type Estimator struct {
	log *logger.Logger
}

func NewEstimator(baseLog *logger.Logger) *Estimator {
	return &Estimator{log: baseLog.With("component", "MetadataEstimator")}
}

// Estimate runs the ranked chain: precise header probe, then a size-based
// heuristic, then a fixed default. Non-audio names short-circuit to zeroes.
// A file that classifies as audio always comes back with is_audio=true and a
// non-zero duration, even when every probe fails.
func (e *Estimator) Estimate(path, declaredName string) Metadata {
	if !IsAudioFilename(declaredName) {
		return Metadata{IsAudio: false}
	}

	ext := strings.ToLower(filepath.Ext(declaredName))

	if md, err := probeHeader(path, ext); err == nil {
		return md
	} else if !errors.Is(err, errUnsupportedProbe) {
		e.log.Debug("Header probe failed, falling back to size heuristic", "file", declaredName, "error", err)
	}

	if md, err := estimateFromSize(path, ext); err == nil {
		return md
	} else {
		e.log.Warn("Size estimation failed, using fixed default", "file", declaredName, "error", err)
	}

	return Metadata{IsAudio: true, Duration: 60, SampleRate: 44100, Channels: 2}
}

var errUnsupportedProbe = errors.New("no precise probe for format")

func probeHeader(path, ext string) (Metadata, error) {
	switch ext {
	case ".wav":
		return probeWAV(path)
	case ".mp3":
		return probeMP3(path)
	default:
		return Metadata{}, errUnsupportedProbe
	}
}

// probeWAV walks the RIFF chunk list for "fmt " and "data".
func probeWAV(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, err
	}
	defer f.Close()

	header := make([]byte, 12)
	if _, err := io.ReadFull(f, header); err != nil {
		return Metadata{}, err
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		return Metadata{}, errors.New("not a RIFF/WAVE file")
	}

	var (
		sampleRate int
		channels   int
		byteRate   uint32
		dataSize   uint32
		haveFmt    bool
		haveData   bool
	)
	chunkHeader := make([]byte, 8)
	for !(haveFmt && haveData) {
		if _, err := io.ReadFull(f, chunkHeader); err != nil {
			return Metadata{}, err
		}
		chunkID := string(chunkHeader[0:4])
		chunkSize := binary.LittleEndian.Uint32(chunkHeader[4:8])

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return Metadata{}, errors.New("malformed fmt chunk")
			}
			fmtChunk := make([]byte, chunkSize)
			if _, err := io.ReadFull(f, fmtChunk); err != nil {
				return Metadata{}, err
			}
			channels = int(binary.LittleEndian.Uint16(fmtChunk[2:4]))
			sampleRate = int(binary.LittleEndian.Uint32(fmtChunk[4:8]))
			byteRate = binary.LittleEndian.Uint32(fmtChunk[8:12])
			haveFmt = true
		case "data":
			dataSize = chunkSize
			haveData = true
			if !haveFmt {
				// fmt should precede data; skip past and keep scanning.
				if _, err := f.Seek(int64(chunkSize), io.SeekCurrent); err != nil {
					return Metadata{}, err
				}
			}
		default:
			if _, err := f.Seek(int64(chunkSize), io.SeekCurrent); err != nil {
				return Metadata{}, err
			}
		}
	}

	if byteRate == 0 || sampleRate == 0 || channels == 0 {
		return Metadata{}, errors.New("wav header missing rates")
	}
	return Metadata{
		IsAudio:    true,
		Duration:   float64(dataSize) / float64(byteRate),
		SampleRate: sampleRate,
		Channels:   channels,
	}, nil
}

var mp3Bitrates = [16]int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0} // kbps, MPEG1 Layer III
var mp3SampleRates = [4]int{44100, 48000, 32000, 0}

// probeMP3 reads the first frame header past any ID3v2 tag and derives a
// CBR duration estimate from the frame bitrate and the file size.
func probeMP3(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Metadata{}, err
	}
	audioBytes := info.Size()

	head := make([]byte, 10)
	if _, err := io.ReadFull(f, head); err != nil {
		return Metadata{}, err
	}

	offset := int64(0)
	if string(head[0:3]) == "ID3" {
		// Tag size is a 28-bit syncsafe integer.
		tagSize := int64(head[6]&0x7f)<<21 | int64(head[7]&0x7f)<<14 | int64(head[8]&0x7f)<<7 | int64(head[9]&0x7f)
		offset = 10 + tagSize
		audioBytes -= offset
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return Metadata{}, err
	}

	frame := make([]byte, 4)
	if _, err := io.ReadFull(f, frame); err != nil {
		return Metadata{}, err
	}
	if frame[0] != 0xff || frame[1]&0xe0 != 0xe0 {
		return Metadata{}, errors.New("no mp3 frame sync")
	}
	version := (frame[1] >> 3) & 0x03
	layer := (frame[1] >> 1) & 0x03
	if version != 0x03 || layer != 0x01 {
		// Only MPEG1 Layer III is probed precisely.
		return Metadata{}, errors.New("unsupported mpeg version/layer")
	}

	bitrateKbps := mp3Bitrates[frame[2]>>4]
	sampleRate := mp3SampleRates[(frame[2]>>2)&0x03]
	if bitrateKbps == 0 || sampleRate == 0 {
		return Metadata{}, errors.New("free/invalid mp3 bitrate")
	}
	channels := 2
	if (frame[3]>>6)&0x03 == 0x03 { // mono channel mode
		channels = 1
	}

	return Metadata{
		IsAudio:    true,
		Duration:   float64(audioBytes) * 8 / float64(bitrateKbps*1000),
		SampleRate: sampleRate,
		Channels:   channels,
	}, nil
}

// estimateFromSize falls back to format-specific bytes-per-minute rates.
func estimateFromSize(path, ext string) (Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Metadata{}, err
	}

	var bytesPerMinute float64
	switch ext {
	case ".wav":
		bytesPerMinute = 10 * 1024 * 1024
	default:
		// mp3/m4a and everything else: ~1 MiB per minute at 128kbps.
		bytesPerMinute = 1024 * 1024
	}

	duration := float64(info.Size()) / bytesPerMinute * 60
	if duration < 1 {
		duration = 1
	}
	return Metadata{
		IsAudio:    true,
		Duration:   duration,
		SampleRate: 44100,
		Channels:   2,
	}, nil
}
