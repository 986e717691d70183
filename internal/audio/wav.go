package audio

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DefaultSampleRate is used when the mime type carries no rate parameter.
const DefaultSampleRate = 22050

// MaxSampleRate keeps the 32-bit byte-rate header field from overflowing.
const MaxSampleRate = 1<<31/2 - 1

const wavHeaderSize = 44

var (
	ErrInvalidPCM = errors.New("invalid pcm: odd byte length")
	ErrInvalidWAV = errors.New("invalid wav")

	ErrInvalidSampleRate = errors.New("invalid sample rate")
)

var rateParam = regexp.MustCompile(`rate=(\d+)`)

// SampleRateFromMIME extracts N from a "rate=N" parameter, e.g.
// "audio/L16;codec=pcm;rate=24000". Missing or unparsable rates fall back to
// DefaultSampleRate, as do rates above MaxSampleRate.
func SampleRateFromMIME(mime string) int {
	m := rateParam.FindStringSubmatch(mime)
	if m == nil {
		return DefaultSampleRate
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 || n > MaxSampleRate {
		return DefaultSampleRate
	}
	return n
}

// PCM16FromBytes reads little-endian signed 16-bit samples.
func PCM16FromBytes(b []byte) ([]int16, error) {
	if len(b)%2 != 0 {
		return nil, ErrInvalidPCM
	}
	out := make([]int16, len(b)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(b[2*i:]))
	}
	return out, nil
}

// EncodeWAV wraps samples in a canonical 44-byte mono 16-bit PCM header.
func EncodeWAV(samples []int16, sampleRate int) []byte {
	dataLen := uint32(len(samples) * 2)
	buf := make([]byte, wavHeaderSize+int(dataLen))

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], 36+dataLen)
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(buf[22:24], 1) // mono
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(sampleRate*2))
	binary.LittleEndian.PutUint16(buf[32:34], 2)
	binary.LittleEndian.PutUint16(buf[34:36], 16)
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], dataLen)

	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[wavHeaderSize+2*i:], uint16(s))
	}
	return buf
}

// DecodeWAV is the inverse of EncodeWAV. Only the canonical layout it writes
// is accepted.
func DecodeWAV(b []byte) ([]int16, int, error) {
	if len(b) < wavHeaderSize ||
		!bytes.Equal(b[0:4], []byte("RIFF")) ||
		!bytes.Equal(b[8:12], []byte("WAVE")) ||
		!bytes.Equal(b[12:16], []byte("fmt ")) ||
		!bytes.Equal(b[36:40], []byte("data")) {
		return nil, 0, ErrInvalidWAV
	}
	if binary.LittleEndian.Uint16(b[20:22]) != 1 ||
		binary.LittleEndian.Uint16(b[22:24]) != 1 ||
		binary.LittleEndian.Uint16(b[34:36]) != 16 {
		return nil, 0, ErrInvalidWAV
	}
	dataLen := int(binary.LittleEndian.Uint32(b[40:44]))
	if dataLen != len(b)-wavHeaderSize || binary.LittleEndian.Uint32(b[4:8]) != uint32(36+dataLen) {
		return nil, 0, ErrInvalidWAV
	}
	samples, err := PCM16FromBytes(b[wavHeaderSize:])
	if err != nil {
		return nil, 0, ErrInvalidWAV
	}
	return samples, int(binary.LittleEndian.Uint32(b[24:28])), nil
}

// Clip is one synthesized utterance ready to play.
type Clip struct {
	ID         string
	WAV        []byte
	SampleRate int
	Samples    int
}

// NewClip encodes PCM bytes returned by a speech endpoint.
func NewClip(id string, pcm []byte, sampleRate int) (*Clip, error) {
	if sampleRate <= 0 || sampleRate > MaxSampleRate {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	samples, err := PCM16FromBytes(pcm)
	if err != nil {
		return nil, err
	}
	return &Clip{
		ID:         id,
		WAV:        EncodeWAV(samples, sampleRate),
		SampleRate: sampleRate,
		Samples:    len(samples),
	}, nil
}

func (c *Clip) Duration() time.Duration {
	if c == nil || c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(c.Samples) * time.Second / time.Duration(c.SampleRate)
}

func (c *Clip) DataURI() string {
	return "data:audio/wav;base64," + base64.StdEncoding.EncodeToString(c.WAV)
}
