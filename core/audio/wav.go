package audio

import (
	"encoding/binary"
	"fmt"
)

const (
	waveFormatPCM   = 1
	waveFormatALaw  = 6
	waveFormatMulaw = 7
)

// DecodeWAV splits a RIFF/WAVE payload into its encoding info and raw
// sample data. Only uncompressed PCM, a-law and mu-law payloads are
// supported, which covers what the speech synthesis backends produce.
func DecodeWAV(data []byte) (EncodingInfo, []byte, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return EncodingInfo{}, nil, fmt.Errorf("not a RIFF/WAVE payload")
	}

	var info EncodingInfo
	var samples []byte
	haveFormat := false

	offset := 12
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := data[offset+8:]
		if chunkSize > len(body) {
			// Streams occasionally report a data chunk size larger than
			// what was actually delivered, take what is there.
			chunkSize = len(body)
		}

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return EncodingInfo{}, nil, fmt.Errorf("malformed fmt chunk")
			}
			format := binary.LittleEndian.Uint16(body[0:2])
			channels := int(binary.LittleEndian.Uint16(body[2:4]))
			sampleRate := int(binary.LittleEndian.Uint32(body[4:8]))
			bitsPerSample := binary.LittleEndian.Uint16(body[14:16])

			switch format {
			case waveFormatPCM:
				if bitsPerSample != 16 {
					return EncodingInfo{}, nil, fmt.Errorf("unsupported pcm bit depth: %d", bitsPerSample)
				}
				info.Format = EncodingLinear16
			case waveFormatALaw:
				info.Format = EncodingALaw
			case waveFormatMulaw:
				info.Format = EncodingMulaw
			default:
				return EncodingInfo{}, nil, fmt.Errorf("unsupported wave format: %d", format)
			}
			info.SampleRate = sampleRate
			info.Channels = channels
			haveFormat = true

		case "data":
			samples = body[:chunkSize]
		}

		offset += 8 + chunkSize
		if chunkSize%2 == 1 {
			offset++
		}
	}

	if !haveFormat {
		return EncodingInfo{}, nil, fmt.Errorf("missing fmt chunk")
	}
	if len(samples) == 0 {
		return EncodingInfo{}, nil, fmt.Errorf("missing audio data")
	}

	return info, samples, nil
}
