package miniaudio

import (
	"context"
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"
	"github.com/mlisica/voiceloop/core/audio"
)

// playWAV drains a decoded WAV payload through a one-shot playback device.
// It blocks until the whole payload has been handed to the device or the
// context is cancelled.
func playWAV(ctx context.Context, audioContext *malgo.AllocatedContext, wav []byte) error {
	info, samples, err := audio.DecodeWAV(wav)
	if err != nil {
		return fmt.Errorf("failed to decode audio payload: %w", err)
	}

	format := malgo.FormatS16
	if info.Format.ByteSize() == 1 {
		format = malgo.FormatU8
	}
	channels := info.Channels
	if channels == 0 {
		channels = 1
	}
	bytesPerFrame := malgo.SampleSizeInBytes(format) * channels

	config := malgo.DefaultDeviceConfig(malgo.Playback)
	config.SampleRate = uint32(info.SampleRate)
	config.Playback.Format = format
	config.Playback.Channels = uint32(channels)
	config.Alsa.NoMMap = 1
	config.PeriodSizeInFrames = uint32(info.SampleRate / 10) // ~100ms of audio
	config.Periods = 4

	var (
		mu     sync.Mutex
		offset int
	)
	done := make(chan struct{})
	closeDone := sync.OnceFunc(func() { close(done) })

	device, err := malgo.InitDevice(audioContext.Context, config, malgo.DeviceCallbacks{
		Data: func(pOutput, _ []byte, frameCount uint32) {
			n := int(frameCount) * bytesPerFrame

			mu.Lock()
			remaining := len(samples) - offset
			if remaining <= 0 {
				mu.Unlock()
				closeDone()
				return
			}
			if n > remaining {
				n = remaining
			}
			copy(pOutput, samples[offset:offset+n])
			offset += n
			finished := offset >= len(samples)
			mu.Unlock()

			if finished {
				closeDone()
			}
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return fmt.Errorf("failed to start playback device: %w", err)
	}
	defer device.Stop()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
