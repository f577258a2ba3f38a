package assistant

import (
	"context"
	"sync/atomic"

	"github.com/mlisica/voiceloop/core/audio"
)

// AudioInput is a microphone capture backend feeding the recognition
// engine.
type AudioInput interface {
	Stream(ctx context.Context, onAudio func(audio []byte)) error
	StopCapture() error
	EncodingInfo() audio.EncodingInfo
	Close()
}

type audioInput struct {
	// base stores the configured input client used for streaming audio.
	base AudioInput

	// isCapturing reports whether the input client is currently capturing audio.
	isCapturing atomic.Bool

	// onInputAudio is called when input audio is received
	onInputAudio func(audio []byte)
}

func newAudioInput(client AudioInput, onInputAudio func(audio []byte)) *audioInput {
	if onInputAudio == nil {
		onInputAudio = func(audio []byte) {}
	}

	input := audioInput{onInputAudio: onInputAudio}
	input.Set(client)
	return &input
}

func (a *audioInput) Set(client AudioInput) {
	if a == nil {
		return
	}

	a.base = client
	a.isCapturing.Store(false)
}

func (a *audioInput) IsConfigured() bool { return a != nil && a.base != nil }
func (a *audioInput) IsCapturing() bool  { return a != nil && a.isCapturing.Load() }

func (a *audioInput) Capture(ctx context.Context) error {
	if !a.IsConfigured() {
		return nil
	}

	if !a.isCapturing.CompareAndSwap(false, true) {
		return nil
	}

	go func() {
		if err := a.base.Stream(ctx, a.onInputAudio); err != nil {
			a.isCapturing.Store(false)
			logger.Warn("Failed to start audio input", "error", err)
		}
	}()
	return nil
}

func (a *audioInput) StopCapture() error {
	if !a.IsConfigured() {
		return nil
	}

	if !a.isCapturing.CompareAndSwap(true, false) {
		return nil
	}

	return a.base.StopCapture()
}

func (a *audioInput) EncodingInfo() audio.EncodingInfo {
	if a == nil || a.base == nil {
		return audio.GetDefaultEncodingInfo()
	}

	return a.base.EncodingInfo()
}

func (a *audioInput) Close() {
	if a.IsConfigured() {
		_ = a.StopCapture()
		a.base.Close()
	}
	a.isCapturing.Store(false)
}
