package assistant

import "context"

// Player turns a synthesized audio payload into audible output. Play
// blocks until playback finishes or ctx is cancelled, and releases any
// resource it acquired on every exit path.
type Player interface {
	Play(ctx context.Context, wav []byte) error
}

type speechPlayer struct {
	// base stores whichever playback implementation was configured.
	base Player

	onPlaybackStarted func()
	onPlaybackEnded   func()
}

func newSpeechPlayer() *speechPlayer {
	return &speechPlayer{
		onPlaybackStarted: func() {},
		onPlaybackEnded:   func() {},
	}
}

func (p *speechPlayer) set(client Player) {
	if p != nil {
		p.base = client
	}
}

func (p *speechPlayer) SetCallbacks(onPlaybackStarted, onPlaybackEnded func()) {
	if p == nil {
		return
	}

	if onPlaybackStarted != nil {
		p.onPlaybackStarted = onPlaybackStarted
	}
	if onPlaybackEnded != nil {
		p.onPlaybackEnded = onPlaybackEnded
	}
}

func (p *speechPlayer) isConfigured() bool {
	return p != nil && p.base != nil
}

// Play forwards the payload to the configured playback engine. Without an
// engine the payload is dropped and the turn carries on, the textual
// answer stays available.
func (p *speechPlayer) Play(ctx context.Context, wav []byte) error {
	if !p.isConfigured() {
		return nil
	}

	p.onPlaybackStarted()
	defer p.onPlaybackEnded()

	return p.base.Play(ctx, wav)
}
