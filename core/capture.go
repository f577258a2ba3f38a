package assistant

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mlisica/voiceloop/core/events"
	"github.com/mlisica/voiceloop/core/notify"
	"github.com/mlisica/voiceloop/core/speechtotext"
)

type CaptureOption func(*CaptureController)

// WithCaptureNotifier wires the notifier engine errors are surfaced
// through. Defaults to the no-op notifier.
func WithCaptureNotifier(notifier notify.Notifier) CaptureOption {
	return func(c *CaptureController) {
		if notifier != nil {
			c.notifier = notifier
		}
	}
}

// WithCaptureAudioInput wires the microphone backend feeding the engine.
func WithCaptureAudioInput(client AudioInput) CaptureOption {
	return func(c *CaptureController) {
		c.input.Set(client)
	}
}

func WithCaptureLanguage(language string) CaptureOption {
	return func(c *CaptureController) {
		c.language = language
	}
}

// WithCaptureEventCallback registers a callback for capture lifecycle and
// transcript events.
func WithCaptureEventCallback(callback func(events.Event)) CaptureOption {
	return func(c *CaptureController) {
		if callback != nil {
			c.emitEvent = eventEmitter(callback)
		}
	}
}

// CaptureController wraps a continuous speech recognition engine behind a
// stable start/stop/reset contract, independent of whether an engine is
// actually available.
type CaptureController struct {
	mu sync.Mutex

	recognizer speechtotext.Recognizer
	input      *audioInput
	notifier   notify.Notifier
	emitEvent  eventEmitter
	language   string

	// supported is probed once at construction and never changes.
	supported bool

	listening  bool
	transcript TranscriptState
	lastErr    *ErrorInfo

	// segmentCommitted signals that a finalized segment landed, so Stop
	// can wait for the engine's finalize response.
	segmentCommitted chan struct{}
}

// finalizeGrace bounds how long Stop waits for the engine to commit
// pending interim text after finalization was requested.
const finalizeGrace = 500 * time.Millisecond

func NewCaptureController(recognizer speechtotext.Recognizer, opts ...CaptureOption) *CaptureController {
	controller := &CaptureController{
		recognizer:       recognizer,
		notifier:         notify.Nop{},
		emitEvent:        noopEventEmitter,
		supported:        probeSupport(recognizer),
		segmentCommitted: make(chan struct{}, 1),
	}
	controller.input = newAudioInput(nil, controller.forwardAudio)

	for _, opt := range opts {
		opt(controller)
	}

	return controller
}

func probeSupport(recognizer speechtotext.Recognizer) bool {
	if recognizer == nil {
		return false
	}
	if probe, ok := recognizer.(interface{ IsSupported() bool }); ok {
		return probe.IsSupported()
	}
	return true
}

// IsSupported reports whether a recognition engine is available. Fixed for
// the controller's lifetime.
func (c *CaptureController) IsSupported() bool { return c != nil && c.supported }

func (c *CaptureController) IsListening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listening
}

// Transcript returns the current transcript buffers.
func (c *CaptureController) Transcript() TranscriptState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transcript
}

// LastError returns a copy of the most recent error, or nil.
func (c *CaptureController) LastError() *ErrorInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lastErr == nil {
		return nil
	}
	errInfo := *c.lastErr
	return &errInfo
}

// Start begins a capture session. Already listening is a no-op. An
// unsupported environment records an error instead of panicking or
// returning one, matching the contract that capture failures never escape
// the controller.
func (c *CaptureController) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.supported {
		c.lastErr = &ErrorInfo{
			Kind:    ErrorSpeechRecognition,
			Message: "speech recognition is not supported in this environment",
		}
		return
	}
	if c.listening {
		return
	}

	c.lastErr = nil

	err := c.recognizer.Transcribe(ctx,
		speechtotext.WithEncodingInfo(c.input.EncodingInfo()),
		speechtotext.WithLanguage(c.language),
		speechtotext.WithInterimTranscriptionCallback(c.applyInterim),
		speechtotext.WithTranscriptionCallback(c.applySegment),
		speechtotext.WithErrorCallback(c.applyEngineError),
	)
	if err != nil {
		message := "failed to start speech recognition"
		if errors.Is(err, speechtotext.ErrNotSupported) {
			message = "speech recognition is not supported in this environment"
		}
		c.lastErr = &ErrorInfo{Kind: ErrorSpeechRecognition, Message: message, Details: err.Error()}
		return
	}

	_ = c.input.Capture(ctx)
	c.listening = true
	c.emitEvent(events.NewUserCaptureStarted())
}

// Stop ends the capture session if one is active; no-op otherwise. Pending
// interim text is handed to the engine for finalization, and Stop waits up
// to finalizeGrace for the committed segment to land so a transcript read
// right after Stop includes it.
func (c *CaptureController) Stop() {
	c.mu.Lock()
	if !c.listening {
		c.mu.Unlock()
		return
	}

	if err := c.input.StopCapture(); err != nil {
		logger.Warn("Failed to stop audio capture", "error", err)
	}

	// Finalization is asynchronous: the engine answers the finalize
	// request with a regular final message. Only wait when there is
	// interim text left to commit.
	awaitSegment := c.transcript.Interim != ""
	select {
	case <-c.segmentCommitted: // drop a stale signal
	default:
	}
	if err := c.recognizer.Finalize(); err != nil {
		logger.Warn("Failed to finalize recognition stream", "error", err)
		awaitSegment = false
	}

	c.listening = false
	c.mu.Unlock()

	if awaitSegment {
		select {
		case <-c.segmentCommitted:
		case <-time.After(finalizeGrace):
		}
	}

	c.emitEvent(events.NewUserCaptureStopped())
}

func (c *CaptureController) stopLocked() {
	if !c.listening {
		return
	}

	if err := c.input.StopCapture(); err != nil {
		logger.Warn("Failed to stop audio capture", "error", err)
	}
	if err := c.recognizer.Finalize(); err != nil {
		logger.Warn("Failed to finalize recognition stream", "error", err)
	}

	c.listening = false
	c.emitEvent(events.NewUserCaptureStopped())
}

// Reset clears both transcript buffers and the last error, stopping
// capture first when active.
func (c *CaptureController) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	c.transcript = TranscriptState{}
	c.lastErr = nil
	c.emitEvent(events.NewUserTranscriptInterimUpdated(""))
}

// Close force-stops an active session and releases the engine and the
// audio device.
func (c *CaptureController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	if c.recognizer != nil {
		if err := c.recognizer.Close(context.Background()); err != nil {
			logger.Warn("Failed to close recognition engine", "error", err)
		}
	}
	c.input.Close()
}

func (c *CaptureController) forwardAudio(audio []byte) {
	if c.recognizer == nil {
		return
	}
	if err := c.recognizer.SendAudio(audio); err != nil {
		logger.Warn("Failed to forward audio to recognition engine", "error", err)
	}
}

// applySegment appends a finalized segment. Segments are committed text,
// they never replace what came before. A space keeps adjacent segments
// readable; callers trim the combined transcript before submitting it.
func (c *CaptureController) applySegment(segment string) {
	c.mu.Lock()
	c.transcript.Final += segment + " "
	combined := c.transcript.Combined()
	c.mu.Unlock()

	select {
	case c.segmentCommitted <- struct{}{}:
	default:
	}

	c.emitEvent(events.NewUserTranscriptSegment(segment))
	c.emitEvent(events.NewUserTranscriptInterimUpdated(combined))
}

// applyInterim replaces the interim value wholesale. The engine's best
// guess may shrink, grow or be corrected between events, so appending
// would corrupt the transcript.
func (c *CaptureController) applyInterim(transcript string) {
	c.mu.Lock()
	c.transcript.Interim = transcript
	combined := c.transcript.Combined()
	c.mu.Unlock()

	c.emitEvent(events.NewUserTranscriptInterimUpdated(combined))
}

func (c *CaptureController) applyEngineError(code speechtotext.ErrorCode, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}

	c.mu.Lock()
	c.listening = false
	_ = c.input.StopCapture()

	errInfo, notification := classifyEngineFailure(code, details)
	c.lastErr = &errInfo
	c.mu.Unlock()

	c.emitEvent(events.NewUserCaptureStopped())

	// no-speech is common and not actionable, it stays silent.
	if notification != nil {
		notification(c.notifier)
	}
}

func classifyEngineFailure(code speechtotext.ErrorCode, details string) (ErrorInfo, func(notify.Notifier)) {
	switch code {
	case speechtotext.ErrorCodeNoSpeech:
		return ErrorInfo{Kind: ErrorSpeechRecognition, Message: "no speech was detected", Details: details}, nil
	case speechtotext.ErrorCodeAudioCapture:
		return ErrorInfo{Kind: ErrorMicPermission, Message: "audio capture failed", Details: details},
			func(n notify.Notifier) {
				n.Error("Microphone Error", "Could not access your microphone. Please check your permissions and hardware.")
			}
	case speechtotext.ErrorCodeNotAllowed:
		return ErrorInfo{Kind: ErrorMicPermission, Message: "microphone access was denied", Details: details},
			func(n notify.Notifier) {
				n.Error("Permission Denied", "Please allow microphone access to use voice features.")
			}
	case speechtotext.ErrorCodeNetwork:
		return ErrorInfo{Kind: ErrorNetwork, Message: "network error occurred during recognition", Details: details},
			func(n notify.Notifier) {
				n.Error("Network Error", "Speech recognition failed due to network issues.")
			}
	case speechtotext.ErrorCodeServiceNotAllowed:
		return ErrorInfo{Kind: ErrorSpeechRecognition, Message: "speech recognition service not allowed", Details: details},
			func(n notify.Notifier) {
				n.Error("Service Error", "Speech recognition service is not available.")
			}
	case speechtotext.ErrorCodeBadGrammar:
		return ErrorInfo{Kind: ErrorSpeechRecognition, Message: "speech recognition grammar error", Details: details},
			func(n notify.Notifier) {
				n.Warning("Recognition Error", "Could not understand the speech pattern.")
			}
	default:
		return ErrorInfo{Kind: ErrorUnknown, Message: "speech recognition error", Details: details},
			func(n notify.Notifier) {
				n.Error("Speech Recognition Error", details)
			}
	}
}
