package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mlisica/voiceloop/core/events"
	"github.com/mlisica/voiceloop/core/notify"
	"github.com/mlisica/voiceloop/core/speechtotext"
)

type stubRecognizer struct {
	opts speechtotext.TranscriptionOptions

	transcribeErr error
	finalizeFn    func()
	transcribes   int
	finalizes     int
	closes        int
}

func (s *stubRecognizer) Transcribe(_ context.Context, opts ...speechtotext.TranscriptionOption) error {
	s.transcribes++
	if s.transcribeErr != nil {
		return s.transcribeErr
	}
	for _, opt := range opts {
		opt(&s.opts)
	}
	return nil
}

func (s *stubRecognizer) SendAudio([]byte) error { return nil }
func (s *stubRecognizer) Finalize() error {
	s.finalizes++
	if s.finalizeFn != nil {
		s.finalizeFn()
	}
	return nil
}
func (s *stubRecognizer) Close(context.Context) error {
	s.closes++
	return nil
}

func TestCaptureTranscriptAccumulation(t *testing.T) {
	recognizer := &stubRecognizer{}
	controller := NewCaptureController(recognizer)

	controller.Start(context.Background())
	if !controller.IsListening() {
		t.Fatal("expected controller to be listening")
	}

	recognizer.opts.InterimTranscriptionCallback("what is")
	if got := controller.Transcript().Combined(); got != "what is" {
		t.Fatalf("expected combined transcript %q, got %q", "what is", got)
	}

	// Interim updates replace, they never append.
	recognizer.opts.InterimTranscriptionCallback("what is the capital")
	if got := controller.Transcript().Combined(); got != "what is the capital" {
		t.Fatalf("expected combined transcript %q, got %q", "what is the capital", got)
	}

	recognizer.opts.TranscriptionCallback("what is the capital of France?")
	recognizer.opts.InterimTranscriptionCallback("")

	state := controller.Transcript()
	if state.Final != "what is the capital of France? " {
		t.Fatalf("expected final transcript %q, got %q", "what is the capital of France? ", state.Final)
	}
	if state.Interim != "" {
		t.Fatalf("expected empty interim transcript, got %q", state.Interim)
	}
}

func TestCaptureSegmentsSurviveInterimChurn(t *testing.T) {
	recognizer := &stubRecognizer{}
	controller := NewCaptureController(recognizer)
	controller.Start(context.Background())

	recognizer.opts.TranscriptionCallback("first segment.")
	recognizer.opts.InterimTranscriptionCallback("second")
	recognizer.opts.TranscriptionCallback("second segment.")

	if got := controller.Transcript().Final; got != "first segment. second segment. " {
		t.Fatalf("expected final transcript %q, got %q", "first segment. second segment. ", got)
	}
}

func TestCaptureStartWhenUnsupported(t *testing.T) {
	controller := NewCaptureController(speechtotext.Unavailable{})

	if controller.IsSupported() {
		t.Fatal("expected controller to report unsupported")
	}

	controller.Start(context.Background())
	if controller.IsListening() {
		t.Fatal("expected controller to stay idle")
	}

	lastErr := controller.LastError()
	if lastErr == nil {
		t.Fatal("expected a last error, got nil")
	}
	if lastErr.Kind != ErrorSpeechRecognition {
		t.Fatalf("expected kind %q, got %q", ErrorSpeechRecognition, lastErr.Kind)
	}
}

func TestCaptureStartFailure(t *testing.T) {
	recognizer := &stubRecognizer{transcribeErr: errors.New("dial failed")}
	controller := NewCaptureController(recognizer)

	controller.Start(context.Background())
	if controller.IsListening() {
		t.Fatal("expected controller to stay idle")
	}
	if lastErr := controller.LastError(); lastErr == nil || lastErr.Kind != ErrorSpeechRecognition {
		t.Fatalf("expected a speech recognition error, got %v", controller.LastError())
	}
}

func TestCaptureStartIsIdempotent(t *testing.T) {
	recognizer := &stubRecognizer{}
	controller := NewCaptureController(recognizer)

	controller.Start(context.Background())
	controller.Start(context.Background())

	if recognizer.transcribes != 1 {
		t.Fatalf("expected 1 transcribe call, got %d", recognizer.transcribes)
	}
}

func TestCaptureStopFinalizes(t *testing.T) {
	recognizer := &stubRecognizer{}
	controller := NewCaptureController(recognizer)

	controller.Stop() // idle stop is a no-op
	if recognizer.finalizes != 0 {
		t.Fatalf("expected no finalize calls, got %d", recognizer.finalizes)
	}

	controller.Start(context.Background())
	controller.Stop()

	if controller.IsListening() {
		t.Fatal("expected controller to stop listening")
	}
	if recognizer.finalizes != 1 {
		t.Fatalf("expected 1 finalize call, got %d", recognizer.finalizes)
	}
}

// Finalization is asynchronous: the committed segment arrives as a
// regular final message after the finalize request. Stop must not hand
// the transcript back before that segment lands.
func TestCaptureStopAwaitsFinalizeResponse(t *testing.T) {
	recognizer := &stubRecognizer{}
	recognizer.finalizeFn = func() {
		go func() {
			time.Sleep(30 * time.Millisecond)
			recognizer.opts.InterimTranscriptionCallback("")
			recognizer.opts.TranscriptionCallback("the capital of France?")
		}()
	}
	controller := NewCaptureController(recognizer)

	controller.Start(context.Background())
	recognizer.opts.TranscriptionCallback("what is")
	recognizer.opts.InterimTranscriptionCallback("the capital of France")

	controller.Stop()

	state := controller.Transcript()
	if state.Final != "what is the capital of France? " {
		t.Fatalf("expected final transcript %q, got %q", "what is the capital of France? ", state.Final)
	}
	if state.Interim != "" {
		t.Fatalf("expected empty interim transcript, got %q", state.Interim)
	}
}

func TestCaptureStopWithoutPendingInterim(t *testing.T) {
	recognizer := &stubRecognizer{}
	controller := NewCaptureController(recognizer)
	controller.Start(context.Background())

	start := time.Now()
	controller.Stop()

	if elapsed := time.Since(start); elapsed >= finalizeGrace {
		t.Fatalf("expected stop to return without waiting, took %v", elapsed)
	}
}

func TestCaptureReset(t *testing.T) {
	recognizer := &stubRecognizer{}
	controller := NewCaptureController(recognizer)

	controller.Start(context.Background())
	recognizer.opts.TranscriptionCallback("left over text")
	recognizer.opts.InterimTranscriptionCallback("still talking")

	controller.Reset()

	if controller.IsListening() {
		t.Fatal("expected reset to stop capture")
	}
	state := controller.Transcript()
	if state.Final != "" || state.Interim != "" {
		t.Fatalf("expected empty transcript, got final=%q interim=%q", state.Final, state.Interim)
	}
	if controller.LastError() != nil {
		t.Fatalf("expected no last error, got %v", controller.LastError())
	}
}

func TestCaptureEngineErrorPolicy(t *testing.T) {
	for _, tc := range []struct {
		code   speechtotext.ErrorCode
		kind   ErrorKind
		silent bool
		title  string
	}{
		{code: speechtotext.ErrorCodeNoSpeech, kind: ErrorSpeechRecognition, silent: true},
		{code: speechtotext.ErrorCodeAudioCapture, kind: ErrorMicPermission, title: "Microphone Error"},
		{code: speechtotext.ErrorCodeNotAllowed, kind: ErrorMicPermission, title: "Permission Denied"},
		{code: speechtotext.ErrorCodeNetwork, kind: ErrorNetwork, title: "Network Error"},
		{code: speechtotext.ErrorCodeServiceNotAllowed, kind: ErrorSpeechRecognition, title: "Service Error"},
		{code: speechtotext.ErrorCodeBadGrammar, kind: ErrorSpeechRecognition, title: "Recognition Error"},
		{code: speechtotext.ErrorCode("something-new"), kind: ErrorUnknown, title: "Speech Recognition Error"},
	} {
		t.Run(string(tc.code), func(t *testing.T) {
			recognizer := &stubRecognizer{}
			notifier := &recordingNotifier{}
			controller := NewCaptureController(recognizer, WithCaptureNotifier(notifier))

			controller.Start(context.Background())
			recognizer.opts.ErrorCallback(tc.code, errors.New("engine failure"))

			if controller.IsListening() {
				t.Fatal("expected engine error to stop capture")
			}

			lastErr := controller.LastError()
			if lastErr == nil {
				t.Fatal("expected a last error, got nil")
			}
			if lastErr.Kind != tc.kind {
				t.Fatalf("expected kind %q, got %q", tc.kind, lastErr.Kind)
			}

			if tc.silent {
				if len(notifier.shown) != 0 {
					t.Fatalf("expected no notifications, got %v", notifier.shown)
				}
				return
			}
			if len(notifier.shown) != 1 {
				t.Fatalf("expected 1 notification, got %d", len(notifier.shown))
			}
			if notifier.shown[0].Title != tc.title {
				t.Fatalf("expected title %q, got %q", tc.title, notifier.shown[0].Title)
			}
		})
	}
}

func TestCaptureEvents(t *testing.T) {
	var kinds []events.Kind
	recognizer := &stubRecognizer{}
	controller := NewCaptureController(recognizer, WithCaptureEventCallback(func(event events.Event) {
		kinds = append(kinds, event.Kind())
	}))

	controller.Start(context.Background())
	recognizer.opts.TranscriptionCallback("hello")
	controller.Stop()

	expected := []events.Kind{
		events.KindUserCaptureStarted,
		events.KindUserTranscriptSegment,
		events.KindUserTranscriptInterimUpdated,
		events.KindUserCaptureStopped,
	}
	if len(kinds) != len(expected) {
		t.Fatalf("expected %d events, got %d (%v)", len(expected), len(kinds), kinds)
	}
	for i, kind := range expected {
		if kinds[i] != kind {
			t.Fatalf("expected event %d to be %q, got %q", i, kind, kinds[i])
		}
	}
}

func TestCaptureClose(t *testing.T) {
	recognizer := &stubRecognizer{}
	controller := NewCaptureController(recognizer)

	controller.Start(context.Background())
	controller.Close()

	if controller.IsListening() {
		t.Fatal("expected close to stop capture")
	}
	if recognizer.closes != 1 {
		t.Fatalf("expected 1 close call, got %d", recognizer.closes)
	}
}

var _ notify.Notifier = (*recordingNotifier)(nil)
