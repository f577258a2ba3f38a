package events

import "testing"

func TestConstructorsEmitExpectedKinds(t *testing.T) {
	testCases := []struct {
		name     string
		event    Event
		expected Kind
	}{
		{name: "user capture started", event: NewUserCaptureStarted(), expected: KindUserCaptureStarted},
		{name: "user capture stopped", event: NewUserCaptureStopped(), expected: KindUserCaptureStopped},
		{name: "user interim updated", event: NewUserTranscriptInterimUpdated("text"), expected: KindUserTranscriptInterimUpdated},
		{name: "user transcript segment", event: NewUserTranscriptSegment("seg"), expected: KindUserTranscriptSegment},
		{name: "assistant response started", event: NewAssistantResponseStarted(), expected: KindAssistantResponseStarted},
		{name: "assistant response final", event: NewAssistantResponseFinal("answer"), expected: KindAssistantResponseFinal},
		{name: "assistant playback started", event: NewAssistantPlaybackStarted(), expected: KindAssistantPlaybackStarted},
		{name: "assistant playback ended", event: NewAssistantPlaybackEnded(), expected: KindAssistantPlaybackEnded},
		{name: "turn started", event: NewTurnStarted("prompt"), expected: KindTurnStarted},
		{name: "turn completed", event: NewTurnCompleted(), expected: KindTurnCompleted},
		{name: "turn failed", event: NewTurnFailed("network", "timeout"), expected: KindTurnFailed},
		{name: "asking state changed", event: NewAskingStateChanged(true), expected: KindAskingStateChanged},
		{name: "speaking state changed", event: NewSpeakingStateChanged(false), expected: KindSpeakingStateChanged},
		{name: "conversation updated", event: NewConversationUpdated(), expected: KindConversationUpdated},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.event.Kind(); got != testCase.expected {
				t.Fatalf("expected kind %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestTurnFailedCarriesClassification(t *testing.T) {
	failed := NewTurnFailed("server", "ask endpoint returned 500")

	if failed.Reason != "server" {
		t.Fatalf("expected reason %q, got %q", "server", failed.Reason)
	}
	if failed.Message != "ask endpoint returned 500" {
		t.Fatalf("expected message to be preserved, got %q", failed.Message)
	}
	if failed.Timestamp().IsZero() {
		t.Fatalf("expected event timestamp to be set")
	}
}
