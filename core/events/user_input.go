package events

const (
	// KindUserCaptureStarted identifies the start of a capture session.
	KindUserCaptureStarted Kind = "user_input.capture_started"
	// KindUserCaptureStopped identifies the end of a capture session.
	KindUserCaptureStopped Kind = "user_input.capture_stopped"
	// KindUserTranscriptInterimUpdated identifies mutable interim transcript updates.
	KindUserTranscriptInterimUpdated Kind = "user_input.transcript_interim_updated"
	// KindUserTranscriptSegment identifies finalized append-only transcript segments.
	KindUserTranscriptSegment Kind = "user_input.transcript_segment"
)

// UserCaptureStarted marks when a capture session starts listening.
type UserCaptureStarted struct{ Base }

// NewUserCaptureStarted creates a capture started event.
func NewUserCaptureStarted() UserCaptureStarted {
	return UserCaptureStarted{Base: NewBase(KindUserCaptureStarted)}
}

// UserCaptureStopped marks when a capture session stops listening.
type UserCaptureStopped struct{ Base }

// NewUserCaptureStopped creates a capture stopped event.
func NewUserCaptureStopped() UserCaptureStopped {
	return UserCaptureStopped{Base: NewBase(KindUserCaptureStopped)}
}

// UserTranscriptInterimUpdated carries the mutable interim transcript snapshot.
type UserTranscriptInterimUpdated struct {
	Base
	Transcript string
}

// NewUserTranscriptInterimUpdated creates an interim transcript update event.
func NewUserTranscriptInterimUpdated(transcript string) UserTranscriptInterimUpdated {
	return UserTranscriptInterimUpdated{Base: NewBase(KindUserTranscriptInterimUpdated), Transcript: transcript}
}

// UserTranscriptSegment carries a finalized transcript segment.
type UserTranscriptSegment struct {
	Base
	Segment string
}

// NewUserTranscriptSegment creates a finalized transcript segment event.
func NewUserTranscriptSegment(segment string) UserTranscriptSegment {
	return UserTranscriptSegment{Base: NewBase(KindUserTranscriptSegment), Segment: segment}
}
