package assistant

// TranscriptState holds the two transcript buffers of one capture session.
// Final is append-only within a session; Interim is wholesale-replaced by
// every interim update.
type TranscriptState struct {
	Final   string
	Interim string
}

// Combined derives the full transcript from the latest Final/Interim pair.
// It is always computed at read time, never cached, so it cannot
// desynchronize from the buffers it is derived from.
func (s TranscriptState) Combined() string {
	return s.Final + s.Interim
}
