// Package events defines the typed event contract between the interaction
// core and its presentation layer.
//
// Event kinds are grouped by receiver-facing namespaces:
//
//   - user_input.*
//   - assistant_response.*
//   - assistant_playback.*
//   - turn_state.*
//
// Semantics used across the package:
//
//   - Segment: append-only text piece emitted in delivery order.
//   - Updated: mutable point-in-time snapshot that can change over time.
//   - Final: terminal immutable text/state for the current phase.
//
// user_input events
//
//   - UserCaptureStarted (user_input.capture_started): a capture session
//     began listening.
//   - UserCaptureStopped (user_input.capture_stopped): the capture session
//     stopped listening.
//   - UserTranscriptInterimUpdated (user_input.transcript_interim_updated):
//     mutable interim transcript snapshot; each update fully replaces the
//     previous interim value.
//   - UserTranscriptSegment (user_input.transcript_segment): finalized,
//     append-only transcript segment.
//
// assistant_response events
//
//   - AssistantResponseStarted (assistant_response.started): the model
//     request was dispatched.
//   - AssistantResponseFinal (assistant_response.final): the model answer
//     arrived and the conversation gained its turn pair.
//
// assistant_playback events
//
//   - AssistantPlaybackStarted (assistant_playback.started): spoken answer
//     playback began.
//   - AssistantPlaybackEnded (assistant_playback.ended): spoken answer
//     playback finished or was abandoned.
//
// turn_state events
//
//   - TurnStarted (turn_state.started): a voice turn was admitted.
//   - TurnCompleted (turn_state.completed): the turn reached its terminal
//     success state.
//   - TurnFailed (turn_state.failed): the turn ended with a classified
//     failure.
//   - AskingStateChanged (turn_state.asking_changed): the model request
//     in-flight flag flipped.
//   - SpeakingStateChanged (turn_state.speaking_changed): the synthesis
//     in-flight flag flipped.
//   - ConversationUpdated (turn_state.conversation_updated): conversation
//     history changed; consumers should re-read their snapshot.
package events
