// Command voiceloop is the terminal voice client: it captures speech from
// the microphone, relays the transcript for an answer and speaks the
// answer back.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	assistant "github.com/mlisica/voiceloop/core"
	"github.com/mlisica/voiceloop/core/audio/miniaudio"
	"github.com/mlisica/voiceloop/core/audio/portaudio"
	"github.com/mlisica/voiceloop/core/events"
	"github.com/mlisica/voiceloop/core/notify"
	"github.com/mlisica/voiceloop/core/relay"
	"github.com/mlisica/voiceloop/core/speechtotext"
	"github.com/mlisica/voiceloop/core/speechtotext/deepgram"
	"github.com/mlisica/voiceloop/internal/config"
)

func main() {
	cfg := config.LoadClient()

	// The program pointer does not exist until after the model is wired,
	// so callbacks go through this indirection.
	var program *tea.Program
	send := func(msg tea.Msg) {
		if program != nil {
			program.Send(msg)
		}
	}
	emitEvent := func(event events.Event) { send(eventMsg{event: event}) }

	center := notify.NewCenter(notify.WithChangeCallback(func(visible []notify.Notification) {
		send(toastsMsg{visible: visible})
	}))
	defer center.Close()

	var recognizer speechtotext.Recognizer = speechtotext.Unavailable{}
	if client, err := deepgram.NewTranscriptionClient(); err == nil {
		recognizer = client
	}

	captureOpts := []assistant.CaptureOption{
		assistant.WithCaptureNotifier(center),
		assistant.WithCaptureLanguage(cfg.Language),
		assistant.WithCaptureEventCallback(emitEvent),
	}
	// The capture controller takes ownership of the audio client; its
	// Close releases the device for both capture and playback.
	var (
		input  assistant.AudioInput
		player assistant.Player
	)
	switch cfg.AudioBackend {
	case "portaudio":
		if client, err := portaudio.NewClient(480); err == nil {
			input = client
		}
	default:
		if client, err := miniaudio.NewClient(); err == nil {
			input = client
			player = client
		}
	}
	if input != nil {
		captureOpts = append(captureOpts, assistant.WithCaptureAudioInput(input))
	}
	capture := assistant.NewCaptureController(recognizer, captureOpts...)

	assistantOpts := []assistant.AssistantOption{
		assistant.WithNotifier(center),
		assistant.WithAskTimeout(cfg.AskTimeout),
		assistant.WithSpeakTimeout(cfg.SpeakTimeout),
		assistant.WithGreeting(cfg.Greeting),
		assistant.WithEventCallback(emitEvent),
	}
	if player != nil {
		assistantOpts = append(assistantOpts, assistant.WithPlayer(player))
	}
	a := assistant.New(relay.NewClient(cfg.RelayBaseURL), assistantOpts...)

	program = tea.NewProgram(newModel(a, capture), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "voiceloop:", err)
		os.Exit(1)
	}
}
