package deepgram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	api "github.com/deepgram/deepgram-go-sdk/pkg/api/listen/v1/websocket/interfaces"
	"github.com/gorilla/websocket"
	"github.com/mlisica/voiceloop/core/audio"
	"github.com/mlisica/voiceloop/core/speechtotext"
)

// TranscriptionClient streams audio to the Deepgram listen websocket and
// delivers interim and finalized transcript callbacks in message order.
type TranscriptionClient struct {
	conn   *websocket.Conn
	connMu sync.Mutex

	lastMsgTs time.Time

	options speechtotext.TranscriptionOptions
}

// NewTranscriptionClient fails early when no API key is configured so the
// caller can fall back to the unavailable engine variant.
func NewTranscriptionClient() (*TranscriptionClient, error) {
	if _, ok := os.LookupEnv("DEEPGRAM_API_KEY"); !ok {
		return nil, fmt.Errorf("deepgram api key not found: %w", speechtotext.ErrNotSupported)
	}

	return &TranscriptionClient{}, nil
}

func (s *TranscriptionClient) Transcribe(ctx context.Context, opts ...speechtotext.TranscriptionOption) error {
	options := speechtotext.TranscriptionOptions{EncodingInfo: audio.GetDefaultEncodingInfo()}
	for _, opt := range opts {
		opt(&options)
	}

	encoding, err := convertEncoding(options.EncodingInfo)
	if err != nil {
		return fmt.Errorf("invalid encoding: %w", err)
	}

	conn, err := connectWebsocket(connectionOptions{
		sampleRate: encoding.SampleRate,
		encoding:   encoding.Format.Name(),
		language:   options.Language,

		detectSpeechStart: options.SpeechStartedCallback != nil,
		interimResults:    options.InterimTranscriptionCallback != nil,
	})
	if err != nil {
		return fmt.Errorf("failed to open websocket: %w", err)
	}

	s.connMu.Lock()
	s.conn = conn
	s.options = options
	s.connMu.Unlock()

	go s.readAndProcessMessages(ctx, conn, options)

	return nil
}

type connectionOptions struct {
	sampleRate int
	encoding   string
	language   string

	detectSpeechStart bool
	interimResults    bool
}

func connectWebsocket(options connectionOptions) (*websocket.Conn, error) {
	apiKey, ok := os.LookupEnv("DEEPGRAM_API_KEY")
	if !ok {
		return nil, fmt.Errorf("deepgram api key not found")
	}

	language := options.language
	if language == "" {
		language = "en-US"
	}

	listenUrl, _ := url.Parse("wss://api.deepgram.com/v1/listen")
	queryParams := listenUrl.Query()
	queryParams.Set("encoding", options.encoding)
	queryParams.Set("sample_rate", strconv.Itoa(options.sampleRate))
	queryParams.Set("channels", "1")
	queryParams.Set("model", "nova-3")
	queryParams.Set("language", language)
	queryParams.Set("smart_format", "true")
	if options.interimResults {
		queryParams.Set("interim_results", "true")
	}
	queryParams.Set("endpointing", "300")
	if options.detectSpeechStart {
		queryParams.Set("vad_events", "true")
	}

	listenUrl.RawQuery = queryParams.Encode()
	conn, _, err := websocket.DefaultDialer.Dial(listenUrl.String(),
		http.Header{"Authorization": {"Token " + apiKey}})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to deepgram: %w", err)
	}

	return conn, err
}

func (s *TranscriptionClient) SendAudio(audio []byte) error {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if s.conn == nil {
		return nil
	}

	s.lastMsgTs = time.Now()
	if err := s.conn.WriteMessage(websocket.BinaryMessage, audio); err != nil {
		return fmt.Errorf("failed to write to deepgram client: %w", err)
	}
	return nil
}

// Finalize asks the engine to commit pending interim text. The resulting
// final message arrives through the regular callback path.
func (s *TranscriptionClient) Finalize() error {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if s.conn == nil {
		return nil
	}

	if err := s.conn.WriteJSON(struct {
		Type string `json:"type"`
	}{Type: "Finalize"}); err != nil {
		return fmt.Errorf("failed to finalize deepgram stream: %w", err)
	}
	return nil
}

func (s *TranscriptionClient) Close(context.Context) error {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if s.conn == nil {
		return nil
	}

	if err := s.conn.WriteJSON(struct {
		Type string `json:"type"`
	}{Type: string(api.TypeCloseStreamResponse)}); err != nil {
		return fmt.Errorf("failed to close deepgram stream: %w", err)
	}
	return nil
}

func (s *TranscriptionClient) sendKeepAlive() {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if s.conn == nil {
		return
	}

	if err := s.conn.WriteJSON(
		struct {
			Type string `json:"type"`
		}{
			Type: "KeepAlive",
		}); err != nil {
		logger.Warn("Failed to write keep-alive to deepgram client", "error", err)
	}
}

func (s *TranscriptionClient) readAndProcessMessages(ctx context.Context, conn *websocket.Conn, options speechtotext.TranscriptionOptions) {
	keepAliveCtx, keepAliveCancel := context.WithCancel(ctx)
	defer keepAliveCancel()

	go s.keepAlive(keepAliveCtx)

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			s.connMu.Lock()
			s.conn = nil
			s.connMu.Unlock()
			conn.Close()

			if err.Error() != "websocket: close 1000 (normal)" && ctx.Err() == nil {
				if options.ErrorCallback != nil {
					options.ErrorCallback(speechtotext.ErrorCodeNetwork, err)
				}
			}
			return
		}
		if msgType != websocket.BinaryMessage {
			s.processMessage(msg, options)
		}
	}
}

func (s *TranscriptionClient) processMessage(msg []byte, options speechtotext.TranscriptionOptions) {
	var parsedMsg struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(msg, &parsedMsg); err != nil {
		if options.ErrorCallback != nil {
			options.ErrorCallback(speechtotext.ErrorCodeUnknown, fmt.Errorf("failed to unmarshal deepgram message: %w", err))
		}
		return
	}

	switch api.TypeResponse(parsedMsg.Type) {
	case api.TypeMessageResponse:
		var msgResp api.MessageResponse
		if err := json.Unmarshal(msg, &msgResp); err != nil {
			logger.Warn("Failed to unmarshal deepgram transcript message", "error", err)
			return
		}
		if len(msgResp.Channel.Alternatives) == 0 {
			return
		}

		transcript := strings.TrimSpace(msgResp.Channel.Alternatives[0].Transcript)
		if msgResp.IsFinal {
			// A final message always clears the interim value, even when
			// the committed text turns out empty.
			if options.InterimTranscriptionCallback != nil {
				options.InterimTranscriptionCallback("")
			}
			if len(transcript) > 0 && options.TranscriptionCallback != nil {
				options.TranscriptionCallback(transcript)
			}
			return
		}

		if len(transcript) > 0 && options.InterimTranscriptionCallback != nil {
			options.InterimTranscriptionCallback(transcript)
		}

	case api.TypeSpeechStartedResponse:
		if options.SpeechStartedCallback != nil {
			options.SpeechStartedCallback()
		}

	case api.TypeUtteranceEndResponse:
		if options.SpeechEndedCallback != nil {
			options.SpeechEndedCallback()
		}

	case api.TypeResponse(api.TypeErrorResponse):
		var errResp struct {
			Description string `json:"description"`
			Message     string `json:"message"`
		}
		if err := json.Unmarshal(msg, &errResp); err != nil {
			logger.Warn("Failed to unmarshal deepgram error message", "error", err)
			return
		}
		if options.ErrorCallback != nil {
			options.ErrorCallback(
				classifyEngineError(errResp.Description, errResp.Message),
				fmt.Errorf("deepgram error: %s", errResp.Description),
			)
		}
	}
}

func classifyEngineError(description, message string) speechtotext.ErrorCode {
	description = strings.ToLower(description + " " + message)
	switch {
	case strings.Contains(description, "auth"), strings.Contains(description, "forbidden"):
		return speechtotext.ErrorCodeServiceNotAllowed
	case strings.Contains(description, "timeout"), strings.Contains(description, "network"):
		return speechtotext.ErrorCodeNetwork
	default:
		return speechtotext.ErrorCodeUnknown
	}
}

// keepAlive keeps the websocket open across capture pauses. Deepgram drops
// a connection that stays silent for ~10s.
func (s *TranscriptionClient) keepAlive(ctx context.Context) {
	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.connMu.Lock()
			idle := time.Since(s.lastMsgTs) >= 3*time.Second
			connected := s.conn != nil
			s.connMu.Unlock()

			if connected && idle {
				s.sendKeepAlive()
			}
		}
	}
}
