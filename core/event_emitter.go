package assistant

import "github.com/mlisica/voiceloop/core/events"

type eventEmitter func(events.Event)

func noopEventEmitter(events.Event) {}
