package constants

import "time"

// Spectator feed
const (
	// SpectatorRateHz is the default snapshot broadcast rate per client
	SpectatorRateHz = 10.0

	// SpectatorSendBuffer is the per-client outbound queue; a full queue drops frames
	SpectatorSendBuffer = 8

	// SpectatorWriteWait bounds a single websocket write
	SpectatorWriteWait = 2 * time.Second

	// SpectatorPongWait is how long a client may stay silent before it is dropped
	SpectatorPongWait = 60 * time.Second

	// SpectatorPingPeriod must stay below SpectatorPongWait
	SpectatorPingPeriod = (SpectatorPongWait * 9) / 10

	// SpectatorReadLimit caps inbound frames; spectators only answer pings
	SpectatorReadLimit = 512

	// SpectatorShutdownTimeout bounds graceful HTTP shutdown
	SpectatorShutdownTimeout = 3 * time.Second
)
