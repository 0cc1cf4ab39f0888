package websocket

import (
	"monopolydeal-server/internal/delivery/dto"
)

// Re-export wire envelope types for cleaner imports within this package.
type InboundEnvelope = dto.InboundEnvelope
type OutboundEnvelope = dto.OutboundEnvelope
