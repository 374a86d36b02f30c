// Package events defines the dispatch session events emitted on the event bus.
//
// Available event types:
//   - BookingAccepted: route received, vehicle is en route
//   - PositionUpdated: vehicle moved one step along the path
//   - ETAUpdated: remaining travel time changed
//   - Arrived: vehicle reached the requester (terminal, emitted once)
//   - BookingFailed: route acquisition failed, session back to idle
//   - SessionCancelled: booking cancelled by the requester
package events
