// Package events defines the typed protocol event contract.
//
// Inbound events arrive over the duplex channel and are discriminated by a
// wire `type` string; each wire kind maps to exactly one Go type so the
// router can match them exhaustively. Derived events are produced locally
// and fanned out to subscribers; they never appear on the wire inbound.
//
// Inbound events
//
//   - ToolSelectDelta (tool_select_delta): the server selected one or more
//     tools for a session; each carries id, name, and arguments.
//   - ToolCallUpdate (tool_call): progress envelope for tool calls. Active
//     envelopes mean the calls are running; inactive envelopes carry the
//     completions, optionally with matched results.
//   - Interaction (interaction): a bounded unit of agent activity within a
//     session started or ended.
//   - UserTurnStarted (user_turn_start): the server granted the user the
//     turn.
//   - UserTurnEnded (user_turn_end): the server revoked the user's turn.
//
// Derived events
//
//   - SessionNotificationsCleared (session-notifications-cleared): one
//     session's in-flight tool notifications were invalidated.
//   - AllNotificationsCleared (all-notifications-cleared): every session's
//     in-flight tool notifications were invalidated.
//   - TurnStateChanged (turn-state-changed): the turn gate actually
//     flipped; duplicated turn signals do not produce this event.
package events
