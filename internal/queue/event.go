// Package queue defines message payloads exchanged over the message broker.
package queue

// Share event actions mirror the share lifecycle.
const (
	ShareRequested = "REQUESTED"
	ShareAccepted  = "ACCEPTED"
	ShareRejected  = "REJECTED"
)

// ShareEvent is published whenever a challenge share is created or
// resolved. It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type ShareEvent struct {
	Action        string `json:"action"` // REQUESTED, ACCEPTED or REJECTED
	ShareID       uint64 `json:"share_id"`
	ChallengeID   uint64 `json:"challenge_id"`
	ChallengeName string `json:"challenge_name"`
	FromUserID    uint64 `json:"from_user_id"`
	FromUserName  string `json:"from_user_name"`
	ToUserID      uint64 `json:"to_user_id"`
	OccurredAt    string `json:"occurred_at"`
}
