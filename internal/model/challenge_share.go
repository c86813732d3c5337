package model

import "time"

// Share lifecycle states. A share starts PENDING and moves exactly
// once to ACCEPTED or REJECTED; both are terminal.
const (
	ShareStatusPending  = "PENDING"
	ShareStatusAccepted = "ACCEPTED"
	ShareStatusRejected = "REJECTED"
)

// ChallengeShare is a directed grant from a challenge owner to another
// user. Once accepted it lets the recipient view the challenge's
// progress as target-relative diffs.
//
// Fields:
//
//	ID          – primary key identifier.
//	FromUserID  – challenge owner who sent the request.
//	ToUserID    – user the challenge is shared with.
//	ChallengeID – the shared challenge.
//	Status      – PENDING, ACCEPTED or REJECTED.
//	CreatedAt   – creation timestamp.
//	UpdatedAt   – last update timestamp.
type ChallengeShare struct {
	ID          uint64    // challenge_shares.id
	FromUserID  uint64    // challenge_shares.from_user_id
	ToUserID    uint64    // challenge_shares.to_user_id
	ChallengeID uint64    // challenge_shares.challenge_id
	Status      string    // challenge_shares.status
	CreatedAt   time.Time // challenge_shares.created_at
	UpdatedAt   time.Time // challenge_shares.updated_at
}
