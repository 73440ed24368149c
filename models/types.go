package models

import (
	"fmt"
	"strings"
)

// UserID is a user identity: a course code plus a class-list number,
// serialized as "course:number" with the course lowercased.
type UserID string

// NewUserID builds a UserID from an externally supplied course and
// list number, trimming surrounding whitespace and lowercasing the
// course code.
func NewUserID(course string, number int) UserID {
	return UserID(fmt.Sprintf("%s:%d", strings.ToLower(strings.TrimSpace(course)), number))
}

// Course returns the course-code half of the identity.
func (u UserID) Course() string {
	if i := strings.IndexByte(string(u), ':'); i >= 0 {
		return string(u)[:i]
	}
	return string(u)
}

func (u UserID) String() string { return string(u) }

// Request types

type RegisterRequest struct {
	Course   string `json:"course"`
	Number   int    `json:"number"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Course   string `json:"course"`
	Number   int    `json:"number"`
	Password string `json:"password"`
}

type CreateProposalRequest struct {
	Text string `json:"text"`
}

// Response types

type RegisterResponse struct {
	UserID string `json:"user_id"`
}

type LoginResponse struct {
	Token          string `json:"token"`
	UserID         string `json:"user_id"`
	RemainingVotes int    `json:"remaining_votes"`
}

type CreateProposalResponse struct {
	ProposalID int64 `json:"proposal_id"`
}

type CastVoteResponse struct {
	ProposalID     int64  `json:"proposal_id"`
	RemainingVotes int    `json:"remaining_votes"`
	Message        string `json:"message"`
}

type ScoreResponse struct {
	ProposalID int64 `json:"proposal_id"`
	Score      int64 `json:"score"`
}

type MeResponse struct {
	UserID         string `json:"user_id"`
	RemainingVotes int    `json:"remaining_votes"`
}

// Domain types

type Proposal struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// LeaderboardEntry is derived on read from proposal scores; Rank is
// 1-indexed.
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	ProposalID int64  `json:"proposal_id"`
	Text       string `json:"text"`
	Score      int64  `json:"score"`
}

// CourseStats aggregates voting activity across one course's users.
type CourseStats struct {
	Course     string `json:"course"`
	Voters     int    `json:"voters"`
	TotalVotes int64  `json:"total_votes"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
