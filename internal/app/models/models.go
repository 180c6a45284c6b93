package models

// VoteKind is the vote a user holds on a publication
type VoteKind string

const (
	VoteLike    VoteKind = "LIKE"
	VoteDislike VoteKind = "DISLIKE"
)

// ReactionType enumerates the typed reactions a user can leave on a publication
type ReactionType string

const (
	ReactionThought     ReactionType = "THOUGHT"
	ReactionAdhere      ReactionType = "ADHERE"
	ReactionSupport     ReactionType = "SUPPORT"
	ReactionAlternative ReactionType = "ALTERNATIVE"
	ReactionClarify     ReactionType = "CLARIFY"
)

var reactionLabels = map[ReactionType]string{
	ReactionThought:     "My thought",
	ReactionAdhere:      "I agree",
	ReactionSupport:     "I support",
	ReactionAlternative: "I propose an alternative",
	ReactionClarify:     "I ask for clarification",
}

// IsValid reports whether t is one of the known reaction types
func (t ReactionType) IsValid() bool {
	_, ok := reactionLabels[t]
	return ok
}

// Label returns the display label of the reaction type
func (t ReactionType) Label() string {
	return reactionLabels[t]
}

// ModerationState is the escalation state of a reported user
type ModerationState string

const (
	ModerationNormal    ModerationState = "NORMAL"
	ModerationWarned    ModerationState = "WARNED"
	ModerationSuspended ModerationState = "SUSPENDED"
)

// ConversationType distinguishes direct conversations from club conversations
type ConversationType string

const (
	ConversationUser ConversationType = "user"
	ConversationClub ConversationType = "club"
)
