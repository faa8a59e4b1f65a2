package comm

import (
	"encoding/json"
)

// ChatCommand is what the chat gateway publishes on the command subject.
// Type is one of "generate", "today", "leaderboard", "week".
type ChatCommand struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	ChannelId string          `json:"channelid"`
}

// LeaderboardRequest carries the options for the "leaderboard" and "week"
// command types.
type LeaderboardRequest struct {
	SortByAverage bool `json:"sort_by_average"`
}

// ChatReply is published back to the gateway for delivery. RefId correlates
// the reply with the command that produced it.
type ChatReply struct {
	RefId     string `json:"ref_id"`
	ChannelId string `json:"channelid"`
	Text      string `json:"text"`
}

// PlayerResult is one player's result sheet for one game, as handed to
// ingestion by the fetch pipeline: stable account id, display name and the
// per-round points in round order.
type PlayerResult struct {
	AccountID   string `json:"account_id"`
	Name        string `json:"name"`
	RoundScores []int  `json:"round_scores"`
}
