package models

// Player represents the players table in the database. AccountID is the
// stable provider account identifier; Name is the display name and follows
// whatever the latest ingested result said it was.
type Player struct {
	ID        int64  `json:"id"`
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
}
