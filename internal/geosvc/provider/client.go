package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/geoclub/geodaily-services/internal/comm"
	log "github.com/sirupsen/logrus"
)

const (
	defaultBaseURL = "https://www.geoguessr.com"
	defaultMapID   = "5cfda2c9bc79e16dd866104d"

	roundsPerGame = 5
	roundTimeSecs = 60
)

// Client talks to the GeoGuessr v3 API. Authentication is the _ncfa session
// cookie sent on every request.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New returns a client authenticated with the given _ncfa token.
func New(token string) *Client {
	return NewWithBaseURL(defaultBaseURL, token)
}

// NewWithBaseURL exists so tests can point the client at a local server.
func NewWithBaseURL(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type challengeRequest struct {
	ForbidMoving   bool   `json:"forbidMoving"`
	ForbidRotating bool   `json:"forbidRotating"`
	ForbidZooming  bool   `json:"forbidZooming"`
	Map            string `json:"map"`
	Rounds         int    `json:"rounds"`
	TimeLimit      int    `json:"timeLimit"`
}

type challengeResponse struct {
	Token string `json:"token"`
}

type highscoresResponse struct {
	Items []resultItem `json:"items"`
}

type resultItem struct {
	UserID     string `json:"userId"`
	PlayerName string `json:"playerName"`
	Game       struct {
		Player struct {
			Guesses []struct {
				RoundScoreInPoints int `json:"roundScoreInPoints"`
			} `json:"guesses"`
		} `json:"player"`
	} `json:"game"`
}

// CreateChallenge creates a new daily challenge game and returns its token
// together with the shareable challenge URL.
func (c *Client) CreateChallenge(ctx context.Context) (string, string, error) {
	body, err := json.Marshal(challengeRequest{
		ForbidMoving:   true,
		ForbidRotating: false,
		ForbidZooming:  false,
		Map:            defaultMapID,
		Rounds:         roundsPerGame,
		TimeLimit:      roundTimeSecs,
	})
	if err != nil {
		return "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v3/challenges", bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")
	c.addAuth(req)

	res, err := c.http.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("challenge request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("challenge request returned status %d", res.StatusCode)
	}

	var cr challengeResponse
	if err := json.NewDecoder(res.Body).Decode(&cr); err != nil {
		return "", "", fmt.Errorf("failed to decode challenge response: %w", err)
	}
	if cr.Token == "" {
		return "", "", fmt.Errorf("challenge response missing token")
	}

	return cr.Token, c.baseURL + "/challenge/" + cr.Token, nil
}

// FetchResults fetches the highscores for one game and converts them to
// result sheets. Items missing the account id, name or round scores are
// logged and dropped individually; the rest are returned.
func (c *Client) FetchResults(ctx context.Context, gameID string) ([]comm.PlayerResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/v3/results/highscores/"+gameID, nil)
	if err != nil {
		return nil, err
	}
	c.addAuth(req)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("highscores request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("highscores request returned status %d", res.StatusCode)
	}

	var hr highscoresResponse
	if err := json.NewDecoder(res.Body).Decode(&hr); err != nil {
		return nil, fmt.Errorf("failed to decode highscores response: %w", err)
	}

	var results []comm.PlayerResult
	for _, item := range hr.Items {
		if item.UserID == "" || item.PlayerName == "" || len(item.Game.Player.Guesses) == 0 {
			log.Warnf("skipping incomplete highscore item for game %s", gameID)
			continue
		}

		rounds := make([]int, 0, len(item.Game.Player.Guesses))
		for _, g := range item.Game.Player.Guesses {
			rounds = append(rounds, g.RoundScoreInPoints)
		}

		results = append(results, comm.PlayerResult{
			AccountID:   item.UserID,
			Name:        item.PlayerName,
			RoundScores: rounds,
		})
	}

	return results, nil
}

func (c *Client) addAuth(req *http.Request) {
	req.AddCookie(&http.Cookie{Name: "_ncfa", Value: c.token})
}
