package handlers

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/geoclub/geodaily-services/internal/geosvc/models"
	"github.com/geoclub/geodaily-services/internal/geosvc/service"
)

type Handler struct {
	gameService        *service.GameService
	leaderboardService *service.LeaderboardService
}

func NewHandler(gameService *service.GameService, leaderboardService *service.LeaderboardService) *Handler {
	return &Handler{
		gameService:        gameService,
		leaderboardService: leaderboardService,
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error,omitempty"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	json.NewEncoder(w).Encode(rsp)
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "geo service is running at port " + os.Getenv("GEO_SERVICE_PORT"),
		Code:    200,
	}
	h.CreateResponse(w, rsp)
}

// LeaderboardHandler serves the three aggregation scopes as JSON. An empty
// scope returns a "no data" message with a null data field, distinct from
// errors, so clients can tell a quiet week from a broken store.
func (h *Handler) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sortByAverage := r.URL.Query().Get("sort") == "average"

	var lb *models.Leaderboard
	var err error

	switch r.URL.Query().Get("scope") {
	case "game":
		gameID := r.URL.Query().Get("game_id")
		if gameID == "" {
			lb, err = h.leaderboardService.Today(ctx)
			break
		}

		game, gerr := h.gameService.GetByID(ctx, gameID)
		if gerr != nil {
			h.CreateResponse(w, Response{Message: "leaderboard query failed", Code: 500, Error: gerr.Error()})
			return
		}
		if game == nil {
			h.CreateResponse(w, Response{Message: "unknown game", Code: 404, Error: "no game with id " + gameID})
			return
		}

		lb, err = h.leaderboardService.ForGame(ctx, gameID)
	case "week":
		lb, err = h.leaderboardService.Week(ctx, sortByAverage)
	case "", "all":
		lb, err = h.leaderboardService.AllTime(ctx, sortByAverage)
	default:
		h.CreateResponse(w, Response{Message: "unknown scope", Code: 400, Error: "scope must be game, week or all"})
		return
	}

	if err != nil {
		h.CreateResponse(w, Response{Message: "leaderboard query failed", Code: 500, Error: err.Error()})
		return
	}

	if lb == nil {
		h.CreateResponse(w, Response{Message: "no scores recorded", Code: 200})
		return
	}

	h.CreateResponse(w, Response{Message: "ok", Code: 200, Data: lb})
}
