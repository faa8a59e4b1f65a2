package broker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/geoclub/geodaily-services/internal/comm"
	"github.com/geoclub/geodaily-services/internal/geosvc/provider"
	"github.com/geoclub/geodaily-services/internal/geosvc/service"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

const (
	// CommandSubject is where the chat gateway publishes user commands.
	CommandSubject = "geo.chat.commands"
	// ReplySubject is where formatted text goes back for delivery.
	ReplySubject = "geo.chat.replies"

	noScoresMessage = "No scores available for today's game."
	noDataMessage   = "No scores recorded yet."
)

type Broker struct {
	Conn               *nats.Conn
	Provider           *provider.Client
	GameService        *service.GameService
	LeaderboardService *service.LeaderboardService
}

func NewBroker(nc *nats.Conn, client *provider.Client,
	gameService *service.GameService, leaderboardService *service.LeaderboardService) *Broker {
	return &Broker{
		Conn:               nc,
		Provider:           client,
		GameService:        gameService,
		LeaderboardService: leaderboardService,
	}
}

// SubscribeChatGateway starts handling user commands from the chat gateway.
func (b *Broker) SubscribeChatGateway() (*nats.Subscription, error) {
	return b.Conn.Subscribe(CommandSubject, b.handleMessage)
}

// handles commands coming from the chat gateway
func (b *Broker) handleMessage(msgNat *nats.Msg) {
	cmd := &comm.ChatCommand{}
	err := json.Unmarshal(msgNat.Data, &cmd)
	if err != nil {
		log.Errorf("Error nats message %s", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cmd.Type {
	case "generate":
		gameID, link, err := b.Provider.CreateChallenge(ctx)
		if err != nil {
			log.Errorf("Error [Provider.CreateChallenge] %s", err)
			return
		}

		if err := b.GameService.Register(ctx, gameID); err != nil {
			log.Errorf("Error [GameService.Register] %s", err)
			return
		}

		b.PublishReply(link, cmd.ChannelId)
	case "today":
		text, err := b.LeaderboardService.FormattedToday(ctx)
		if err != nil {
			log.Errorf("Error [LeaderboardService.FormattedToday] %s", err)
			return
		}
		if text == "" {
			text = noScoresMessage
		}

		b.PublishReply(text, cmd.ChannelId)
	case "leaderboard":
		request := comm.LeaderboardRequest{}
		if len(cmd.Data) > 0 {
			if err := json.Unmarshal(cmd.Data, &request); err != nil {
				log.Errorf("Error decoding request: %s", err)
				return
			}
		}

		text, err := b.LeaderboardService.FormattedAllTime(ctx, request.SortByAverage)
		if err != nil {
			log.Errorf("Error [LeaderboardService.FormattedAllTime] %s", err)
			return
		}
		if text == "" {
			text = noDataMessage
		}

		b.PublishReply(text, cmd.ChannelId)
	case "week":
		request := comm.LeaderboardRequest{}
		if len(cmd.Data) > 0 {
			if err := json.Unmarshal(cmd.Data, &request); err != nil {
				log.Errorf("Error decoding request: %s", err)
				return
			}
		}

		text, err := b.LeaderboardService.FormattedWeek(ctx, request.SortByAverage)
		if err != nil {
			log.Errorf("Error [LeaderboardService.FormattedWeek] %s", err)
			return
		}
		if text == "" {
			text = noDataMessage
		}

		b.PublishReply(text, cmd.ChannelId)
	default:
		log.Warnf("unknown command type %q", cmd.Type)
	}
}

// PublishReply sends formatted text back to the chat gateway. An empty
// channel id means the gateway's default channel.
func (b *Broker) PublishReply(text, channelId string) {
	reply := comm.ChatReply{
		RefId:     uuid.New().String(),
		ChannelId: channelId,
		Text:      text,
	}

	data, err := json.Marshal(reply)
	if err != nil {
		log.Errorf("Error marshaling reply %s", err)
		return
	}

	if err := b.Conn.Publish(ReplySubject, data); err != nil {
		log.Errorf("Error publishing reply %s", err)
	}
}
