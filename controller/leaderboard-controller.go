package controller

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"gatherpass/service"
	"gatherpass/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

// LeaderboardController pushes leaderboard snapshots to websocket subscribers
// whenever a season's standings change.
type LeaderboardController struct {
	seasonUserService *service.SeasonUserService
	mu                sync.Mutex
	connections       map[int]map[*websocket.Conn]bool
	lastPayload       map[int][]byte
}

func NewLeaderboardController(db *gorm.DB) *LeaderboardController {
	controller := &LeaderboardController{
		seasonUserService: service.NewSeasonUserService(db),
		connections:       make(map[int]map[*websocket.Conn]bool),
		lastPayload:       make(map[int][]byte),
	}
	controller.StartLeaderboardUpdater()
	return controller
}

func setupLeaderboardController(db *gorm.DB) []RouteInfo {
	e := NewLeaderboardController(db)
	routes := []RouteInfo{
		{Method: "GET", Path: "/seasons/:season_id/leaderboard/ws", HandlerFunc: e.WebSocketHandler},
	}
	return routes
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// allow any host origin to connect to the websocket
		return true
	},
}

// @id LeaderboardWebSocket
// @Description Websocket for leaderboard updates. Subscribers receive the current standings on connect and a fresh snapshot whenever they change.
// @Tags season-user
// @Router /seasons/{season_id}/leaderboard/ws [get]
// @Param season_id path int true "Season Id"
// @Success 200 {array} SeasonUser
func (e *LeaderboardController) WebSocketHandler(c *gin.Context) {
	seasonId, err := strconv.Atoi(c.Param("season_id"))
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		http.NotFound(c.Writer, c.Request)
		return
	}
	defer conn.Close()

	payload, err := e.leaderboardPayload(seasonId)
	if err != nil {
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return
	}

	e.mu.Lock()
	if _, ok := e.connections[seasonId]; !ok {
		e.connections[seasonId] = make(map[*websocket.Conn]bool)
	}
	e.connections[seasonId][conn] = true
	e.lastPayload[seasonId] = payload
	e.mu.Unlock()

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			e.mu.Lock()
			delete(e.connections[seasonId], conn)
			if len(e.connections[seasonId]) == 0 {
				delete(e.connections, seasonId)
				delete(e.lastPayload, seasonId)
			}
			e.mu.Unlock()
			return
		}
	}
}

func (e *LeaderboardController) leaderboardPayload(seasonId int) ([]byte, error) {
	leaderboard, err := e.seasonUserService.GetLeaderboard(seasonId)
	if err != nil {
		return nil, err
	}
	return json.Marshal(utils.Map(leaderboard, toSeasonUserResponse))
}

func (e *LeaderboardController) StartLeaderboardUpdater() {
	go func() {
		for {
			e.mu.Lock()
			// only poll seasons someone is actually watching
			seasonIds := utils.Keys(e.connections)
			e.mu.Unlock()
			for _, seasonId := range seasonIds {
				payload, err := e.leaderboardPayload(seasonId)
				if err != nil {
					continue
				}
				e.mu.Lock()
				if string(payload) == string(e.lastPayload[seasonId]) {
					e.mu.Unlock()
					continue
				}
				e.lastPayload[seasonId] = payload
				for conn := range e.connections[seasonId] {
					if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
						conn.Close()
						delete(e.connections[seasonId], conn)
					}
				}
				e.mu.Unlock()
			}
			time.Sleep(5 * time.Second)
		}
	}()
}
