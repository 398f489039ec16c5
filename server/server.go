package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/wfunc/whist/broadcast"
	"github.com/wfunc/whist/config"
	"github.com/wfunc/whist/event"
	"github.com/wfunc/whist/logger"
	"github.com/wfunc/whist/monitor"
	"github.com/wfunc/whist/network"
	"github.com/wfunc/whist/persistence"
	"github.com/wfunc/whist/room"
	whistrpc "github.com/wfunc/whist/rpc"
	"github.com/wfunc/whist/services"
	"github.com/wfunc/whist/session"
	"github.com/wfunc/whist/state"
	"github.com/wfunc/whist/timer"
)

type GameServer struct {
	cfg            *config.Config
	upgrader       websocket.Upgrader
	roomManager    *room.Manager
	sessionManager *session.Manager
	playerService  *services.PlayerService
	broadcaster    *broadcast.RoomBroadcaster
	rpcServer      *whistrpc.Server
	monitor        *monitor.Monitor
	timers         *timer.TimerManager
	db             persistence.Database
	httpServer     *http.Server
	shutdownChan   chan struct{}
	shutdownOnce   sync.Once
}

func NewGameServer(cfg *config.Config, db persistence.Database, mon *monitor.Monitor) (*GameServer, error) {
	s := &GameServer{
		cfg:            cfg,
		roomManager:    room.NewRoomManager(),
		sessionManager: session.NewManager(),
		playerService:  services.NewPlayerService(db),
		monitor:        mon,
		db:             db,
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 允许所有跨域请求
			},
		},
	}

	// 初始化广播器
	s.broadcaster = broadcast.NewRoomBroadcaster(s.roomManager, s.sessionManager)

	// 初始化RPC服务器
	rpcServer, err := whistrpc.NewServer(cfg.Server.RPCAddress,
		whistrpc.NewTableService(s.roomManager, s.playerService))
	if err != nil {
		return nil, fmt.Errorf("create rpc server: %w", err)
	}
	s.rpcServer = rpcServer

	s.timers = timer.NewTimerManager(time.Second)
	return s, nil
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()

	if timeout := s.cfg.Server.SessionTimeout; timeout > 0 {
		s.timers.AddTimer(timeout, timeout/2, s.sweepIdleSessions)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	s.httpServer = &http.Server{Addr: s.cfg.Server.HTTPAddress, Handler: mux}

	logger.Log.Infof("Game server listening on %s", s.cfg.Server.HTTPAddress)
	if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *GameServer) Shutdown() {
	s.shutdownOnce.Do(func() {
		close(s.shutdownChan)
		s.rpcServer.Stop()
		s.timers.Stop()
		if s.httpServer != nil {
			s.httpServer.Close()
		}
		for _, r := range s.roomManager.List() {
			s.roomManager.RemoveRoom(r.ID)
		}
	})
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(network.NewWSConnection(conn))
}

func (s *GameServer) handleConnection(conn network.Connection) {
	sess := session.NewSession(uuid.NewString(), conn)
	s.sessionManager.Add(sess)
	s.monitor.IncOnlinePlayers()

	logger.Log.Infof("New connection from %s, session ID: %s", conn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", conn.RemoteAddr(), sess.GetID())
		s.leaveTable(sess)
		s.sessionManager.Remove(sess.GetID())
		s.monitor.DecOnlinePlayers()
		conn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			packet, err := conn.ReadPacket()
			if err != nil {
				return
			}
			s.handlePacket(sess, packet)
		}
	}
}

func (s *GameServer) handlePacket(sess *session.Session, packet *network.Packet) {
	s.monitor.IncPacketsReceived()
	sess.Touch()

	switch packet.MsgID {
	case network.MsgTypeHeartbeat:
		sess.Send(network.MsgTypeHeartbeat, nil)
	case network.MsgTypeCreateTable:
		s.handleCreateTable(sess, packet)
	case network.MsgTypeJoinTable:
		s.handleJoinTable(sess, packet)
	case network.MsgTypeLeaveTable:
		s.leaveTable(sess)
		sess.SendJSON(network.MsgTypeLeaveTable, struct{}{})
	case network.MsgTypeListTables:
		s.handleListTables(sess)
	case network.MsgTypePlayerAction:
		s.handlePlayerAction(sess, packet)
	default:
		logger.Log.Infof("Unknown message type: %d", packet.MsgID)
		s.sendError(sess, fmt.Errorf("%w: unknown message type %d", ErrBadRequest, packet.MsgID))
	}
}

func (s *GameServer) handleCreateTable(sess *session.Session, packet *network.Packet) {
	var req network.CreateTableRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendError(sess, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if tableID, _ := sess.Table(); tableID != "" {
		s.sendError(sess, ErrAlreadySeated)
		return
	}

	tableID := uuid.NewString()
	name := req.Table
	if name == "" {
		name = req.Name + "'s table"
	}
	r := s.roomManager.CreateRoom(tableID, name, s.cfg.Game.Players, s.tableSettings(), s.broadcaster, s.tableListeners(tableID)...)

	if err := r.AddPlayer(sess, req.Name); err != nil {
		s.roomManager.RemoveRoom(tableID)
		s.sendError(sess, err)
		return
	}

	logger.Log.Infof("Session %s created table %s", sess.GetID(), tableID)
	s.monitor.SetActiveTables(s.roomManager.Count())
	sess.SendJSON(network.MsgTypeCreateTable, network.TableJoined{TableID: tableID, Name: req.Name})
	s.broadcastTables()
}

func (s *GameServer) handleJoinTable(sess *session.Session, packet *network.Packet) {
	var req network.JoinTableRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendError(sess, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if tableID, _ := sess.Table(); tableID != "" {
		s.sendError(sess, ErrAlreadySeated)
		return
	}

	var r *room.Room
	if req.TableID == "" {
		r = s.roomManager.FindAvailableRoom()
	} else {
		r, _ = s.roomManager.GetRoom(req.TableID)
	}
	if r == nil {
		s.sendError(sess, ErrTableNotFound)
		return
	}

	if err := r.AddPlayer(sess, req.Name); err != nil {
		s.sendError(sess, err)
		return
	}

	logger.Log.Infof("Session %s joined table %s as %s", sess.GetID(), r.ID, req.Name)
	sess.SendJSON(network.MsgTypeJoinTable, network.TableJoined{TableID: r.ID, Name: req.Name})
	s.broadcastTables()
}

// leaveTable frees the session's seat and closes the table once no
// connected player is left at it.
func (s *GameServer) leaveTable(sess *session.Session) {
	tableID, _ := sess.Table()
	if tableID == "" {
		return
	}
	r, exists := s.roomManager.GetRoom(tableID)
	if !exists {
		sess.ClearTable()
		return
	}

	r.RemovePlayer(sess.GetID())
	if r.HumanCount() == 0 {
		logger.Log.Infof("Closing empty table %s", tableID)
		s.roomManager.RemoveRoom(tableID)
		s.monitor.SetActiveTables(s.roomManager.Count())
	}
	s.broadcastTables()
}

func (s *GameServer) handleListTables(sess *session.Session) {
	sess.SendJSON(network.MsgTypeListTables, s.tableSummaries())
}

func (s *GameServer) handlePlayerAction(sess *session.Session, packet *network.Packet) {
	tableID, _ := sess.Table()
	if tableID == "" {
		logger.Log.Warnf("Session %s sent game action but is not at a table", sess.GetID())
		s.reject(sess, room.ErrNotSeated)
		return
	}

	r, exists := s.roomManager.GetRoom(tableID)
	if !exists {
		logger.Log.Errorf("Table %s not found for session %s", tableID, sess.GetID())
		s.reject(sess, ErrTableNotFound)
		return
	}

	start := time.Now()
	err := r.HandleAction(sess.GetID(), packet.Data)
	s.monitor.ObserveActionLatency(time.Since(start))
	if err != nil {
		logger.Log.Debugf("Action rejected at table %s: %v", tableID, err)
		s.reject(sess, err)
	}
}

func (s *GameServer) reject(sess *session.Session, err error) {
	s.monitor.IncRejectedAction(rejectionReason(err))
	s.sendError(sess, err)
}

func (s *GameServer) sendError(sess *session.Session, err error) {
	msg := network.ErrorMessage{Code: rejectionReason(err), Message: err.Error()}
	if sendErr := sess.SendJSON(network.MsgTypeError, msg); sendErr != nil {
		logger.Log.Debugf("Failed to send error to session %s: %v", sess.GetID(), sendErr)
	}
}

func (s *GameServer) tableSummaries() []network.TableSummary {
	rooms := s.roomManager.List()
	summaries := make([]network.TableSummary, 0, len(rooms))
	for _, r := range rooms {
		summaries = append(summaries, r.Summary())
	}
	return summaries
}

// broadcastTables pushes the table list to every connected session.
func (s *GameServer) broadcastTables() {
	data, err := json.Marshal(s.tableSummaries())
	if err != nil {
		logger.Log.Errorf("Error marshalling table list: %v", err)
		return
	}
	s.broadcaster.BroadcastToAll(network.MsgTypeListTables, data)
}

func (s *GameServer) sweepIdleSessions() {
	cutoff := time.Now().Add(-s.cfg.Server.SessionTimeout)
	for _, sess := range s.sessionManager.Idle(cutoff) {
		logger.Log.Infof("Closing idle session %s", sess.GetID())
		sess.Close()
	}
}

func (s *GameServer) tableSettings() state.Settings {
	g := s.cfg.Game
	return state.Settings{
		TrickPause:   g.TrickPause,
		RoundPause:   g.RoundPause,
		BotFillDelay: g.BotFillDelay,
		TickInterval: g.TickInterval,
		Seed:         g.Seed,
	}
}

func (s *GameServer) tableListeners(tableID string) []event.Listener {
	return []event.Listener{
		broadcast.NewEventForwarder(s.broadcaster, tableID),
		services.NewGameRecorder(s.db, tableID),
		s.monitor,
		event.NewZapListener(logger.Named("table").With(zap.String("table", tableID))),
	}
}
