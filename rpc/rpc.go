package rpc

import (
	"errors"
	"io"
	"net"
	"net/rpc"

	"github.com/wfunc/whist/logger"
	"github.com/wfunc/whist/models"
	"github.com/wfunc/whist/network"
	"github.com/wfunc/whist/room"
	"github.com/wfunc/whist/services"
)

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
	server   *rpc.Server
}

// NewServer listens on addr and registers the given services.
func NewServer(addr string, rcvrs ...interface{}) (*Server, error) {
	srv := rpc.NewServer()
	for _, rcvr := range rcvrs {
		if err := srv.Register(rcvr); err != nil {
			return nil, err
		}
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  listener.Addr().String(),
		server:   srv,
	}, nil
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.address
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go s.ServeConn(conn)
	}
}

// ServeConn serves a single client connection.
func (s *Server) ServeConn(conn io.ReadWriteCloser) {
	s.server.ServeConn(conn)
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// TableService exposes read-only table and player queries.
type TableService struct {
	rooms         *room.Manager
	playerService *services.PlayerService
}

func NewTableService(rooms *room.Manager, ps *services.PlayerService) *TableService {
	return &TableService{rooms: rooms, playerService: ps}
}

type ListTablesArgs struct {
	// State filters by table state when set.
	State string
}

type ListTablesReply struct {
	Tables []network.TableSummary
}

func (ts *TableService) ListTables(args *ListTablesArgs, reply *ListTablesReply) error {
	for _, r := range ts.rooms.List() {
		summary := r.Summary()
		if args.State != "" && summary.State != args.State {
			continue
		}
		reply.Tables = append(reply.Tables, summary)
	}
	return nil
}

type GetPlayerStatsArgs struct {
	PlayerID string
}

type GetPlayerStatsReply struct {
	Stats models.PlayerStats
}

func (ts *TableService) GetPlayerStats(args *GetPlayerStatsArgs, reply *GetPlayerStatsReply) error {
	stats, err := ts.playerService.GetPlayerStats(args.PlayerID)
	if err != nil {
		return err
	}
	reply.Stats = *stats
	return nil
}
