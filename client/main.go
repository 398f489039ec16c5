package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wfunc/whist/network"
)

const usage = `commands:
  create <name> [table]   create a table and sit down
  join <name> [table-id]  join a table (any waiting table without an id)
  list                    list tables
  bid <n>                 bid for the current round
  play <card>             play a card, e.g. "play AH" or "play 10 of Spades"
  leave                   leave the table
  quit`

// send formats and sends a message to the WebSocket server.
func send(c *websocket.Conn, msgID uint16, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	packet, err := network.Encode(msgID, data)
	if err != nil {
		return err
	}
	return c.WriteMessage(websocket.BinaryMessage, packet)
}

func printPacket(p *network.Packet) {
	switch p.MsgID {
	case network.MsgTypeTableState:
		var view network.TableView
		if err := json.Unmarshal(p.Data, &view); err != nil {
			log.Printf("bad table view: %v", err)
			return
		}
		trump := view.Trump
		if view.NoTrump {
			trump = "none"
		}
		log.Printf("round %d (%d cards), trump %s, turn: %s", view.Round, view.HandSize, trump, view.ActivePlayer)
		log.Printf("  trick: %v  won: %v  bids: %v", view.Trick, view.TricksWon, view.Bids)
		log.Printf("  hand: %s", strings.Join(view.Hand, ", "))
		if len(view.Legal) > 0 {
			log.Printf("  your turn, legal: %s", strings.Join(view.Legal, ", "))
		}
	case network.MsgTypeGameEvent:
		var e struct {
			Message string `json:"message"`
		}
		json.Unmarshal(p.Data, &e)
		log.Printf("* %s", e.Message)
	case network.MsgTypeGameStart:
		var g network.GameStart
		json.Unmarshal(p.Data, &g)
		log.Printf("game started at %s: %s", g.TableID, strings.Join(g.Players, ", "))
	case network.MsgTypeError:
		var e network.ErrorMessage
		json.Unmarshal(p.Data, &e)
		log.Printf("! %s (%s)", e.Message, e.Code)
	case network.MsgTypeHeartbeat:
	default:
		log.Printf("<- RECV (ID: %d): %s", p.MsgID, string(p.Data))
	}
}

// command turns an input line into a packet; ok is false for unknown input.
func command(line string) (msgID uint16, body interface{}, ok bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, nil, false
	}
	args := fields[1:]
	switch fields[0] {
	case "create":
		if len(args) == 0 {
			return 0, nil, false
		}
		return network.MsgTypeCreateTable, network.CreateTableRequest{Name: args[0], Table: strings.Join(args[1:], " ")}, true
	case "join":
		if len(args) == 0 {
			return 0, nil, false
		}
		req := network.JoinTableRequest{Name: args[0]}
		if len(args) > 1 {
			req.TableID = args[1]
		}
		return network.MsgTypeJoinTable, req, true
	case "list":
		return network.MsgTypeListTables, struct{}{}, true
	case "leave":
		return network.MsgTypeLeaveTable, struct{}{}, true
	case "bid":
		if len(args) != 1 {
			return 0, nil, false
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, nil, false
		}
		return network.MsgTypePlayerAction, network.ActionRequest{Type: network.ActionBid, Bid: n}, true
	case "play":
		if len(args) == 0 {
			return 0, nil, false
		}
		return network.MsgTypePlayerAction, network.ActionRequest{Type: network.ActionPlayCard, Card: strings.Join(args, " ")}, true
	}
	return 0, nil, false
}

func main() {
	addr := flag.String("addr", "localhost:8080", "server address")
	flag.Parse()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			p, err := network.Decode(message)
			if err != nil {
				log.Printf("Received invalid packet of size %d", len(message))
				continue
			}
			printPacket(p)
		}
	}()

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- strings.TrimSpace(scanner.Text())
		}
		close(lines)
	}()

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	log.Println(usage)
	for {
		select {
		case <-done:
			return
		case <-heartbeat.C:
			if err := send(c, network.MsgTypeHeartbeat, struct{}{}); err != nil {
				log.Println("Write error:", err)
				return
			}
		case <-interrupt:
			log.Println("Interrupt received, closing connection.")
			err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			if err != nil {
				log.Println("Write close error:", err)
			}
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		case line, ok := <-lines:
			if !ok || line == "quit" {
				return
			}
			msgID, body, valid := command(line)
			if !valid {
				log.Println(usage)
				continue
			}
			if err := send(c, msgID, body); err != nil {
				log.Println("Write error:", err)
				return
			}
		}
	}
}
