package network

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestEncodeDecode(t *testing.T) {
	raw, err := Encode(MsgTypePlayerAction, []byte(`{"type":"bid","bid":2}`))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(raw) != headerSize+22 {
		t.Fatalf("unexpected frame size %d", len(raw))
	}

	packet, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if packet.MsgID != MsgTypePlayerAction || packet.Length != 22 {
		t.Errorf("unexpected header: id=%d length=%d", packet.MsgID, packet.Length)
	}
	if !bytes.Equal(packet.Data, []byte(`{"type":"bid","bid":2}`)) {
		t.Errorf("unexpected payload %q", packet.Data)
	}
}

func TestDecode_Short(t *testing.T) {
	if _, err := Decode([]byte{0, 1}); !errors.Is(err, io.ErrShortBuffer) {
		t.Errorf("Expected io.ErrShortBuffer for a truncated header, got %v", err)
	}
	raw, _ := Encode(MsgTypeHeartbeat, []byte("abc"))
	if _, err := Decode(raw[:5]); !errors.Is(err, io.ErrShortBuffer) {
		t.Errorf("Expected io.ErrShortBuffer for a truncated payload, got %v", err)
	}
}

func TestEncode_TooLarge(t *testing.T) {
	if _, err := Encode(MsgTypeTableState, make([]byte, 1<<16)); !errors.Is(err, ErrPayloadTooLarge) {
		t.Errorf("Expected ErrPayloadTooLarge, got %v", err)
	}
}

func TestWSConnection_RoundTrip(t *testing.T) {
	upgrader := websocket.Upgrader{}
	received := make(chan *Packet, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn := NewWSConnection(ws)
		defer conn.Close()
		conn.SetHeartbeat(time.Second)

		packet, err := conn.ReadPacket()
		if err != nil {
			return
		}
		received <- packet
		SendJSON(conn, MsgTypeError, ErrorMessage{Code: "not_your_turn", Message: "not your turn"})
	}))
	defer srv.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	client := NewWSConnection(ws)
	defer client.Close()

	if err := client.Send(MsgTypeHeartbeat, nil); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	select {
	case p := <-received:
		if p.MsgID != MsgTypeHeartbeat || len(p.Data) != 0 {
			t.Errorf("server got unexpected packet %+v", p)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not receive the packet")
	}

	reply, err := client.ReadPacket()
	if err != nil {
		t.Fatalf("ReadPacket failed: %v", err)
	}
	if reply.MsgID != MsgTypeError || !strings.Contains(string(reply.Data), "not_your_turn") {
		t.Errorf("unexpected reply %d %s", reply.MsgID, reply.Data)
	}
}
