package network

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"io"
	"math"
)

const headerSize = 4

var ErrPayloadTooLarge = errors.New("payload too large")

type Packet struct {
	MsgID  uint16
	Data   []byte
	Length uint16
}

// Encode frames data as 2 bytes message id, 2 bytes length, then the payload.
func Encode(msgID uint16, data []byte) ([]byte, error) {
	if len(data) > math.MaxUint16 {
		return nil, ErrPayloadTooLarge
	}
	packet := make([]byte, headerSize+len(data))
	binary.BigEndian.PutUint16(packet[0:2], msgID)
	binary.BigEndian.PutUint16(packet[2:4], uint16(len(data)))
	copy(packet[headerSize:], data)
	return packet, nil
}

func Decode(raw []byte) (*Packet, error) {
	if len(raw) < headerSize {
		return nil, io.ErrShortBuffer
	}

	msgID := binary.BigEndian.Uint16(raw[0:2])
	length := binary.BigEndian.Uint16(raw[2:4])

	if len(raw) < headerSize+int(length) {
		return nil, io.ErrShortBuffer
	}

	return &Packet{
		MsgID:  msgID,
		Length: length,
		Data:   raw[headerSize : headerSize+int(length)],
	}, nil
}

// SendJSON marshals v and sends it over conn.
func SendJSON(conn Connection, msgID uint16, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return conn.Send(msgID, data)
}
