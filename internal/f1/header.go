package f1

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	// HeaderSize is the byte length of the common header prefix carried by
	// every telemetry packet.
	HeaderSize = 24

	// PacketFormat2021 is the packet format identifier of the one season
	// this schema set supports.
	PacketFormat2021 = 2021

	// DefaultPort is the UDP port the game broadcasts telemetry on unless
	// reconfigured in its setup screen.
	DefaultPort = 20777
)

// PacketID identifies a top-level packet variant.
type PacketID uint8

const (
	IDMotion PacketID = iota
	IDSession
	IDLapData
	IDEvent
	IDParticipants
	IDCarSetups
	IDCarTelemetry
	IDCarStatus
	IDFinalClassification
	IDLobbyInfo
	IDCarDamage
	IDSessionHistory
)

func (id PacketID) String() string {
	switch id {
	case IDMotion:
		return "motion"
	case IDSession:
		return "session"
	case IDLapData:
		return "lap_data"
	case IDEvent:
		return "event"
	case IDParticipants:
		return "participants"
	case IDCarSetups:
		return "car_setups"
	case IDCarTelemetry:
		return "car_telemetry"
	case IDCarStatus:
		return "car_status"
	case IDFinalClassification:
		return "final_classification"
	case IDLobbyInfo:
		return "lobby_info"
	case IDCarDamage:
		return "car_damage"
	case IDSessionHistory:
		return "session_history"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(id))
	}
}

// Key is the dispatch triple used for registry lookup.
type Key struct {
	Format  uint16
	Version uint8
	ID      PacketID
}

// PacketHeader is the fixed 24-byte prefix present verbatim at the start of
// every packet.
type PacketHeader struct {
	PacketFormat            uint16  `json:"packet_format"`
	GameMajorVersion        uint8   `json:"game_major_version"`
	GameMinorVersion        uint8   `json:"game_minor_version"`
	PacketVersion           uint8   `json:"packet_version"`
	PacketID                uint8   `json:"packet_id"`
	SessionUID              uint64  `json:"session_uid"`
	SessionTime             float32 `json:"session_time"`
	FrameIdentifier         uint32  `json:"frame_identifier"`
	PlayerCarIndex          uint8   `json:"player_car_index"`
	SecondaryPlayerCarIndex uint8   `json:"secondary_player_car_index"` // 255 = no second player
}

// Key returns the dispatch triple for this header.
func (h PacketHeader) Key() Key {
	return Key{Format: h.PacketFormat, Version: h.PacketVersion, ID: PacketID(h.PacketID)}
}

// DecodeHeader parses the common header prefix from raw bytes. Pure; the
// buffer may extend past the header.
func DecodeHeader(data []byte) (PacketHeader, error) {
	if len(data) < HeaderSize {
		return PacketHeader{}, fmt.Errorf("%w: header needs %d bytes, got %d",
			ErrTruncatedBuffer, HeaderSize, len(data))
	}
	return PacketHeader{
		PacketFormat:            binary.LittleEndian.Uint16(data[0:2]),
		GameMajorVersion:        data[2],
		GameMinorVersion:        data[3],
		PacketVersion:           data[4],
		PacketID:                data[5],
		SessionUID:              binary.LittleEndian.Uint64(data[6:14]),
		SessionTime:             math.Float32frombits(binary.LittleEndian.Uint32(data[14:18])),
		FrameIdentifier:         binary.LittleEndian.Uint32(data[18:22]),
		PlayerCarIndex:          data[22],
		SecondaryPlayerCarIndex: data[23],
	}, nil
}

// EncodeHeader builds the 24-byte little-endian header prefix.
func EncodeHeader(h PacketHeader) []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint16(buf[0:2], h.PacketFormat)
	buf[2] = h.GameMajorVersion
	buf[3] = h.GameMinorVersion
	buf[4] = h.PacketVersion
	buf[5] = h.PacketID
	binary.LittleEndian.PutUint64(buf[6:14], h.SessionUID)
	binary.LittleEndian.PutUint32(buf[14:18], math.Float32bits(h.SessionTime))
	binary.LittleEndian.PutUint32(buf[18:22], h.FrameIdentifier)
	buf[22] = h.PlayerCarIndex
	buf[23] = h.SecondaryPlayerCarIndex
	return buf
}
