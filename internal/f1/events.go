package f1

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Event union region size on the wire. Every event payload overlays the same
// byte region, sized to the largest shape (Flashback: uint32 + float32).
const (
	EventCodeLength = 4
	eventUnionSize  = 8
)

// Event string codes carried in the 4-byte region after the header.
const (
	EventFastestLap                = "FTLP"
	EventRetirement                = "RTMT"
	EventTeamMateInPits            = "TMPT"
	EventRaceWinner                = "RCWN"
	EventPenalty                   = "PENA"
	EventSpeedTrap                 = "SPTP"
	EventStartLights               = "STLG"
	EventDriveThroughPenaltyServed = "DTSV"
	EventStopGoPenaltyServed       = "SGSV"
	EventFlashback                 = "FLBK"
	EventButtons                   = "BUTN"
)

// EventDetail is one resolved shape of the event payload union. The shape is
// selected by the 4-character code in the enclosing packet, not by anything
// inside the union region itself.
type EventDetail interface {
	// EventCode returns the 4-character string code that selects this shape.
	EventCode() string
}

// FastestLap reports a new fastest lap of the session.
type FastestLap struct {
	VehicleIdx uint8   `json:"vehicle_idx"`
	LapTime    float32 `json:"lap_time"` // seconds
}

func (FastestLap) EventCode() string { return EventFastestLap }

// Retirement reports a car retiring from the session.
type Retirement struct {
	VehicleIdx uint8 `json:"vehicle_idx"`
}

func (Retirement) EventCode() string { return EventRetirement }

// TeamMateInPits reports the player's team mate entering the pits.
type TeamMateInPits struct {
	VehicleIdx uint8 `json:"vehicle_idx"`
}

func (TeamMateInPits) EventCode() string { return EventTeamMateInPits }

// RaceWinner reports the race winner being decided.
type RaceWinner struct {
	VehicleIdx uint8 `json:"vehicle_idx"`
}

func (RaceWinner) EventCode() string { return EventRaceWinner }

// Penalty reports a penalty being issued.
type Penalty struct {
	PenaltyType      uint8 `json:"penalty_type"`
	InfringementType uint8 `json:"infringement_type"`
	VehicleIdx       uint8 `json:"vehicle_idx"`
	OtherVehicleIdx  uint8 `json:"other_vehicle_idx"`
	Time             uint8 `json:"time"` // 255 if not applicable
	LapNum           uint8 `json:"lap_num"`
	PlacesGained     uint8 `json:"places_gained"`
}

func (Penalty) EventCode() string { return EventPenalty }

// SpeedTrap reports a car triggering the speed trap.
type SpeedTrap struct {
	VehicleIdx              uint8   `json:"vehicle_idx"`
	Speed                   float32 `json:"speed"` // km/h
	OverallFastestInSession uint8   `json:"overall_fastest_in_session"`
	DriverFastestInSession  uint8   `json:"driver_fastest_in_session"`
}

func (SpeedTrap) EventCode() string { return EventSpeedTrap }

// StartLights reports the number of start lights currently lit.
type StartLights struct {
	NumLights uint8 `json:"num_lights"`
}

func (StartLights) EventCode() string { return EventStartLights }

// DriveThroughPenaltyServed reports a drive-through penalty being served.
type DriveThroughPenaltyServed struct {
	VehicleIdx uint8 `json:"vehicle_idx"`
}

func (DriveThroughPenaltyServed) EventCode() string { return EventDriveThroughPenaltyServed }

// StopGoPenaltyServed reports a stop-go penalty being served.
type StopGoPenaltyServed struct {
	VehicleIdx uint8 `json:"vehicle_idx"`
}

func (StopGoPenaltyServed) EventCode() string { return EventStopGoPenaltyServed }

// Flashback reports the frame and session time a flashback jumped to.
type Flashback struct {
	FlashbackFrameIdentifier uint32  `json:"flashback_frame_identifier"`
	FlashbackSessionTime     float32 `json:"flashback_session_time"`
}

func (Flashback) EventCode() string { return EventFlashback }

// Buttons reports which buttons are currently pressed as bit flags.
type Buttons struct {
	ButtonStatus uint32 `json:"button_status"`
}

func (Buttons) EventCode() string { return EventButtons }

// eventShapes maps string codes to fresh detail values for the decoder.
var eventShapes = map[string]func() EventDetail{
	EventFastestLap:                func() EventDetail { return &FastestLap{} },
	EventRetirement:                func() EventDetail { return &Retirement{} },
	EventTeamMateInPits:            func() EventDetail { return &TeamMateInPits{} },
	EventRaceWinner:                func() EventDetail { return &RaceWinner{} },
	EventPenalty:                   func() EventDetail { return &Penalty{} },
	EventSpeedTrap:                 func() EventDetail { return &SpeedTrap{} },
	EventStartLights:               func() EventDetail { return &StartLights{} },
	EventDriveThroughPenaltyServed: func() EventDetail { return &DriveThroughPenaltyServed{} },
	EventStopGoPenaltyServed:       func() EventDetail { return &StopGoPenaltyServed{} },
	EventFlashback:                 func() EventDetail { return &Flashback{} },
	EventButtons:                   func() EventDetail { return &Buttons{} },
}

// EventPacket reports a single session event. The details field holds the
// shape selected by the string code.
type EventPacket struct {
	Header          PacketHeader           `json:"header"`
	EventStringCode [EventCodeLength]uint8 `json:"event_string_code"`
	Details         EventDetail            `json:"event_details"`
}

func (p *EventPacket) PacketHeader() PacketHeader { return p.Header }

// Code returns the event string code as text.
func (p *EventPacket) Code() string { return string(p.EventStringCode[:]) }

// DecodeEventDetail decodes the shape selected by code from the front of the
// union region. Bytes beyond the shape's own size are ignored.
func DecodeEventDetail(code string, data []byte) (EventDetail, error) {
	mk, ok := eventShapes[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventCode, code)
	}
	if len(data) < eventUnionSize {
		return nil, fmt.Errorf("%w: event details need %d bytes, have %d",
			ErrTruncatedBuffer, eventUnionSize, len(data))
	}
	d := mk()
	switch v := d.(type) {
	case *FastestLap:
		v.VehicleIdx = data[0]
		v.LapTime = math.Float32frombits(binary.LittleEndian.Uint32(data[1:]))
	case *Retirement:
		v.VehicleIdx = data[0]
	case *TeamMateInPits:
		v.VehicleIdx = data[0]
	case *RaceWinner:
		v.VehicleIdx = data[0]
	case *Penalty:
		v.PenaltyType = data[0]
		v.InfringementType = data[1]
		v.VehicleIdx = data[2]
		v.OtherVehicleIdx = data[3]
		v.Time = data[4]
		v.LapNum = data[5]
		v.PlacesGained = data[6]
	case *SpeedTrap:
		v.VehicleIdx = data[0]
		v.Speed = math.Float32frombits(binary.LittleEndian.Uint32(data[1:]))
		v.OverallFastestInSession = data[5]
		v.DriverFastestInSession = data[6]
	case *StartLights:
		v.NumLights = data[0]
	case *DriveThroughPenaltyServed:
		v.VehicleIdx = data[0]
	case *StopGoPenaltyServed:
		v.VehicleIdx = data[0]
	case *Flashback:
		v.FlashbackFrameIdentifier = binary.LittleEndian.Uint32(data)
		v.FlashbackSessionTime = math.Float32frombits(binary.LittleEndian.Uint32(data[4:]))
	case *Buttons:
		v.ButtonStatus = binary.LittleEndian.Uint32(data)
	}
	return d, nil
}

// EncodeEventDetail writes the shape's bytes at the front of a buffer sized
// to the union's maximum variant and zero-fills the rest.
func EncodeEventDetail(d EventDetail) ([]byte, error) {
	data := make([]byte, eventUnionSize)
	switch v := d.(type) {
	case *FastestLap:
		data[0] = v.VehicleIdx
		binary.LittleEndian.PutUint32(data[1:], math.Float32bits(v.LapTime))
	case *Retirement:
		data[0] = v.VehicleIdx
	case *TeamMateInPits:
		data[0] = v.VehicleIdx
	case *RaceWinner:
		data[0] = v.VehicleIdx
	case *Penalty:
		data[0] = v.PenaltyType
		data[1] = v.InfringementType
		data[2] = v.VehicleIdx
		data[3] = v.OtherVehicleIdx
		data[4] = v.Time
		data[5] = v.LapNum
		data[6] = v.PlacesGained
	case *SpeedTrap:
		data[0] = v.VehicleIdx
		binary.LittleEndian.PutUint32(data[1:], math.Float32bits(v.Speed))
		data[5] = v.OverallFastestInSession
		data[6] = v.DriverFastestInSession
	case *StartLights:
		data[0] = v.NumLights
	case *DriveThroughPenaltyServed:
		data[0] = v.VehicleIdx
	case *StopGoPenaltyServed:
		data[0] = v.VehicleIdx
	case *Flashback:
		binary.LittleEndian.PutUint32(data, v.FlashbackFrameIdentifier)
		binary.LittleEndian.PutUint32(data[4:], math.Float32bits(v.FlashbackSessionTime))
	case *Buttons:
		binary.LittleEndian.PutUint32(data, v.ButtonStatus)
	default:
		return nil, fmt.Errorf("f1: cannot encode event details of type %T", d)
	}
	return data, nil
}

// eventCodec decodes the event packet. The union tail means the generic
// schema engine cannot drive it.
type eventCodec struct{}

func (eventCodec) Size() int { return HeaderSize + EventCodeLength + eventUnionSize }

func (c eventCodec) Decode(data []byte) (Packet, error) {
	if len(data) < c.Size() {
		return nil, fmt.Errorf("%w: EventPacket needs %d bytes, have %d",
			ErrTruncatedBuffer, c.Size(), len(data))
	}
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	p := &EventPacket{Header: h}
	copy(p.EventStringCode[:], data[HeaderSize:HeaderSize+EventCodeLength])
	d, err := DecodeEventDetail(p.Code(), data[HeaderSize+EventCodeLength:])
	if err != nil {
		return nil, err
	}
	p.Details = d
	return p, nil
}

func (c eventCodec) Encode(pkt Packet) ([]byte, error) {
	p, ok := pkt.(*EventPacket)
	if !ok {
		return nil, fmt.Errorf("f1: codec for EventPacket cannot encode %T", pkt)
	}
	details, err := EncodeEventDetail(p.Details)
	if err != nil {
		return nil, err
	}
	data := make([]byte, 0, c.Size())
	data = append(data, EncodeHeader(p.Header)...)
	data = append(data, p.EventStringCode[:]...)
	data = append(data, details...)
	return data, nil
}
