package f1

import "fmt"

// Registry maps a (format, version, packet id) triple to the codec that
// decodes that packet. Lookup misses signal an unsupported protocol version,
// not a malformed datagram.
type Registry struct {
	codecs map[Key]Codec
}

// NewRegistry builds the dispatch table for the 2021 season, packet version 1.
// Building the registry also builds every packet schema, so later decodes
// only take cache hits.
func NewRegistry() *Registry {
	r := &Registry{codecs: make(map[Key]Codec)}
	register := func(id PacketID, c Codec) {
		r.codecs[Key{Format: PacketFormat2021, Version: 1, ID: id}] = c
	}
	register(IDMotion, newRecordCodec(&MotionPacket{}))
	register(IDSession, newRecordCodec(&SessionPacket{}))
	register(IDLapData, newRecordCodec(&LapDataPacket{}))
	register(IDEvent, eventCodec{})
	register(IDParticipants, newRecordCodec(&ParticipantsPacket{}))
	register(IDCarSetups, newRecordCodec(&CarSetupsPacket{}))
	register(IDCarTelemetry, newRecordCodec(&CarTelemetryPacket{}))
	register(IDCarStatus, newRecordCodec(&CarStatusPacket{}))
	register(IDFinalClassification, newRecordCodec(&FinalClassificationPacket{}))
	register(IDLobbyInfo, newRecordCodec(&LobbyInfoPacket{}))
	register(IDCarDamage, newRecordCodec(&CarDamagePacket{}))
	register(IDSessionHistory, newRecordCodec(&SessionHistoryPacket{}))
	return r
}

// Lookup returns the codec for a header triple.
func (r *Registry) Lookup(k Key) (Codec, error) {
	c, ok := r.codecs[k]
	if !ok {
		return nil, fmt.Errorf("%w: format=%d version=%d id=%d",
			ErrUnknownPacket, k.Format, k.Version, k.ID)
	}
	return c, nil
}

// MaxPacketSize reports the wire size of the largest registered packet,
// which bounds the receive buffer a listener needs.
func (r *Registry) MaxPacketSize() int {
	max := 0
	for _, c := range r.codecs {
		if c.Size() > max {
			max = c.Size()
		}
	}
	return max
}

// Decode peeks the header of a full datagram, looks up the codec for its
// triple and hands the codec the whole buffer, header included.
func (r *Registry) Decode(data []byte) (Packet, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	c, err := r.Lookup(h.Key())
	if err != nil {
		return nil, err
	}
	return c.Decode(data)
}
