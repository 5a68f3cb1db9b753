package f1

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHeader(id PacketID) PacketHeader {
	return PacketHeader{
		PacketFormat:            PacketFormat2021,
		GameMajorVersion:        1,
		GameMinorVersion:        18,
		PacketVersion:           1,
		PacketID:                uint8(id),
		SessionUID:              0xDEADBEEFCAFEF00D,
		SessionTime:             83.25,
		FrameIdentifier:         4321,
		PlayerCarIndex:          19,
		SecondaryPlayerCarIndex: 255,
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	h := sampleHeader(IDLapData)
	buf := EncodeHeader(h)
	require.Len(t, buf, HeaderSize)

	got, err := DecodeHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestHeaderLittleEndianByteOrder(t *testing.T) {
	buf := EncodeHeader(sampleHeader(IDMotion))

	// 2021 = 0x07E5, low byte first.
	assert.Equal(t, byte(0xE5), buf[0])
	assert.Equal(t, byte(0x07), buf[1])
	assert.Equal(t, uint64(0xDEADBEEFCAFEF00D), binary.LittleEndian.Uint64(buf[6:14]))
	// 83.25 = 0x42A68000 as float32 bits.
	assert.Equal(t, uint32(0x42A68000), binary.LittleEndian.Uint32(buf[14:18]))
	assert.Equal(t, byte(255), buf[23])
}

func TestHeaderFieldOffsets(t *testing.T) {
	buf := EncodeHeader(sampleHeader(IDSessionHistory))

	assert.Equal(t, byte(1), buf[2], "game major at offset 2")
	assert.Equal(t, byte(18), buf[3], "game minor at offset 3")
	assert.Equal(t, byte(1), buf[4], "packet version at offset 4")
	assert.Equal(t, byte(11), buf[5], "packet id at offset 5")
	assert.Equal(t, uint32(4321), binary.LittleEndian.Uint32(buf[18:22]), "frame identifier at offset 18")
	assert.Equal(t, byte(19), buf[22], "player car index at offset 22")
}

func TestDecodeHeaderTruncated(t *testing.T) {
	buf := EncodeHeader(sampleHeader(IDMotion))

	_, err := DecodeHeader(buf[:HeaderSize-1])
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTruncatedBuffer)

	_, err = DecodeHeader(nil)
	assert.ErrorIs(t, err, ErrTruncatedBuffer)
}

func TestHeaderKey(t *testing.T) {
	h := sampleHeader(IDCarDamage)
	k := h.Key()
	assert.Equal(t, Key{Format: PacketFormat2021, Version: 1, ID: IDCarDamage}, k)
}

func TestPacketIDString(t *testing.T) {
	tests := []struct {
		id   PacketID
		want string
	}{
		{IDMotion, "motion"},
		{IDSession, "session"},
		{IDLapData, "lap_data"},
		{IDEvent, "event"},
		{IDParticipants, "participants"},
		{IDCarSetups, "car_setups"},
		{IDCarTelemetry, "car_telemetry"},
		{IDCarStatus, "car_status"},
		{IDFinalClassification, "final_classification"},
		{IDLobbyInfo, "lobby_info"},
		{IDCarDamage, "car_damage"},
		{IDSessionHistory, "session_history"},
		{PacketID(42), "unknown(42)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.id.String())
	}
}
