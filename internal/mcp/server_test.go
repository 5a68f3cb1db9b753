package mcp_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrishannam/Telemetry-F1-2021/internal/f1"
	internalmcp "github.com/chrishannam/Telemetry-F1-2021/internal/mcp"
	"github.com/chrishannam/Telemetry-F1-2021/internal/state"
)

// mockPacketSource controls what Latest returns in tests.
type mockPacketSource struct {
	packets map[f1.PacketID]f1.Packet
	err     error
}

func (m *mockPacketSource) Latest(id f1.PacketID) (f1.Packet, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.packets[id]
	if !ok {
		return nil, state.ErrStale
	}
	return p, nil
}

func header(id f1.PacketID) f1.PacketHeader {
	return f1.PacketHeader{
		PacketFormat:            f1.PacketFormat2021,
		GameMajorVersion:        1,
		GameMinorVersion:        18,
		PacketVersion:           1,
		PacketID:                uint8(id),
		SessionUID:              123456789,
		SessionTime:             321.25,
		FrameIdentifier:         9001,
		PlayerCarIndex:          4,
		SecondaryPlayerCarIndex: 255,
	}
}

func sampleSource() *mockPacketSource {
	session := &f1.SessionPacket{
		Header:      header(f1.IDSession),
		TotalLaps:   52,
		TrackLength: 5891,
		TrackID:     9,
	}

	telemetry := &f1.CarTelemetryPacket{Header: header(f1.IDCarTelemetry), SuggestedGear: 4}
	telemetry.CarTelemetryData[4].Speed = 301
	telemetry.CarTelemetryData[4].EngineRPM = 11800
	telemetry.CarTelemetryData[4].Gear = 8
	telemetry.CarTelemetryData[7].Speed = 120

	laps := &f1.LapDataPacket{Header: header(f1.IDLapData)}
	laps.LapData[4].CarPosition = 3
	laps.LapData[4].CurrentLapNum = 12
	laps.LapData[4].LastLapTimeInMS = 92345

	return &mockPacketSource{packets: map[f1.PacketID]f1.Packet{
		f1.IDSession:      session,
		f1.IDCarTelemetry: telemetry,
		f1.IDLapData:      laps,
	}}
}

// callTool connects the MCP server via in-memory transports and calls a tool.
func callTool(t *testing.T, src internalmcp.PacketSource, name string, args map[string]any) *mcpsdk.CallToolResult {
	t.Helper()
	ctx := context.Background()

	srv := internalmcp.NewServer(src)
	st, ct := mcpsdk.NewInMemoryTransports()

	_, err := srv.Connect(ctx, st)
	require.NoError(t, err)

	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test", Version: "1.0"}, nil)
	cs, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })

	res, err := cs.CallTool(ctx, &mcpsdk.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	return res
}

func decodeText(t *testing.T, res *mcpsdk.CallToolResult) map[string]any {
	t.Helper()
	require.Len(t, res.Content, 1)
	text := res.Content[0].(*mcpsdk.TextContent).Text
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &m))
	return m
}

func TestGetSessionSuccess(t *testing.T) {
	res := callTool(t, sampleSource(), "get_session", nil)

	require.False(t, res.IsError)
	m := decodeText(t, res)

	assert.EqualValues(t, 52, m["total_laps"])
	assert.EqualValues(t, 5891, m["track_length"])
	assert.EqualValues(t, 9, m["track_id"])

	hdr, ok := m["header"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 2021, hdr["packet_format"])
	assert.EqualValues(t, 123456789, hdr["session_uid"])
}

func TestGetCarTelemetryDefaultsToPlayerCar(t *testing.T) {
	res := callTool(t, sampleSource(), "get_car_telemetry", nil)

	require.False(t, res.IsError)
	m := decodeText(t, res)

	assert.EqualValues(t, 4, m["car_index"])
	assert.EqualValues(t, 4, m["suggested_gear"])

	tel, ok := m["telemetry"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 301, tel["speed"])
	assert.EqualValues(t, 11800, tel["engine_rpm"])
	assert.EqualValues(t, 8, tel["gear"])
}

func TestGetCarTelemetryExplicitCarIndex(t *testing.T) {
	res := callTool(t, sampleSource(), "get_car_telemetry", map[string]any{"car_index": 7})

	require.False(t, res.IsError)
	m := decodeText(t, res)

	assert.EqualValues(t, 7, m["car_index"])
	tel := m["telemetry"].(map[string]any)
	assert.EqualValues(t, 120, tel["speed"])
}

func TestGetCarTelemetryCarIndexOutOfRange(t *testing.T) {
	res := callTool(t, sampleSource(), "get_car_telemetry", map[string]any{"car_index": 22})

	require.True(t, res.IsError)
	m := decodeText(t, res)
	assert.Equal(t, "UNKNOWN_ERROR", m["code"])
	assert.Equal(t, false, m["available"])
}

func TestGetLapDataSuccess(t *testing.T) {
	res := callTool(t, sampleSource(), "get_lap_data", nil)

	require.False(t, res.IsError)
	m := decodeText(t, res)

	assert.EqualValues(t, 4, m["car_index"])
	lap, ok := m["lap_data"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 3, lap["car_position"])
	assert.EqualValues(t, 12, lap["current_lap_num"])
	assert.EqualValues(t, 92345, lap["last_lap_time_in_ms"])
}

func TestGetLatestPacketByName(t *testing.T) {
	res := callTool(t, sampleSource(), "get_latest_packet", map[string]any{"packet_type": "session"})

	require.False(t, res.IsError)
	m := decodeText(t, res)
	assert.EqualValues(t, 52, m["total_laps"])
}

func TestGetLatestPacketUnknownType(t *testing.T) {
	res := callTool(t, sampleSource(), "get_latest_packet", map[string]any{"packet_type": "weather"})

	require.True(t, res.IsError)
	m := decodeText(t, res)
	assert.Equal(t, "UNKNOWN_ERROR", m["code"])
}

func TestErrStaleGivesDataStaleCode(t *testing.T) {
	src := &mockPacketSource{err: state.ErrStale}
	res := callTool(t, src, "get_session", nil)

	require.True(t, res.IsError)
	m := decodeText(t, res)
	assert.Equal(t, "DATA_STALE", m["code"])
	assert.Equal(t, true, m["recoverable"])
	assert.Equal(t, false, m["available"])
}

func TestUnknownErrorCode(t *testing.T) {
	src := &mockPacketSource{err: errors.New("some unexpected error")}
	res := callTool(t, src, "get_lap_data", nil)

	require.True(t, res.IsError)
	m := decodeText(t, res)
	assert.Equal(t, "UNKNOWN_ERROR", m["code"])
	assert.Equal(t, false, m["recoverable"])
	assert.Equal(t, false, m["available"])
}
