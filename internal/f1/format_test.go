package f1

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameFieldTruncation(t *testing.T) {
	p := &ParticipantsPacket{Header: sampleHeader(IDParticipants), NumActiveCars: 1}
	p.Participants[0].Name = MakeDriverName("Max Verstappen")

	m := ToMapping(p)
	participants := m["participants"].([]any)
	first := participants[0].(map[string]any)
	assert.Equal(t, "Max Verstappen", first["name"])

	// Encoding the same string reproduces the padded wire bytes exactly.
	c := codecFor(t, IDParticipants)
	buf, err := c.Encode(p)
	require.NoError(t, err)
	got, err := c.Decode(buf)
	require.NoError(t, err)

	var want DriverName
	copy(want[:], "Max Verstappen")
	assert.Equal(t, want, got.(*ParticipantsPacket).Participants[0].Name)
}

func TestFloatsRoundedToThreeDecimals(t *testing.T) {
	p := &LapDataPacket{Header: sampleHeader(IDLapData)}
	p.LapData[0].LapDistance = 1234.56789
	p.LapData[0].SafetyCarDelta = -0.0004

	m := ToMapping(p)
	laps := m["lap_data"].([]any)
	first := laps[0].(map[string]any)
	assert.InDelta(t, 1234.568, first["lap_distance"].(float64), 1e-9)
	assert.InDelta(t, 0.0, first["safety_car_delta"].(float64), 1e-9)
}

func TestSignedFieldsKeepSign(t *testing.T) {
	p := &SessionPacket{Header: sampleHeader(IDSession), TrackID: -1, TrackTemperature: -3}

	m := ToMapping(p)
	assert.EqualValues(t, -1, m["track_id"])
	assert.EqualValues(t, -3, m["track_temperature"])
}

func TestMappingNestsHeaderAndArrays(t *testing.T) {
	p := &MotionPacket{Header: sampleHeader(IDMotion)}
	p.CarMotionData[2].WorldPositionX = 100.5
	p.WheelSpeed[3] = 81.25

	m := ToMapping(p)

	hdr := m["header"].(map[string]any)
	assert.EqualValues(t, PacketFormat2021, hdr["packet_format"])
	assert.InDelta(t, 83.25, hdr["session_time"].(float64), 1e-9)

	cars := m["car_motion_data"].([]any)
	require.Len(t, cars, MaxCars)
	assert.InDelta(t, 100.5, cars[2].(map[string]any)["world_position_x"].(float64), 1e-9)

	wheels := m["wheel_speed"].([]any)
	require.Len(t, wheels, 4)
	assert.InDelta(t, 81.25, wheels[3].(float64), 1e-9)
}

func TestToTextSortedAndIndented(t *testing.T) {
	p := &CarDamagePacket{Header: sampleHeader(IDCarDamage)}
	text, err := ToText(p)
	require.NoError(t, err)

	// Canonical form: two-space indentation, keys in sorted order.
	assert.True(t, strings.HasPrefix(text, "{\n  \""))
	assert.Less(t, strings.Index(text, `"car_damage_data"`), strings.Index(text, `"header"`))

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &m))
	assert.Contains(t, m, "car_damage_data")
	assert.Contains(t, m, "header")
}

func TestRecordMappingOnSubRecord(t *testing.T) {
	d := CarTelemetryData{Speed: 301, Gear: 8, EngineRPM: 11800}
	d.TyresPressure[0] = 21.505

	m := RecordMapping(d)
	assert.EqualValues(t, 301, m["speed"])
	assert.EqualValues(t, 8, m["gear"])
	pressures := m["tyres_pressure"].([]any)
	assert.InDelta(t, 21.505, pressures[0].(float64), 1e-9)
}
