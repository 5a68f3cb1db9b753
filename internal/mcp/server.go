package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/chrishannam/Telemetry-F1-2021/internal/f1"
	"github.com/chrishannam/Telemetry-F1-2021/internal/state"
)

// PacketSource is the subset of state.Manager used by the MCP server.
type PacketSource interface {
	Latest(f1.PacketID) (f1.Packet, error)
}

// Server wraps the MCP SDK server and exposes live telemetry as tools.
type Server struct {
	sdk   *mcpsdk.Server
	state PacketSource
}

// NewServer creates a Server and registers the telemetry tools.
func NewServer(src PacketSource) *Server {
	s := &Server{
		sdk: mcpsdk.NewServer(&mcpsdk.Implementation{
			Name:    "f1telemetry",
			Version: "1.0.0",
		}, nil),
		state: src,
	}

	mcpsdk.AddTool(s.sdk, &mcpsdk.Tool{
		Name:        "get_session",
		Description: "Returns the current session: track, weather, session type, time remaining and assists.",
	}, s.handleGetSession)
	mcpsdk.AddTool(s.sdk, &mcpsdk.Tool{
		Name:        "get_car_telemetry",
		Description: "Returns live telemetry (speed, gear, RPM, temperatures, tyre pressures) for one car. Defaults to the player's car.",
	}, s.handleGetCarTelemetry)
	mcpsdk.AddTool(s.sdk, &mcpsdk.Tool{
		Name:        "get_lap_data",
		Description: "Returns lap timing (current and last lap, sectors, position, pit status) for one car. Defaults to the player's car.",
	}, s.handleGetLapData)
	mcpsdk.AddTool(s.sdk, &mcpsdk.Tool{
		Name:        "get_latest_packet",
		Description: "Returns the most recent packet of a given type as a full nested mapping. Valid types: motion, session, lap_data, event, participants, car_setups, car_telemetry, car_status, final_classification, lobby_info, car_damage, session_history.",
	}, s.handleGetLatestPacket)
	return s
}

// Run starts the MCP server over stdio and blocks until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	return s.sdk.Run(ctx, &mcpsdk.StdioTransport{})
}

// Connect connects the server to an existing transport (used in tests).
func (s *Server) Connect(ctx context.Context, t mcpsdk.Transport) (*mcpsdk.ServerSession, error) {
	return s.sdk.Connect(ctx, t, nil)
}

var packetIDsByName = map[string]f1.PacketID{}

func init() {
	for id := f1.IDMotion; id <= f1.IDSessionHistory; id++ {
		packetIDsByName[id.String()] = id
	}
}

// TelemetryUnavailableResponse is returned when telemetry cannot be provided.
type TelemetryUnavailableResponse struct {
	Available   bool   `json:"available"`
	Error       string `json:"error"`
	Code        string `json:"code"`
	Recoverable bool   `json:"recoverable"`
	Suggestion  string `json:"suggestion"`
	Timestamp   string `json:"timestamp"`
}

type carInput struct {
	// CarIndex selects which car's entry to return (0..21). Omitted means
	// the player's car from the packet header.
	CarIndex *int `json:"car_index,omitempty"`
}

type latestPacketInput struct {
	PacketType string `json:"packet_type"`
}

func (s *Server) handleGetSession(
	ctx context.Context,
	req *mcpsdk.CallToolRequest,
	input struct{},
) (*mcpsdk.CallToolResult, any, error) {
	pkt, err := s.state.Latest(f1.IDSession)
	if err != nil {
		return s.errorResult(err), nil, nil
	}
	return textResult(f1.ToMapping(pkt))
}

func (s *Server) handleGetCarTelemetry(
	ctx context.Context,
	req *mcpsdk.CallToolRequest,
	input carInput,
) (*mcpsdk.CallToolResult, any, error) {
	pkt, err := s.state.Latest(f1.IDCarTelemetry)
	if err != nil {
		return s.errorResult(err), nil, nil
	}
	tp := pkt.(*f1.CarTelemetryPacket)
	idx, err := resolveCarIndex(input.CarIndex, tp.Header)
	if err != nil {
		return s.errorResult(err), nil, nil
	}
	return textResult(map[string]any{
		"car_index":      idx,
		"session_time":   tp.Header.SessionTime,
		"telemetry":      f1.RecordMapping(tp.CarTelemetryData[idx]),
		"suggested_gear": tp.SuggestedGear,
	})
}

func (s *Server) handleGetLapData(
	ctx context.Context,
	req *mcpsdk.CallToolRequest,
	input carInput,
) (*mcpsdk.CallToolResult, any, error) {
	pkt, err := s.state.Latest(f1.IDLapData)
	if err != nil {
		return s.errorResult(err), nil, nil
	}
	lp := pkt.(*f1.LapDataPacket)
	idx, err := resolveCarIndex(input.CarIndex, lp.Header)
	if err != nil {
		return s.errorResult(err), nil, nil
	}
	return textResult(map[string]any{
		"car_index":    idx,
		"session_time": lp.Header.SessionTime,
		"lap_data":     f1.RecordMapping(lp.LapData[idx]),
	})
}

func (s *Server) handleGetLatestPacket(
	ctx context.Context,
	req *mcpsdk.CallToolRequest,
	input latestPacketInput,
) (*mcpsdk.CallToolResult, any, error) {
	id, ok := packetIDsByName[input.PacketType]
	if !ok {
		return s.errorResult(fmt.Errorf("unknown packet type %q", input.PacketType)), nil, nil
	}
	pkt, err := s.state.Latest(id)
	if err != nil {
		return s.errorResult(err), nil, nil
	}
	return textResult(f1.ToMapping(pkt))
}

func resolveCarIndex(requested *int, h f1.PacketHeader) (int, error) {
	if requested == nil {
		return int(h.PlayerCarIndex), nil
	}
	if *requested < 0 || *requested >= f1.MaxCars {
		return 0, fmt.Errorf("car index %d out of range [0, %d)", *requested, f1.MaxCars)
	}
	return *requested, nil
}

func textResult(payload any) (*mcpsdk.CallToolResult, any, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
	}, nil, nil
}

func (s *Server) errorResult(err error) *mcpsdk.CallToolResult {
	resp := TelemetryUnavailableResponse{
		Available: false,
		Error:     err.Error(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	switch {
	case errors.Is(err, state.ErrStale):
		resp.Code = "DATA_STALE"
		resp.Recoverable = true
		resp.Suggestion = "Ensure the game is in a session and broadcasting UDP telemetry, then retry."
	default:
		resp.Code = "UNKNOWN_ERROR"
		resp.Recoverable = false
		resp.Suggestion = "Check application logs for details."
	}

	data, _ := json.Marshal(resp)
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
		IsError: true,
	}
}
