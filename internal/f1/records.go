package f1

// Field order and widths follow Codemasters' published F1 2021 UDP format:
// little-endian, 1-byte alignment, no padding. Array capacities are fixed;
// how many slots are active is reported by a separate count field and is the
// consumer's concern, not the codec's.

// Fixed array capacities of the 2021 schema.
const (
	MaxCars           = 22
	MaxMarshalZones   = 21
	MaxWeatherSamples = 56
	MaxLapHistory     = 100
	MaxTyreStints     = 8
	NameLength        = 48
)

// Packet is a decoded top-level telemetry packet.
type Packet interface {
	// PacketHeader returns the common header carried by the packet.
	PacketHeader() PacketHeader
}

// DriverName is a fixed-length UTF-8 name field, NUL padded on the wire.
// The binary layer keeps the raw bytes; interpretation as text happens only
// in the formatter, so decode/encode round-trip the padding exactly.
type DriverName [NameLength]byte

// MakeDriverName builds a NUL-padded name field from s, truncating at the
// field capacity.
func MakeDriverName(s string) DriverName {
	var n DriverName
	copy(n[:], s)
	return n
}

// String returns the name decoded as UTF-8, truncated at the first NUL.
func (n DriverName) String() string {
	for i, b := range n {
		if b == 0 {
			return string(n[:i])
		}
	}
	return string(n[:])
}

// CarMotionData is the per-car slice of the motion packet.
type CarMotionData struct {
	WorldPositionX     float32 `json:"world_position_x"`
	WorldPositionY     float32 `json:"world_position_y"`
	WorldPositionZ     float32 `json:"world_position_z"`
	WorldVelocityX     float32 `json:"world_velocity_x"`
	WorldVelocityY     float32 `json:"world_velocity_y"`
	WorldVelocityZ     float32 `json:"world_velocity_z"`
	WorldForwardDirX   int16   `json:"world_forward_dir_x"` // normalised
	WorldForwardDirY   int16   `json:"world_forward_dir_y"`
	WorldForwardDirZ   int16   `json:"world_forward_dir_z"`
	WorldRightDirX     int16   `json:"world_right_dir_x"`
	WorldRightDirY     int16   `json:"world_right_dir_y"`
	WorldRightDirZ     int16   `json:"world_right_dir_z"`
	GForceLateral      float32 `json:"g_force_lateral"`
	GForceLongitudinal float32 `json:"g_force_longitudinal"`
	GForceVertical     float32 `json:"g_force_vertical"`
	Yaw                float32 `json:"yaw"`
	Pitch              float32 `json:"pitch"`
	Roll               float32 `json:"roll"`
}

// MotionPacket carries world-space motion for every car plus extra
// player-car-only channels. All wheel arrays are ordered RL, RR, FL, FR.
type MotionPacket struct {
	Header                 PacketHeader           `json:"header"`
	CarMotionData          [MaxCars]CarMotionData `json:"car_motion_data"`
	SuspensionPosition     [4]float32             `json:"suspension_position"`
	SuspensionVelocity     [4]float32             `json:"suspension_velocity"`
	SuspensionAcceleration [4]float32             `json:"suspension_acceleration"`
	WheelSpeed             [4]float32             `json:"wheel_speed"`
	WheelSlip              [4]float32             `json:"wheel_slip"`
	LocalVelocityX         float32                `json:"local_velocity_x"`
	LocalVelocityY         float32                `json:"local_velocity_y"`
	LocalVelocityZ         float32                `json:"local_velocity_z"`
	AngularVelocityX       float32                `json:"angular_velocity_x"`
	AngularVelocityY       float32                `json:"angular_velocity_y"`
	AngularVelocityZ       float32                `json:"angular_velocity_z"`
	AngularAccelerationX   float32                `json:"angular_acceleration_x"`
	AngularAccelerationY   float32                `json:"angular_acceleration_y"`
	AngularAccelerationZ   float32                `json:"angular_acceleration_z"`
	FrontWheelsAngle       float32                `json:"front_wheels_angle"`
}

func (p *MotionPacket) PacketHeader() PacketHeader { return p.Header }

// MarshalZone is one marshalling sector of the track.
type MarshalZone struct {
	ZoneStart float32 `json:"zone_start"` // fraction (0..1) of the lap where the zone starts
	ZoneFlag  int8    `json:"zone_flag"` // -1 = unknown, 0 = none, 1 = green, 2 = blue, 3 = yellow, 4 = red
}

// WeatherForecastSample is one forecast entry of the session packet.
type WeatherForecastSample struct {
	SessionType            uint8 `json:"session_type"`
	TimeOffset             uint8 `json:"time_offset"` // minutes the forecast is for
	Weather                uint8 `json:"weather"`
	TrackTemperature       int8  `json:"track_temperature"`
	TrackTemperatureChange int8  `json:"track_temperature_change"` // 0 = up, 1 = down, 2 = no change
	AirTemperature         int8  `json:"air_temperature"`
	AirTemperatureChange   int8  `json:"air_temperature_change"`
	RainPercentage         uint8 `json:"rain_percentage"`
}

// SessionPacket describes the session in progress.
type SessionPacket struct {
	Header                    PacketHeader                             `json:"header"`
	Weather                   uint8                                    `json:"weather"`
	TrackTemperature          int8                                     `json:"track_temperature"`
	AirTemperature            int8                                     `json:"air_temperature"`
	TotalLaps                 uint8                                    `json:"total_laps"`
	TrackLength               uint16                                   `json:"track_length"` // metres
	SessionType               uint8                                    `json:"session_type"`
	TrackID                   int8                                     `json:"track_id"` // -1 for unknown
	Formula                   uint8                                    `json:"formula"`
	SessionTimeLeft           uint16                                   `json:"session_time_left"`
	SessionDuration           uint16                                   `json:"session_duration"`
	PitSpeedLimit             uint8                                    `json:"pit_speed_limit"`
	GamePaused                uint8                                    `json:"game_paused"`
	IsSpectating              uint8                                    `json:"is_spectating"`
	SpectatorCarIndex         uint8                                    `json:"spectator_car_index"`
	SliProNativeSupport       uint8                                    `json:"sli_pro_native_support"`
	NumMarshalZones           uint8                                    `json:"num_marshal_zones"`
	MarshalZones              [MaxMarshalZones]MarshalZone             `json:"marshal_zones"`
	SafetyCarStatus           uint8                                    `json:"safety_car_status"`
	NetworkGame               uint8                                    `json:"network_game"`
	NumWeatherForecastSamples uint8                                    `json:"num_weather_forecast_samples"`
	WeatherForecastSamples    [MaxWeatherSamples]WeatherForecastSample `json:"weather_forecast_samples"`
	ForecastAccuracy          uint8                                    `json:"forecast_accuracy"`
	AIDifficulty              uint8                                    `json:"ai_difficulty"`
	SeasonLinkIdentifier      uint32                                   `json:"season_link_identifier"`
	WeekendLinkIdentifier     uint32                                   `json:"weekend_link_identifier"`
	SessionLinkIdentifier     uint32                                   `json:"session_link_identifier"`
	PitStopWindowIdealLap     uint8                                    `json:"pit_stop_window_ideal_lap"`
	PitStopWindowLatestLap    uint8                                    `json:"pit_stop_window_latest_lap"`
	PitStopRejoinPosition     uint8                                    `json:"pit_stop_rejoin_position"`
	SteeringAssist            uint8                                    `json:"steering_assist"`
	BrakingAssist             uint8                                    `json:"braking_assist"`
	GearboxAssist             uint8                                    `json:"gearbox_assist"`
	PitAssist                 uint8                                    `json:"pit_assist"`
	PitReleaseAssist          uint8                                    `json:"pit_release_assist"`
	ERSAssist                 uint8                                    `json:"ers_assist"`
	DRSAssist                 uint8                                    `json:"drs_assist"`
	DynamicRacingLine         uint8                                    `json:"dynamic_racing_line"`
	DynamicRacingLineType     uint8                                    `json:"dynamic_racing_line_type"` // 0 = 2D, 1 = 3D
}

func (p *SessionPacket) PacketHeader() PacketHeader { return p.Header }

// CarLapData is the per-car slice of the lap data packet.
type CarLapData struct {
	LastLapTimeInMS             uint32  `json:"last_lap_time_in_ms"`
	CurrentLapTimeInMS          uint32  `json:"current_lap_time_in_ms"`
	Sector1TimeInMS             uint16  `json:"sector1_time_in_ms"`
	Sector2TimeInMS             uint16  `json:"sector2_time_in_ms"`
	LapDistance                 float32 `json:"lap_distance"` // metres; negative before the line is crossed
	TotalDistance               float32 `json:"total_distance"`
	SafetyCarDelta              float32 `json:"safety_car_delta"`
	CarPosition                 uint8   `json:"car_position"`
	CurrentLapNum               uint8   `json:"current_lap_num"`
	PitStatus                   uint8   `json:"pit_status"` // 0 = none, 1 = pitting, 2 = in pit area
	NumPitStops                 uint8   `json:"num_pit_stops"`
	Sector                      uint8   `json:"sector"`
	CurrentLapInvalid           uint8   `json:"current_lap_invalid"`
	Penalties                   uint8   `json:"penalties"`
	Warnings                    uint8   `json:"warnings"`
	NumUnservedDriveThroughPens uint8   `json:"num_unserved_drive_through_pens"`
	NumUnservedStopGoPens       uint8   `json:"num_unserved_stop_go_pens"`
	GridPosition                uint8   `json:"grid_position"`
	DriverStatus                uint8   `json:"driver_status"`
	ResultStatus                uint8   `json:"result_status"`
	PitLaneTimerActive          uint8   `json:"pit_lane_timer_active"`
	PitLaneTimeInLaneInMS       uint16  `json:"pit_lane_time_in_lane_in_ms"`
	PitStopTimerInMS            uint16  `json:"pit_stop_timer_in_ms"`
	PitStopShouldServePen       uint8   `json:"pit_stop_should_serve_pen"`
}

// LapDataPacket carries lap timing for all cars on track.
type LapDataPacket struct {
	Header  PacketHeader        `json:"header"`
	LapData [MaxCars]CarLapData `json:"lap_data"`
}

func (p *LapDataPacket) PacketHeader() PacketHeader { return p.Header }

// ParticipantData is the per-car slice of the participants packet.
type ParticipantData struct {
	AIControlled  uint8      `json:"ai_controlled"` // 1 = AI, 0 = human
	DriverID      uint8      `json:"driver_id"` // 255 if network human
	NetworkID     uint8      `json:"network_id"`
	TeamID        uint8      `json:"team_id"`
	MyTeam        uint8      `json:"my_team"`
	RaceNumber    uint8      `json:"race_number"`
	Nationality   uint8      `json:"nationality"`
	Name          DriverName `json:"name"`
	YourTelemetry uint8      `json:"your_telemetry"` // 0 = restricted, 1 = public
}

// ParticipantsPacket lists the drivers in the session.
type ParticipantsPacket struct {
	Header        PacketHeader             `json:"header"`
	NumActiveCars uint8                    `json:"num_active_cars"`
	Participants  [MaxCars]ParticipantData `json:"participants"`
}

func (p *ParticipantsPacket) PacketHeader() PacketHeader { return p.Header }

// CarSetupData is the per-car slice of the car setups packet.
type CarSetupData struct {
	FrontWing              uint8   `json:"front_wing"`
	RearWing               uint8   `json:"rear_wing"`
	OnThrottle             uint8   `json:"on_throttle"` // differential adjustment, percentage
	OffThrottle            uint8   `json:"off_throttle"`
	FrontCamber            float32 `json:"front_camber"`
	RearCamber             float32 `json:"rear_camber"`
	FrontToe               float32 `json:"front_toe"`
	RearToe                float32 `json:"rear_toe"`
	FrontSuspension        uint8   `json:"front_suspension"`
	RearSuspension         uint8   `json:"rear_suspension"`
	FrontAntiRollBar       uint8   `json:"front_anti_roll_bar"`
	RearAntiRollBar        uint8   `json:"rear_anti_roll_bar"`
	FrontSuspensionHeight  uint8   `json:"front_suspension_height"`
	RearSuspensionHeight   uint8   `json:"rear_suspension_height"`
	BrakePressure          uint8   `json:"brake_pressure"`
	BrakeBias              uint8   `json:"brake_bias"`
	RearLeftTyrePressure   float32 `json:"rear_left_tyre_pressure"`
	RearRightTyrePressure  float32 `json:"rear_right_tyre_pressure"`
	FrontLeftTyrePressure  float32 `json:"front_left_tyre_pressure"`
	FrontRightTyrePressure float32 `json:"front_right_tyre_pressure"`
	Ballast                uint8   `json:"ballast"`
	FuelLoad               float32 `json:"fuel_load"`
}

// CarSetupsPacket carries the setup of every car.
type CarSetupsPacket struct {
	Header    PacketHeader          `json:"header"`
	CarSetups [MaxCars]CarSetupData `json:"car_setups"`
}

func (p *CarSetupsPacket) PacketHeader() PacketHeader { return p.Header }

// CarTelemetryData is the per-car slice of the car telemetry packet.
type CarTelemetryData struct {
	Speed                   uint16     `json:"speed"` // km/h
	Throttle                float32    `json:"throttle"` // 0.0 .. 1.0
	Steer                   float32    `json:"steer"` // -1.0 (full left) .. 1.0 (full right)
	Brake                   float32    `json:"brake"`
	Clutch                  uint8      `json:"clutch"` // 0 .. 100
	Gear                    int8       `json:"gear"` // 1-8, N = 0, R = -1
	EngineRPM               uint16     `json:"engine_rpm"`
	DRS                     uint8      `json:"drs"`
	RevLightsPercent        uint8      `json:"rev_lights_percent"`
	RevLightsBitValue       uint16     `json:"rev_lights_bit_value"`
	BrakesTemperature       [4]uint16  `json:"brakes_temperature"` // celsius
	TyresSurfaceTemperature [4]uint8   `json:"tyres_surface_temperature"`
	TyresInnerTemperature   [4]uint8   `json:"tyres_inner_temperature"`
	EngineTemperature       uint16     `json:"engine_temperature"`
	TyresPressure           [4]float32 `json:"tyres_pressure"` // PSI
	SurfaceType             [4]uint8   `json:"surface_type"`
}

// CarTelemetryPacket carries live telemetry channels for every car.
type CarTelemetryPacket struct {
	Header                       PacketHeader              `json:"header"`
	CarTelemetryData             [MaxCars]CarTelemetryData `json:"car_telemetry_data"`
	MFDPanelIndex                uint8                     `json:"mfd_panel_index"` // 255 = closed
	MFDPanelIndexSecondaryPlayer uint8                     `json:"mfd_panel_index_secondary_player"`
	SuggestedGear                int8                      `json:"suggested_gear"` // 0 if none suggested
}

func (p *CarTelemetryPacket) PacketHeader() PacketHeader { return p.Header }

// CarStatusData is the per-car slice of the car status packet.
type CarStatusData struct {
	TractionControl         uint8   `json:"traction_control"` // 0 = off, 1 = medium, 2 = full
	AntiLockBrakes          uint8   `json:"anti_lock_brakes"`
	FuelMix                 uint8   `json:"fuel_mix"` // 0 = lean, 1 = standard, 2 = rich, 3 = max
	FrontBrakeBias          uint8   `json:"front_brake_bias"`
	PitLimiterStatus        uint8   `json:"pit_limiter_status"`
	FuelInTank              float32 `json:"fuel_in_tank"`
	FuelCapacity            float32 `json:"fuel_capacity"`
	FuelRemainingLaps       float32 `json:"fuel_remaining_laps"`
	MaxRPM                  uint16  `json:"max_rpm"`
	IdleRPM                 uint16  `json:"idle_rpm"`
	MaxGears                uint8   `json:"max_gears"`
	DRSAllowed              uint8   `json:"drs_allowed"`
	DRSActivationDistance   uint16  `json:"drs_activation_distance"` // 0 = not available
	ActualTyreCompound      uint8   `json:"actual_tyre_compound"`
	VisualTyreCompound      uint8   `json:"visual_tyre_compound"`
	TyresAgeLaps            uint8   `json:"tyres_age_laps"`
	VehicleFIAFlags         int8    `json:"vehicle_fia_flags"` // -1 = unknown, 0 = none, 1 = green, 2 = blue, 3 = yellow, 4 = red
	ERSStoreEnergy          float32 `json:"ers_store_energy"` // joules
	ERSDeployMode           uint8   `json:"ers_deploy_mode"`
	ERSHarvestedThisLapMGUK float32 `json:"ers_harvested_this_lap_mguk"`
	ERSHarvestedThisLapMGUH float32 `json:"ers_harvested_this_lap_mguh"`
	ERSDeployedThisLap      float32 `json:"ers_deployed_this_lap"`
	NetworkPaused           uint8   `json:"network_paused"`
}

// CarStatusPacket carries the status of every car.
type CarStatusPacket struct {
	Header        PacketHeader           `json:"header"`
	CarStatusData [MaxCars]CarStatusData `json:"car_status_data"`
}

func (p *CarStatusPacket) PacketHeader() PacketHeader { return p.Header }

// FinalClassificationData is the per-car slice of the final classification
// packet.
type FinalClassificationData struct {
	Position         uint8                `json:"position"`
	NumLaps          uint8                `json:"num_laps"`
	GridPosition     uint8                `json:"grid_position"`
	Points           uint8                `json:"points"`
	NumPitStops      uint8                `json:"num_pit_stops"`
	ResultStatus     uint8                `json:"result_status"`
	BestLapTimeInMS  uint32               `json:"best_lap_time_in_ms"`
	TotalRaceTime    float64              `json:"total_race_time"` // seconds, without penalties
	PenaltiesTime    uint8                `json:"penalties_time"`
	NumPenalties     uint8                `json:"num_penalties"`
	NumTyreStints    uint8                `json:"num_tyre_stints"`
	TyreStintsActual [MaxTyreStints]uint8 `json:"tyre_stints_actual"`
	TyreStintsVisual [MaxTyreStints]uint8 `json:"tyre_stints_visual"`
}

// FinalClassificationPacket carries the result of a finished session.
type FinalClassificationPacket struct {
	Header             PacketHeader                     `json:"header"`
	NumCars            uint8                            `json:"num_cars"`
	ClassificationData [MaxCars]FinalClassificationData `json:"classification_data"`
}

func (p *FinalClassificationPacket) PacketHeader() PacketHeader { return p.Header }

// LobbyInfoData is the per-player slice of the lobby info packet.
type LobbyInfoData struct {
	AIControlled uint8      `json:"ai_controlled"`
	TeamID       uint8      `json:"team_id"` // 255 if none selected yet
	Nationality  uint8      `json:"nationality"`
	Name         DriverName `json:"name"`
	CarNumber    uint8      `json:"car_number"`
	ReadyStatus  uint8      `json:"ready_status"` // 0 = not ready, 1 = ready, 2 = spectating
}

// LobbyInfoPacket describes a multiplayer lobby.
type LobbyInfoPacket struct {
	Header       PacketHeader           `json:"header"`
	NumPlayers   uint8                  `json:"num_players"`
	LobbyPlayers [MaxCars]LobbyInfoData `json:"lobby_players"`
}

func (p *LobbyInfoPacket) PacketHeader() PacketHeader { return p.Header }

// CarDamageData is the per-car slice of the car damage packet. All damage
// and wear values are percentages.
type CarDamageData struct {
	TyresWear            [4]float32 `json:"tyres_wear"`
	TyresDamage          [4]uint8   `json:"tyres_damage"`
	BrakesDamage         [4]uint8   `json:"brakes_damage"`
	FrontLeftWingDamage  uint8      `json:"front_left_wing_damage"`
	FrontRightWingDamage uint8      `json:"front_right_wing_damage"`
	RearWingDamage       uint8      `json:"rear_wing_damage"`
	FloorDamage          uint8      `json:"floor_damage"`
	DiffuserDamage       uint8      `json:"diffuser_damage"`
	SidepodDamage        uint8      `json:"sidepod_damage"`
	DRSFault             uint8      `json:"drs_fault"`
	GearBoxDamage        uint8      `json:"gear_box_damage"`
	EngineDamage         uint8      `json:"engine_damage"`
	EngineMGUHWear       uint8      `json:"engine_mguh_wear"`
	EngineESWear         uint8      `json:"engine_es_wear"`
	EngineCEWear         uint8      `json:"engine_ce_wear"`
	EngineICEWear        uint8      `json:"engine_ice_wear"`
	EngineMGUKWear       uint8      `json:"engine_mguk_wear"`
	EngineTCWear         uint8      `json:"engine_tc_wear"`
}

// CarDamagePacket carries the damage state of every car.
type CarDamagePacket struct {
	Header        PacketHeader           `json:"header"`
	CarDamageData [MaxCars]CarDamageData `json:"car_damage_data"`
}

func (p *CarDamagePacket) PacketHeader() PacketHeader { return p.Header }

// LapHistoryData is one lap of the session history packet.
type LapHistoryData struct {
	LapTimeInMS      uint32 `json:"lap_time_in_ms"`
	Sector1TimeInMS  uint16 `json:"sector1_time_in_ms"`
	Sector2TimeInMS  uint16 `json:"sector2_time_in_ms"`
	Sector3TimeInMS  uint16 `json:"sector3_time_in_ms"`
	LapValidBitFlags uint8  `json:"lap_valid_bit_flags"` // 0x01 lap, 0x02 s1, 0x04 s2, 0x08 s3
}

// TyreStintHistoryData is one tyre stint of the session history packet.
type TyreStintHistoryData struct {
	EndLap             uint8 `json:"end_lap"` // 255 for the current stint
	TyreActualCompound uint8 `json:"tyre_actual_compound"`
	TyreVisualCompound uint8 `json:"tyre_visual_compound"`
}

// SessionHistoryPacket carries lap and stint history for one car.
type SessionHistoryPacket struct {
	Header                PacketHeader                        `json:"header"`
	CarIdx                uint8                               `json:"car_idx"`
	NumLaps               uint8                               `json:"num_laps"`
	NumTyreStints         uint8                               `json:"num_tyre_stints"`
	BestLapTimeLapNum     uint8                               `json:"best_lap_time_lap_num"`
	BestSector1LapNum     uint8                               `json:"best_sector1_lap_num"`
	BestSector2LapNum     uint8                               `json:"best_sector2_lap_num"`
	BestSector3LapNum     uint8                               `json:"best_sector3_lap_num"`
	LapHistoryData        [MaxLapHistory]LapHistoryData       `json:"lap_history_data"`
	TyreStintsHistoryData [MaxTyreStints]TyreStintHistoryData `json:"tyre_stints_history_data"`
}

func (p *SessionHistoryPacket) PacketHeader() PacketHeader { return p.Header }
