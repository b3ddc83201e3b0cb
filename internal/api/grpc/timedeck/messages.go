package timedeck

import "time"

// Actor identifies who issued a mutating request.
type Actor struct {
	Hostname string `cbor:"1,keyasint,omitempty" json:"hostname,omitempty"`
	Username string `cbor:"2,keyasint,omitempty" json:"username,omitempty"`
}

// StopwatchAction selects a stopwatch operation.
type StopwatchAction string

// Stopwatch actions.
const (
	StopwatchShow  StopwatchAction = "show"
	StopwatchStart StopwatchAction = "start"
	StopwatchStop  StopwatchAction = "stop"
	StopwatchLap   StopwatchAction = "lap"
	StopwatchReset StopwatchAction = "reset"
)

// StopwatchRequest runs one stopwatch action.
type StopwatchRequest struct {
	Actor  *Actor          `cbor:"1,keyasint,omitempty" json:"actor,omitempty"`
	Action StopwatchAction `cbor:"2,keyasint"           json:"action"`
}

// Lap is one recorded split.
type Lap struct {
	Index      int    `cbor:"1,keyasint" json:"index"`
	DurationMs int64  `cbor:"2,keyasint" json:"duration_ms"`
	Display    string `cbor:"3,keyasint" json:"display"`
}

// StopwatchState is the stopwatch at the moment the request was served.
type StopwatchState struct {
	ElapsedMs int64  `cbor:"1,keyasint"           json:"elapsed_ms"`
	Display   string `cbor:"2,keyasint"           json:"display"`
	Running   bool   `cbor:"3,keyasint"           json:"running"`
	Laps      []Lap  `cbor:"4,keyasint,omitempty" json:"laps,omitempty"`
}

// StopwatchResponse reports the state and whether the action changed it.
type StopwatchResponse struct {
	Changed bool           `cbor:"1,keyasint" json:"changed"`
	State   StopwatchState `cbor:"2,keyasint" json:"state"`
}

// TimerAction selects a countdown operation.
type TimerAction string

// Timer actions.
const (
	TimerShow    TimerAction = "show"
	TimerDigit   TimerAction = "digit"
	TimerDelete  TimerAction = "delete"
	TimerPreset  TimerAction = "preset"
	TimerInput   TimerAction = "input"
	TimerStart   TimerAction = "start"
	TimerPause   TimerAction = "pause"
	TimerResume  TimerAction = "resume"
	TimerReset   TimerAction = "reset"
	TimerDismiss TimerAction = "dismiss"
	TimerSound   TimerAction = "sound"
)

// TimerRequest runs one countdown action. Value carries the digit, preset
// name, digit string or sound depending on Action.
type TimerRequest struct {
	Actor  *Actor      `cbor:"1,keyasint,omitempty" json:"actor,omitempty"`
	Action TimerAction `cbor:"2,keyasint"           json:"action"`
	Value  string      `cbor:"3,keyasint,omitempty" json:"value,omitempty"`
}

// TimerState is the countdown at the moment the request was served.
type TimerState struct {
	Phase        string `cbor:"1,keyasint" json:"phase"`
	Input        string `cbor:"2,keyasint" json:"input"`
	ConfiguredMs int64  `cbor:"3,keyasint" json:"configured_ms"`
	RemainingMs  int64  `cbor:"4,keyasint" json:"remaining_ms"`
	TotalMs      int64  `cbor:"5,keyasint" json:"total_ms"`
	Display      string `cbor:"6,keyasint" json:"display"`
	Sound        string `cbor:"7,keyasint" json:"sound"`
}

// TimerResponse reports the state and whether the action changed it.
type TimerResponse struct {
	Changed bool       `cbor:"1,keyasint" json:"changed"`
	State   TimerState `cbor:"2,keyasint" json:"state"`
}

// Alarm is one scheduled alarm.
type Alarm struct {
	ID      int64  `cbor:"1,keyasint" json:"id"`
	Time    string `cbor:"2,keyasint" json:"time"`
	Time12  string `cbor:"3,keyasint" json:"time_12h"`
	Label   string `cbor:"4,keyasint" json:"label"`
	Enabled bool   `cbor:"5,keyasint" json:"enabled"`
	Sound   string `cbor:"6,keyasint" json:"sound"`
}

// AddAlarmRequest schedules an alarm. Time is "HH:MM" in 24-hour form unless
// Meridiem is set, in which case Hour and Minute are read as 12-hour input.
type AddAlarmRequest struct {
	Actor    *Actor `cbor:"1,keyasint,omitempty" json:"actor,omitempty"`
	Time     string `cbor:"2,keyasint,omitempty" json:"time,omitempty"`
	Hour     int    `cbor:"3,keyasint,omitempty" json:"hour,omitempty"`
	Minute   int    `cbor:"4,keyasint,omitempty" json:"minute,omitempty"`
	Meridiem string `cbor:"5,keyasint,omitempty" json:"meridiem,omitempty"`
	Label    string `cbor:"6,keyasint,omitempty" json:"label,omitempty"`
	Sound    string `cbor:"7,keyasint,omitempty" json:"sound,omitempty"`
}

// AlarmRequest addresses a single alarm by id.
type AlarmRequest struct {
	Actor *Actor `cbor:"1,keyasint,omitempty" json:"actor,omitempty"`
	ID    int64  `cbor:"2,keyasint"           json:"id"`
}

// DismissAlarmRequest silences the ringing alarm.
type DismissAlarmRequest struct {
	Actor *Actor `cbor:"1,keyasint,omitempty" json:"actor,omitempty"`
}

// AlarmResponse carries the affected alarm, if any.
type AlarmResponse struct {
	Changed bool   `cbor:"1,keyasint"           json:"changed"`
	Alarm   *Alarm `cbor:"2,keyasint,omitempty" json:"alarm,omitempty"`
}

// ListAlarmsRequest is empty.
type ListAlarmsRequest struct{}

// ListAlarmsResponse lists alarms in schedule order.
type ListAlarmsResponse struct {
	Alarms  []Alarm `cbor:"1,keyasint,omitempty" json:"alarms"`
	Ringing *Alarm  `cbor:"2,keyasint,omitempty" json:"ringing,omitempty"`
}

// WorldAction selects a world clock operation.
type WorldAction string

// World clock actions.
const (
	WorldList     WorldAction = "list"
	WorldAdd      WorldAction = "add"
	WorldRemove   WorldAction = "remove"
	WorldRename   WorldAction = "rename"
	WorldMove     WorldAction = "move"
	WorldSettings WorldAction = "settings"
)

// WorldClockSettings controls how readings are rendered.
type WorldClockSettings struct {
	Is24Hour   bool `cbor:"1,keyasint" json:"is_24_hour"`
	ShowOffset bool `cbor:"2,keyasint" json:"show_offset"`
	ShowDate   bool `cbor:"3,keyasint" json:"show_date"`
}

// WorldRequest runs one world clock action.
type WorldRequest struct {
	Actor    *Actor              `cbor:"1,keyasint,omitempty" json:"actor,omitempty"`
	Action   WorldAction         `cbor:"2,keyasint"           json:"action"`
	ID       string              `cbor:"3,keyasint,omitempty" json:"id,omitempty"`
	Timezone string              `cbor:"4,keyasint,omitempty" json:"timezone,omitempty"`
	Name     string              `cbor:"5,keyasint,omitempty" json:"name,omitempty"`
	Index    int                 `cbor:"6,keyasint,omitempty" json:"index,omitempty"`
	Settings *WorldClockSettings `cbor:"7,keyasint,omitempty" json:"settings,omitempty"`
}

// CityReading is one rendered clock.
type CityReading struct {
	ID          string  `cbor:"1,keyasint"           json:"id"`
	Name        string  `cbor:"2,keyasint"           json:"name"`
	Timezone    string  `cbor:"3,keyasint"           json:"timezone"`
	Time        string  `cbor:"4,keyasint"           json:"time"`
	Weekday     string  `cbor:"5,keyasint,omitempty" json:"weekday,omitempty"`
	Offset      string  `cbor:"6,keyasint,omitempty" json:"offset,omitempty"`
	OffsetHours float64 `cbor:"7,keyasint"           json:"offset_hours"`
}

// WorldResponse lists the board after the action.
type WorldResponse struct {
	Changed  bool               `cbor:"1,keyasint"           json:"changed"`
	Cities   []CityReading      `cbor:"2,keyasint,omitempty" json:"cities"`
	Settings WorldClockSettings `cbor:"3,keyasint"           json:"settings"`
}

// StatusRequest is empty.
type StatusRequest struct{}

// StatusResponse is a snapshot of every facility taken under one lock.
type StatusResponse struct {
	Now       time.Time      `cbor:"1,keyasint" json:"now"`
	Version   string         `cbor:"2,keyasint" json:"version"`
	Stopwatch StopwatchState `cbor:"3,keyasint" json:"stopwatch"`
	Timer     TimerState     `cbor:"4,keyasint" json:"timer"`
	Alarms    []Alarm        `cbor:"5,keyasint,omitempty" json:"alarms"`
	Ringing   *Alarm         `cbor:"6,keyasint,omitempty" json:"ringing,omitempty"`
	World     []CityReading  `cbor:"7,keyasint,omitempty" json:"world"`
}
