package transport

// Phase names the stage of the protocol a transport observation snapshot
// currently believes is in flight. The transport itself does not interpret
// phases; callers set it via SimulatedLink.SetPhase so /status has
// something more meaningful than "idle" to show.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseRound1    Phase = "round1"
	PhaseRound2    Phase = "round2"
	PhaseAggregate Phase = "aggregate"
	PhaseComplete  Phase = "complete"
)

// Event is the common interface satisfied by every recorded transport
// event. RecentEvents holds a bounded window of these in arrival order.
type Event interface {
	eventKind() string
}

// PacketLost records a single lost-fragment retry attempt.
type PacketLost struct {
	FragmentID int
	RetryCount int
}

func (PacketLost) eventKind() string { return "PacketLost" }

// TransmitFragment records one successfully delivered fragment.
type TransmitFragment struct {
	FragmentID int
	Total      int
	Bytes      int
}

func (TransmitFragment) eventKind() string { return "TransmitFragment" }

// TransmitComplete closes out one Send call.
type TransmitComplete struct {
	TotalTimeMs int64
	Retries     int
}

func (TransmitComplete) eventKind() string { return "TransmitComplete" }

const (
	maxRecentEvents = 100
	maxCLILog       = 500
)

// TransportState is a point-in-time snapshot of a SimulatedLink's
// observation surface. It is a plain value: callers get a copy from
// Stats and may read it freely without touching the link's lock.
type TransportState struct {
	CurrentPhase  Phase
	TotalMessages int
	TotalBytes    int
	Progress      float64
	RSSI          int
	RecentEvents  []Event
	ByTypeCounts  map[MessageType]int
	TotalRetries  int
	CLILog        []string
}

func newTransportState() TransportState {
	return TransportState{
		CurrentPhase: PhaseIdle,
		RSSI:         rssiStart,
		ByTypeCounts: make(map[MessageType]int),
	}
}

// clone returns a deep-enough copy that the caller cannot mutate the
// link's internal slices/maps through the returned value.
func (s TransportState) clone() TransportState {
	out := s
	out.RecentEvents = append([]Event(nil), s.RecentEvents...)
	out.CLILog = append([]string(nil), s.CLILog...)
	out.ByTypeCounts = make(map[MessageType]int, len(s.ByTypeCounts))
	for k, v := range s.ByTypeCounts {
		out.ByTypeCounts[k] = v
	}
	return out
}

func appendBounded[T any](slice []T, item T, max int) []T {
	slice = append(slice, item)
	if len(slice) > max {
		slice = slice[len(slice)-max:]
	}
	return slice
}
