package booking

type Status string

const (
	StatusPending        Status = "pending"
	StatusDriverAssigned Status = "driver_assigned"
	StatusDriverAccepted Status = "driver_accepted"
	StatusDriverReached  Status = "driver_reached"
	StatusLoadingStarted Status = "loading_started"
	StatusInTransit      Status = "in_transit"
	StatusDelivered      Status = "delivered"
	StatusCompleted      Status = "completed"
	StatusCancelled      Status = "cancelled"
)

// happy-path order; Cancelled sits outside it
var lifecycle = []Status{
	StatusPending,
	StatusDriverAssigned,
	StatusDriverAccepted,
	StatusDriverReached,
	StatusLoadingStarted,
	StatusInTransit,
	StatusDelivered,
	StatusCompleted,
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return s == StatusCancelled || s.rank() >= 0
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Predecessor returns the status a booking must be in to move to s.
func (s Status) Predecessor() (Status, bool) {
	r := s.rank()
	if r <= 0 {
		return "", false
	}
	return lifecycle[r-1], true
}

func (s Status) rank() int {
	for i, st := range lifecycle {
		if st == s {
			return i
		}
	}
	return -1
}

type Type string

const (
	TypeOneWay     Type = "one_way"
	TypeBackload   Type = "backload"
	TypeSharedLoad Type = "shared_load"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeOneWay, TypeBackload, TypeSharedLoad:
		return true
	default:
		return false
	}
}
