package signal

type BackpressureAction int

const (
	DropFrame BackpressureAction = iota
	Disconnect
)

// Policy decides what happens to a client whose send buffer is full.
// dropped counts consecutive frames lost so far, including this one.
type Policy interface {
	OnBackpressure(client string, dropped int) BackpressureAction
}

// SimplePolicy drops frames and disconnects after MaxDropped in a row.
// Zero MaxDropped never disconnects.
type SimplePolicy struct {
	MaxDropped int
}

func (p SimplePolicy) OnBackpressure(client string, dropped int) BackpressureAction {
	if p.MaxDropped > 0 && dropped >= p.MaxDropped {
		return Disconnect
	}
	return DropFrame
}
