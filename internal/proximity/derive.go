package proximity

// Side names a physical pod.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "Left"
	case SideRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// broadcastFromLeft is the only selector value known to mean the left pod.
// Every other observed value is treated as the right pod; whether the field
// can carry more than two meaningful codes is unconfirmed.
const broadcastFromLeft = 1

// lidStateClosed is the lid code taken to mean "closed"; the remaining codes
// of the 3-bit field count as open.
const lidStateClosed = 0

// Each derivation below re-resolves the broadcasting side on its own instead
// of sharing a cached mapping, so every query stays self-contained over the
// same Record.

// BroadcastedSide returns the physical pod whose own sensors produced the
// curr fields of this frame.
func (r Record) BroadcastedSide() Side {
	if r.BroadcastFrom == broadcastFromLeft {
		return SideLeft
	}
	return SideRight
}

func (r Record) leftBroadcasted() bool {
	return r.BroadcastedSide() == SideLeft
}

// Model resolves the broadcast model identifier, ModelUnknown if the id is
// not in the known table.
func (r Record) Model() Model {
	return models[r.ModelID]
}

// decodeBattery turns a raw unit-of-10% value into a percentage, nil when the
// value is outside 0-10 and therefore not reported.
func decodeBattery(v uint8) *uint8 {
	if v > 10 {
		return nil
	}
	pct := v * 10
	return &pct
}

// LeftBattery returns the left pod's charge percentage, nil if unknown.
func (r Record) LeftBattery() *uint8 {
	if r.leftBroadcasted() {
		return decodeBattery(r.Curr)
	}
	return decodeBattery(r.Anot)
}

// RightBattery returns the right pod's charge percentage, nil if unknown.
func (r Record) RightBattery() *uint8 {
	if r.leftBroadcasted() {
		return decodeBattery(r.Anot)
	}
	return decodeBattery(r.Curr)
}

// CaseBattery returns the case charge percentage, nil if unknown.
func (r Record) CaseBattery() *uint8 {
	return decodeBattery(r.CaseBox)
}

func (r Record) LeftCharging() bool {
	if r.leftBroadcasted() {
		return r.CurrCharging
	}
	return r.AnotCharging
}

func (r Record) RightCharging() bool {
	if r.leftBroadcasted() {
		return r.AnotCharging
	}
	return r.CurrCharging
}

func (r Record) IsCaseCharging() bool {
	return r.CaseCharging
}

func (r Record) IsBothPodsInCase() bool {
	return r.BothInCase
}

// LidOpened reports whether the case lid is open.
func (r Record) LidOpened() bool {
	return r.LidState != lidStateClosed
}

// LeftInEar reports whether the left pod sits in an ear. A pod that is
// charging sometimes keeps a stale in-ear bit set (hardware quirk), so the
// charging flag takes precedence and suppresses the signal. The suppression
// applies to the in-ear derivation only, never to battery or charging.
func (r Record) LeftInEar() bool {
	if r.LeftCharging() {
		return false
	}
	if r.leftBroadcasted() {
		return r.CurrInEar
	}
	return r.AnotInEar
}

// RightInEar reports whether the right pod sits in an ear, with the same
// charging suppression as LeftInEar.
func (r Record) RightInEar() bool {
	if r.RightCharging() {
		return false
	}
	if r.leftBroadcasted() {
		return r.AnotInEar
	}
	return r.CurrInEar
}

// State assembles the full snapshot from the individual queries.
func (r Record) State() DeviceState {
	return DeviceState{
		Model:          r.Model(),
		LeftBattery:    r.LeftBattery(),
		RightBattery:   r.RightBattery(),
		CaseBattery:    r.CaseBattery(),
		LeftCharging:   r.LeftCharging(),
		RightCharging:  r.RightCharging(),
		CaseCharging:   r.IsCaseCharging(),
		LeftInEar:      r.LeftInEar(),
		RightInEar:     r.RightInEar(),
		BothPodsInCase: r.IsBothPodsInCase(),
		LidOpened:      r.LidOpened(),
	}
}
