package proximity

// DeviceState is the decoded snapshot of one Proximity Pairing frame. It is a
// plain value produced fresh per decode; battery percentages are nil when the
// frame did not report them (distinct from 0%).
type DeviceState struct {
	Model Model

	LeftBattery  *uint8
	RightBattery *uint8
	CaseBattery  *uint8

	LeftCharging  bool
	RightCharging bool
	CaseCharging  bool

	LeftInEar  bool
	RightInEar bool

	BothPodsInCase bool
	LidOpened      bool

	// Refined is set once the encrypted tail has been decrypted and merged,
	// meaning battery values are 1%-accurate instead of 10% steps.
	Refined bool
}

// HasBatteryData returns true if any battery level is available.
func (s *DeviceState) HasBatteryData() bool {
	return s.LeftBattery != nil || s.RightBattery != nil || s.CaseBattery != nil
}

// LowestBattery returns the lowest reported battery level, or 0 if nothing
// was reported.
func (s *DeviceState) LowestBattery() uint8 {
	lowest := uint8(100)
	hasData := false

	for _, b := range []*uint8{s.LeftBattery, s.RightBattery, s.CaseBattery} {
		if b == nil {
			continue
		}
		if *b < lowest {
			lowest = *b
		}
		hasData = true
	}

	if !hasData {
		return 0
	}
	return lowest
}
