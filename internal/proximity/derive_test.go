package proximity

import "testing"

func pct(v uint8) *uint8 { return &v }

func batteryEq(got, want *uint8) bool {
	if got == nil || want == nil {
		return got == want
	}
	return *got == *want
}

func TestBroadcastedSide(t *testing.T) {
	tests := []struct {
		broadcastFrom uint8
		want          Side
	}{
		{0, SideRight},
		{1, SideLeft},
		{2, SideRight},
		{3, SideRight},
	}

	for _, tt := range tests {
		r := Record{BroadcastFrom: tt.broadcastFrom}
		if got := r.BroadcastedSide(); got != tt.want {
			t.Errorf("broadcastFrom=%d: side = %s, want %s", tt.broadcastFrom, got, tt.want)
		}
	}
}

func TestBatterySideRouting(t *testing.T) {
	// curr must follow the broadcasting side for every side-sensitive query.
	left := Record{BroadcastFrom: 1, Curr: 8, Anot: 6}
	if !batteryEq(left.LeftBattery(), pct(80)) || !batteryEq(left.RightBattery(), pct(60)) {
		t.Errorf("left broadcast: got left=%v right=%v, want 80/60", left.LeftBattery(), left.RightBattery())
	}

	right := Record{BroadcastFrom: 0, Curr: 8, Anot: 6}
	if !batteryEq(right.LeftBattery(), pct(60)) || !batteryEq(right.RightBattery(), pct(80)) {
		t.Errorf("right broadcast: got left=%v right=%v, want 60/80", right.LeftBattery(), right.RightBattery())
	}
}

func TestBatteryRange(t *testing.T) {
	for v := uint8(0); v <= 15; v++ {
		r := Record{BroadcastFrom: 1, Curr: v, CaseBox: v}
		got := r.LeftBattery()
		if v <= 10 {
			if !batteryEq(got, pct(v*10)) {
				t.Errorf("value %d: battery = %v, want %d%%", v, got, v*10)
			}
		} else if got != nil {
			t.Errorf("value %d: battery = %d%%, want unknown", v, *got)
		}
		if (r.CaseBattery() == nil) != (v > 10) {
			t.Errorf("value %d: case battery validity wrong", v)
		}
	}
}

func TestChargingSideRouting(t *testing.T) {
	r := Record{BroadcastFrom: 1, CurrCharging: false, AnotCharging: true}
	if r.LeftCharging() {
		t.Error("left charging derived from anot instead of curr")
	}
	if !r.RightCharging() {
		t.Error("right charging derived from curr instead of anot")
	}

	r.BroadcastFrom = 0
	if !r.LeftCharging() || r.RightCharging() {
		t.Error("charging routing did not flip with the broadcasting side")
	}
}

func TestChargingSuppressesInEar(t *testing.T) {
	tests := []struct {
		name     string
		record   Record
		wantLeft bool
	}{
		{
			name:     "in ear, not charging",
			record:   Record{BroadcastFrom: 1, CurrInEar: true},
			wantLeft: true,
		},
		{
			name:     "in ear bit set while charging",
			record:   Record{BroadcastFrom: 1, CurrInEar: true, CurrCharging: true},
			wantLeft: false,
		},
		{
			name:     "not in ear, charging",
			record:   Record{BroadcastFrom: 1, CurrCharging: true},
			wantLeft: false,
		},
		{
			name:     "suppression follows side routing",
			record:   Record{BroadcastFrom: 0, AnotInEar: true, AnotCharging: true},
			wantLeft: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.LeftInEar(); got != tt.wantLeft {
				t.Errorf("LeftInEar() = %v, want %v", got, tt.wantLeft)
			}
		})
	}

	// The quirk must not leak into the battery or charging queries.
	r := Record{BroadcastFrom: 1, Curr: 7, CurrCharging: true, CurrInEar: true}
	if !batteryEq(r.LeftBattery(), pct(70)) {
		t.Error("charging suppression leaked into the battery query")
	}
	if !r.LeftCharging() {
		t.Error("charging suppression leaked into the charging query")
	}
}

func TestLidOpened(t *testing.T) {
	for lid := uint8(0); lid <= 7; lid++ {
		r := Record{LidState: lid}
		want := lid != lidStateClosed
		if got := r.LidOpened(); got != want {
			t.Errorf("lidState=%d: LidOpened() = %v, want %v", lid, got, want)
		}
	}
}

func TestModelLookup(t *testing.T) {
	tests := []struct {
		id   uint16
		want Model
	}{
		{0x2002, ModelAirPods1},
		{0x200F, ModelAirPods2},
		{0x2013, ModelAirPods3},
		{0x200E, ModelAirPodsPro},
		{0x2014, ModelAirPodsPro2},
		{0x200A, ModelAirPodsMax},
		{0x9999, ModelUnknown},
		{0x0000, ModelUnknown},
	}

	for _, tt := range tests {
		r := Record{ModelID: tt.id}
		if got := r.Model(); got != tt.want {
			t.Errorf("modelId 0x%04X: Model() = %s, want %s", tt.id, got, tt.want)
		}
	}

	// The table must stay injective: two ids never share a model.
	seen := map[Model]uint16{}
	for id, m := range models {
		if prev, dup := seen[m]; dup {
			t.Errorf("ids 0x%04X and 0x%04X both map to %s", prev, id, m)
		}
		seen[m] = id
	}
}

// Scenario from observed AirPods Pro hardware: left pod broadcasting, right
// pod charging in the open case.
func TestStateFullFrame(t *testing.T) {
	data := buildFrame(frameOpts{
		modelID:       0x200E,
		broadcastFrom: 1,
		lidState:      2,
		curr:          8,
		anot:          6,
		caseBox:       5,
		anotCharging:  true,
		currInEar:     true,
	})

	state, ok := Decode(data)
	if !ok {
		t.Fatal("frame failed validation")
	}

	if state.Model != ModelAirPodsPro {
		t.Errorf("Model = %s, want AirPods Pro", state.Model)
	}
	if !batteryEq(state.LeftBattery, pct(80)) {
		t.Errorf("LeftBattery = %v, want 80%%", state.LeftBattery)
	}
	if !batteryEq(state.RightBattery, pct(60)) {
		t.Errorf("RightBattery = %v, want 60%%", state.RightBattery)
	}
	if !batteryEq(state.CaseBattery, pct(50)) {
		t.Errorf("CaseBattery = %v, want 50%%", state.CaseBattery)
	}
	if state.LeftCharging || !state.RightCharging || state.CaseCharging {
		t.Errorf("charging = %v/%v/%v, want false/true/false",
			state.LeftCharging, state.RightCharging, state.CaseCharging)
	}
	if !state.LeftInEar {
		t.Error("LeftInEar = false, want true")
	}
	if state.RightInEar {
		t.Error("RightInEar = true, want false (charging suppresses the bit)")
	}
	if state.BothPodsInCase {
		t.Error("BothPodsInCase = true, want false")
	}
	if !state.LidOpened {
		t.Error("LidOpened = false, want true")
	}
}

// Same frame with an out-of-range curr value: the left battery degrades to
// unknown, the right one stays intact.
func TestStatePerFieldValidity(t *testing.T) {
	data := buildFrame(frameOpts{
		modelID:       0x200E,
		broadcastFrom: 1,
		curr:          12,
		anot:          6,
	})

	state, ok := Decode(data)
	if !ok {
		t.Fatal("frame failed validation")
	}
	if state.LeftBattery != nil {
		t.Errorf("LeftBattery = %d%%, want unknown", *state.LeftBattery)
	}
	if !batteryEq(state.RightBattery, pct(60)) {
		t.Errorf("RightBattery = %v, want 60%%", state.RightBattery)
	}
}

// Unrecognized model ids decode normally everywhere else.
func TestStateUnknownModel(t *testing.T) {
	data := buildFrame(frameOpts{
		modelID:       0x9999,
		broadcastFrom: 1,
		curr:          4,
		anot:          9,
		bothInCase:    true,
	})

	state, ok := Decode(data)
	if !ok {
		t.Fatal("frame failed validation")
	}
	if state.Model != ModelUnknown {
		t.Errorf("Model = %s, want Unknown", state.Model)
	}
	if !batteryEq(state.LeftBattery, pct(40)) || !batteryEq(state.RightBattery, pct(90)) {
		t.Errorf("batteries = %v/%v, want 40/90", state.LeftBattery, state.RightBattery)
	}
	if !state.BothPodsInCase {
		t.Error("BothPodsInCase = false, want true")
	}
}

func TestLowestBattery(t *testing.T) {
	tests := []struct {
		name  string
		state DeviceState
		want  uint8
	}{
		{"no data", DeviceState{}, 0},
		{"single value", DeviceState{CaseBattery: pct(30)}, 30},
		{"picks minimum", DeviceState{LeftBattery: pct(80), RightBattery: pct(20), CaseBattery: pct(50)}, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.LowestBattery(); got != tt.want {
				t.Errorf("LowestBattery() = %d, want %d", got, tt.want)
			}
		})
	}
}
