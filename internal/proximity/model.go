package proximity

// Model identifies a known AirPods hardware model.
type Model int

const (
	ModelUnknown Model = iota
	ModelAirPods1
	ModelAirPods2
	ModelAirPods3
	ModelAirPodsPro
	ModelAirPodsPro2
	ModelAirPodsMax
)

// models maps the 16-bit identifier broadcast in the frame to a Model. The
// table is intentionally open to extension as new identifiers get observed;
// anything absent resolves to ModelUnknown.
var models = map[uint16]Model{
	0x2002: ModelAirPods1,
	0x200F: ModelAirPods2,
	0x2013: ModelAirPods3,
	0x200E: ModelAirPodsPro,
	0x2014: ModelAirPodsPro2,
	0x200A: ModelAirPodsMax,
}

func (m Model) String() string {
	switch m {
	case ModelAirPods1:
		return "AirPods (1st gen)"
	case ModelAirPods2:
		return "AirPods (2nd gen)"
	case ModelAirPods3:
		return "AirPods (3rd gen)"
	case ModelAirPodsPro:
		return "AirPods Pro"
	case ModelAirPodsPro2:
		return "AirPods Pro (2nd gen)"
	case ModelAirPodsMax:
		return "AirPods Max"
	default:
		return "Unknown"
	}
}
