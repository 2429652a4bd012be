package proximity

import (
	"fmt"
	"strings"
)

// String returns a human-readable multi-line rendering of the snapshot.
func (s DeviceState) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s", s.Model)
	if s.Refined {
		b.WriteString(" (refined, 1% accuracy)")
	}
	b.WriteString("\n")

	writePod := func(label string, battery *uint8, charging, inEar bool) {
		fmt.Fprintf(&b, "  %s ", label)
		if battery == nil {
			b.WriteString("Unknown")
		} else {
			fmt.Fprintf(&b, "%d%%", *battery)
			if charging {
				b.WriteString(" (Charging)")
			}
			if inEar {
				b.WriteString(" [In Ear]")
			}
		}
		b.WriteString("\n")
	}

	writePod("Left: ", s.LeftBattery, s.LeftCharging, s.LeftInEar)
	writePod("Right:", s.RightBattery, s.RightCharging, s.RightInEar)

	b.WriteString("  Case: ")
	if s.CaseBattery == nil {
		b.WriteString("Unknown")
	} else {
		fmt.Fprintf(&b, "%d%%", *s.CaseBattery)
		if s.CaseCharging {
			b.WriteString(" (Charging)")
		}
	}
	b.WriteString("\n")

	if s.LidOpened {
		b.WriteString("  Lid:  Open")
	} else {
		b.WriteString("  Lid:  Closed")
	}
	if s.BothPodsInCase {
		b.WriteString(", both pods in case")
	}

	return b.String()
}
