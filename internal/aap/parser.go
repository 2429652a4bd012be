// Package aap parses Apple Accessory Protocol (AAP) payloads. AAP is the
// L2CAP channel AirPods expose to a connected host; unlike the BLE broadcast
// it reports exact 1% battery levels and hands out the proximity keys needed
// to decrypt advertisement tails.
//
// Only the payload parsers live here. Establishing a connection and reading
// packets off the channel is the transport's business, not this package's.
package aap

import "fmt"

// Component says which part of the accessory a battery record describes.
type Component uint8

const (
	ComponentUnknown Component = 0
	ComponentRight   Component = 2
	ComponentLeft    Component = 4
	ComponentCase    Component = 8
)

func (c Component) String() string {
	switch c {
	case ComponentRight:
		return "Right"
	case ComponentLeft:
		return "Left"
	case ComponentCase:
		return "Case"
	default:
		return "Unknown"
	}
}

// ChargeStatus is the charging state reported per component.
type ChargeStatus uint8

const (
	StatusUnknown      ChargeStatus = 0
	StatusCharging     ChargeStatus = 1
	StatusDischarging  ChargeStatus = 2
	StatusDisconnected ChargeStatus = 4
)

func (s ChargeStatus) String() string {
	switch s {
	case StatusCharging:
		return "Charging"
	case StatusDischarging:
		return "Discharging"
	case StatusDisconnected:
		return "Disconnected"
	default:
		return "Unknown"
	}
}

// Battery is one component's exact battery reading.
type Battery struct {
	Component Component
	Level     uint8 // percent, 0-100
	Status    ChargeStatus
}

// BatteryInfo groups the readings of one battery notification. A component
// the packet did not mention stays nil.
type BatteryInfo struct {
	Left  *Battery
	Right *Battery
	Case  *Battery
}

// batteryHeader opens every battery notification.
var batteryHeader = []byte{0x04, 0x00, 0x04, 0x00, 0x04, 0x00}

// ParseBatteryPacket parses an AAP battery notification.
//
// Wire format: 04 00 04 00 04 00 <count>, then per component
// <component> 01 <level> <status> 01.
func ParseBatteryPacket(packet []byte) (*BatteryInfo, error) {
	if len(packet) < len(batteryHeader)+1 {
		return nil, fmt.Errorf("packet too short")
	}
	for i, b := range batteryHeader {
		if packet[i] != b {
			return nil, fmt.Errorf("not a battery packet")
		}
	}

	count := int(packet[len(batteryHeader)])
	info := &BatteryInfo{}

	offset := len(batteryHeader) + 1
	for i := 0; i < count; i++ {
		if offset+5 > len(packet) {
			return nil, fmt.Errorf("incomplete battery record at offset %d", offset)
		}

		// Bytes +1 and +4 are constant 0x01 separators.
		b := &Battery{
			Component: Component(packet[offset]),
			Level:     packet[offset+2],
			Status:    ChargeStatus(packet[offset+3]),
		}

		switch b.Component {
		case ComponentLeft:
			info.Left = b
		case ComponentRight:
			info.Right = b
		case ComponentCase:
			info.Case = b
		}

		offset += 5
	}

	return info, nil
}

func (bi *BatteryInfo) String() string {
	result := "Battery Status:\n"
	if bi.Left != nil {
		result += fmt.Sprintf("  Left:  %d%% (%s)\n", bi.Left.Level, bi.Left.Status)
	}
	if bi.Right != nil {
		result += fmt.Sprintf("  Right: %d%% (%s)\n", bi.Right.Level, bi.Right.Status)
	}
	if bi.Case != nil {
		result += fmt.Sprintf("  Case:  %d%% (%s)\n", bi.Case.Level, bi.Case.Status)
	}
	return result
}
