package proximity

import "fmt"

// PacketType tags an Apple Continuity message. Every manufacturer-data payload
// Apple devices broadcast starts with one of these, followed by a one-byte
// remaining-length count. Only ProximityPairing is decoded here; the rest are
// listed so diagnostics can name what was seen.
type PacketType uint8

const (
	PacketTypeAirPrint         PacketType = 0x03
	PacketTypeAirDrop          PacketType = 0x05
	PacketTypeHomeKit          PacketType = 0x06
	PacketTypeProximityPairing PacketType = 0x07
	PacketTypeHeySiri          PacketType = 0x08
	PacketTypeAirPlay          PacketType = 0x09
	PacketTypeMagicSwitch      PacketType = 0x0B
	PacketTypeHandoff          PacketType = 0x0C
	PacketTypeTetheringTarget  PacketType = 0x0D
	PacketTypeTetheringSource  PacketType = 0x0E
	PacketTypeNearbyAction     PacketType = 0x0F
	PacketTypeNearbyInfo       PacketType = 0x10
)

func (p PacketType) String() string {
	switch p {
	case PacketTypeAirPrint:
		return "AirPrint"
	case PacketTypeAirDrop:
		return "AirDrop"
	case PacketTypeHomeKit:
		return "HomeKit"
	case PacketTypeProximityPairing:
		return "Proximity Pairing"
	case PacketTypeHeySiri:
		return "Hey Siri"
	case PacketTypeAirPlay:
		return "AirPlay"
	case PacketTypeMagicSwitch:
		return "Magic Switch"
	case PacketTypeHandoff:
		return "Handoff"
	case PacketTypeTetheringTarget:
		return "Tethering Target Presence"
	case PacketTypeTetheringSource:
		return "Tethering Source Presence"
	case PacketTypeNearbyAction:
		return "Nearby Action"
	case PacketTypeNearbyInfo:
		return "Nearby Info"
	default:
		return fmt.Sprintf("Unknown (0x%02X)", uint8(p))
	}
}
