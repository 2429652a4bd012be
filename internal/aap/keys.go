package aap

import "fmt"

// KeyType identifies a proximity key kind.
type KeyType uint8

const (
	KeyTypeUnknown KeyType = 0x00
	KeyTypeIRK     KeyType = 0x01 // Identity Resolving Key
	KeyTypeENCKEY  KeyType = 0x04 // advertisement encryption key
)

func (k KeyType) String() string {
	switch k {
	case KeyTypeIRK:
		return "IRK (Identity Resolving Key)"
	case KeyTypeENCKEY:
		return "ENC_KEY (Encryption Key)"
	default:
		return fmt.Sprintf("UNKNOWN (0x%02X)", uint8(k))
	}
}

// ProximityKey is one key extracted from a key-response packet.
type ProximityKey struct {
	Type KeyType
	Data []byte
}

// keyMarker sits at byte 4 of every key-response packet.
const keyMarker = 0x31

// IsKeyPacket reports whether a packet carries proximity key material.
func IsKeyPacket(packet []byte) bool {
	return len(packet) >= 7 && packet[4] == keyMarker
}

// ParseProximityKeys extracts the keys from an AAP key-response packet.
//
// Wire format: 04 00 04 00 31 ?? <count>, then per key a 4-byte header
// <type> ?? <length> ?? followed by <length> bytes of key data.
func ParseProximityKeys(packet []byte) ([]ProximityKey, error) {
	if len(packet) < 7 {
		return nil, fmt.Errorf("packet too short (need at least 7 bytes, got %d)", len(packet))
	}
	if packet[4] != keyMarker {
		return nil, fmt.Errorf("not a key packet (byte[4]=0x%02X, expected 0x%02X)", packet[4], keyMarker)
	}

	count := int(packet[6])
	if count == 0 {
		return nil, fmt.Errorf("no keys in packet")
	}
	if count > 10 {
		return nil, fmt.Errorf("suspicious key count: %d", count)
	}

	keys := make([]ProximityKey, 0, count)
	offset := 7

	for i := 0; i < count; i++ {
		if offset+4 > len(packet) {
			return nil, fmt.Errorf("packet too short for key %d header", i+1)
		}

		keyType := KeyType(packet[offset])
		keyLen := int(packet[offset+2])
		offset += 4

		if offset+keyLen > len(packet) {
			return nil, fmt.Errorf("packet too short for key %d data (need %d bytes, have %d)",
				i+1, keyLen, len(packet)-offset)
		}

		data := make([]byte, keyLen)
		copy(data, packet[offset:offset+keyLen])
		keys = append(keys, ProximityKey{Type: keyType, Data: data})

		offset += keyLen
	}

	return keys, nil
}

// FindKey returns the data of the first key of the given type, nil if absent.
// The ENC_KEY is what proximity.DecryptTail consumes.
func FindKey(keys []ProximityKey, t KeyType) []byte {
	for _, key := range keys {
		if key.Type == t {
			return key.Data
		}
	}
	return nil
}
