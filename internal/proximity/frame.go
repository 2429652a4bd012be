// Package proximity decodes the Proximity Pairing message of Apple's
// Continuity protocol, the manufacturer-specific BLE advertisement payload
// AirPods broadcast to announce battery, charging, in-ear and case state.
//
// The format is not documented by Apple; offsets and bit positions below are
// the de-facto layout observed on real hardware and must not be changed
// without re-verifying against live advertisements.
//
// Decoding is a pure, stateless transform: raw bytes in, a DeviceState
// snapshot out. Callers must Validate a payload before unpacking it; the
// deriver performs no bounds checks of its own.
package proximity

import "encoding/binary"

// FrameSize is the total size of a Proximity Pairing manufacturer-data
// payload: a 2-byte header, 9 plaintext bytes and a 16-byte encrypted tail.
const FrameSize = 27

// Byte offsets within the frame.
const (
	offsetPacketType      = 0
	offsetRemainingLength = 1
	offsetModelID         = 2 // uint16, little-endian
	offsetStatus          = 4 // broadcastFrom / bothInCase / lidState bit-fields
	offsetBattery         = 5 // curr (low nibble), anot (high nibble)
	offsetCase            = 6 // caseBox (low nibble)
	offsetFlags           = 7 // charging / in-ear bit-flags
	offsetEncrypted       = 11
)

// encryptedSize is the AES block carrying the accurate battery refinement.
const encryptedSize = 16

// The remaining-length header counts every byte following the field itself.
// Computed from the layout so it stays correct if FrameSize ever moves.
const shouldRemainingLength = FrameSize - (offsetRemainingLength + 1)

// Validate reports whether data is a well-formed Proximity Pairing frame:
// exact frame size, correct packet-type tag and a self-consistent
// remaining-length header. It is a pure predicate; on true the payload may be
// unpacked, on false it is some other (or corrupt) advertisement and must be
// dropped.
func Validate(data []byte) bool {
	if len(data) != FrameSize {
		return false
	}
	if PacketType(data[offsetPacketType]) != PacketTypeProximityPairing {
		return false
	}
	if data[offsetRemainingLength] != shouldRemainingLength {
		return false
	}
	return true
}

// Record holds the raw fields of one Proximity Pairing frame, exactly as
// broadcast. Battery values are 4-bit units of 10% where 0-10 is valid and
// anything above means "not reported". The curr/anot pairs describe the
// broadcasting pod and the other pod respectively; BroadcastFrom says which
// physical side is which. Use the derivation methods to obtain left/right
// semantics rather than reading these fields directly.
type Record struct {
	ModelID       uint16
	BroadcastFrom uint8
	LidState      uint8
	BothInCase    bool

	Curr    uint8
	Anot    uint8
	CaseBox uint8

	CurrCharging bool
	AnotCharging bool
	CaseCharging bool

	CurrInEar bool
	AnotInEar bool
}

// Unpack extracts the raw fields from a validated frame. It is defined only
// over payloads for which Validate returned true.
func Unpack(data []byte) Record {
	status := data[offsetStatus]
	battery := data[offsetBattery]
	flags := data[offsetFlags]

	return Record{
		ModelID:       binary.LittleEndian.Uint16(data[offsetModelID : offsetModelID+2]),
		BroadcastFrom: status & 0x03,
		BothInCase:    (status>>2)&0x01 != 0,
		LidState:      (status >> 3) & 0x07,

		Curr:    battery & 0x0F,
		Anot:    (battery >> 4) & 0x0F,
		CaseBox: data[offsetCase] & 0x0F,

		CurrCharging: flags&0x01 != 0,
		AnotCharging: flags&0x02 != 0,
		CaseCharging: flags&0x04 != 0,

		CurrInEar: flags&0x08 != 0,
		AnotInEar: flags&0x10 != 0,
	}
}

// Decode validates data and, on success, derives its device-state snapshot.
// The bool mirrors Validate.
func Decode(data []byte) (DeviceState, bool) {
	if !Validate(data) {
		return DeviceState{}, false
	}
	return Unpack(data).State(), true
}
