package proximity

import (
	"crypto/aes"
	"fmt"
)

// The plaintext refinement block carries known markers used to detect a wrong
// key: the upper nibble of byte 0 is always zero and byte 4 is always 0x2D.
// AES-ECB "succeeds" with any key, so without these the caller could not tell
// garbage from data.
const refinedMarker = 0x2D

// DecryptTail decrypts the 16-byte encrypted block at the end of a validated
// frame using the accessory's 16-byte proximity key (the ENC_KEY retrievable
// over AAP). The plaintext refines the coarse battery nibbles to 1% accuracy;
// see (*DeviceState).Refine. A key that fails the plaintext markers is
// rejected.
func DecryptTail(data []byte, key []byte) ([]byte, error) {
	if len(data) != FrameSize {
		return nil, fmt.Errorf("frame must be %d bytes, got %d", FrameSize, len(data))
	}
	if len(key) != aes.BlockSize {
		return nil, fmt.Errorf("proximity key must be %d bytes, got %d", aes.BlockSize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	// Single-block ECB: the tail is exactly one AES block and the frame
	// carries no IV or nonce.
	plain := make([]byte, encryptedSize)
	block.Decrypt(plain, data[offsetEncrypted:offsetEncrypted+encryptedSize])

	if plain[0]&0xF0 != 0 || plain[4] != refinedMarker {
		return nil, fmt.Errorf("decryption validation failed: incorrect proximity key")
	}

	return plain, nil
}

// refinedBattery decodes one plaintext battery byte: bit 7 is the charging
// flag, bits 0-6 the level. Levels above 100 mean not reported.
func refinedBattery(b byte) (*uint8, bool) {
	charging := b&0x80 != 0
	level := b & 0x7F
	if level > 100 {
		return nil, charging
	}
	return &level, charging
}

// Refine overwrites the snapshot's coarse battery and charging values with
// the 1%-accurate ones from a decrypted tail. Plaintext layout: byte 1 is the
// broadcasting pod, byte 2 the other pod, byte 3 the case, so pod bytes are
// routed left/right by the same broadcastFrom selector as every other
// derivation; r must be the Record the plaintext came from.
func (s *DeviceState) Refine(r Record, plain []byte) error {
	if len(plain) != encryptedSize {
		return fmt.Errorf("refinement block must be %d bytes, got %d", encryptedSize, len(plain))
	}

	curr, currCharging := refinedBattery(plain[1])
	anot, anotCharging := refinedBattery(plain[2])
	box, boxCharging := refinedBattery(plain[3])

	if r.BroadcastedSide() == SideLeft {
		s.LeftBattery, s.RightBattery = curr, anot
		s.LeftCharging, s.RightCharging = currCharging, anotCharging
	} else {
		s.LeftBattery, s.RightBattery = anot, curr
		s.LeftCharging, s.RightCharging = anotCharging, currCharging
	}

	if box != nil {
		s.CaseBattery = box
		s.CaseCharging = boxCharging
	}

	// Keep the charging-suppresses-in-ear rule intact for refined charging
	// flags too.
	if s.LeftCharging {
		s.LeftInEar = false
	}
	if s.RightCharging {
		s.RightInEar = false
	}

	s.Refined = true
	return nil
}
