// applecp decodes Apple Continuity payloads from the command line.
//
// The main command takes the hex dump of one manufacturer-data record (as
// captured by any BLE sniffer, Apple's company ID already stripped) and
// prints the device state it announces:
//
//	applecp decode 071901022055aab556310000...
//
// With --key and the accessory's proximity encryption key, the encrypted tail
// is decrypted as well and battery levels are reported with 1% accuracy:
//
//	applecp decode --key a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6 0719...
//
// The aap subcommands decode Apple Accessory Protocol payloads captured from
// a connected accessory, including the key-response packet that contains the
// proximity key itself.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/op/go-logging"
	"github.com/urfave/cli"

	"applecp/internal/aap"
	"applecp/internal/proximity"
)

func main() {
	setupLogging(logging.INFO)

	app := cli.NewApp()
	app.Name = "applecp"
	app.Usage = "decode Apple Continuity proximity pairing payloads"
	app.Commands = []cli.Command{
		cli.Command{
			Name:      "decode",
			Usage:     "Decode one proximity pairing advertisement payload",
			ArgsUsage: "<hex>",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "key, k",
					Usage: "16-byte proximity encryption key (hex) to decrypt the tail",
				},
				cli.BoolFlag{
					Name:  "verbose, v",
					Usage: "Print the raw field breakdown alongside the state",
				},
			},
			Action: decodeCommand,
		},
		cli.Command{
			Name:  "aap",
			Usage: "Decode Apple Accessory Protocol payloads",
			Subcommands: []cli.Command{
				cli.Command{
					Name:      "battery",
					Usage:     "Decode a battery notification",
					ArgsUsage: "<hex>",
					Action:    aapBatteryCommand,
				},
				cli.Command{
					Name:      "keys",
					Usage:     "Decode a key-response packet",
					ArgsUsage: "<hex>",
					Action:    aapKeysCommand,
				},
			},
		},
	}
	app.Run(os.Args)
}

// hexArg decodes the first positional argument as hex, tolerating the
// separators sniffer tools like to insert.
func hexArg(c *cli.Context) ([]byte, error) {
	arg := c.Args().First()
	if arg == "" {
		return nil, cli.NewExitError("missing hex payload argument", 1)
	}
	arg = strings.NewReplacer(" ", "", ":", "", "-", "").Replace(arg)
	data, err := hex.DecodeString(arg)
	if err != nil {
		return nil, cli.NewExitError(fmt.Sprintf("invalid hex payload: %v", err), 1)
	}
	return data, nil
}

func decodeCommand(c *cli.Context) error {
	data, err := hexArg(c)
	if err != nil {
		return err
	}

	if !proximity.Validate(data) {
		// Malformed or foreign advertisements are not actionable; warn and drop.
		log.Warningf("dropping malformed frame (%d bytes): %s", len(data), hex.EncodeToString(data))
		if len(data) > 0 {
			log.Warningf("packet type reads as: %s", proximity.PacketType(data[0]))
		}
		return cli.NewExitError("not a proximity pairing frame", 1)
	}

	record := proximity.Unpack(data)
	state := record.State()

	if keyHex := c.String("key"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil {
			return cli.NewExitError(fmt.Sprintf("invalid proximity key: %v", err), 1)
		}

		plain, err := proximity.DecryptTail(data, key)
		if err != nil {
			log.Warningf("tail decryption failed: %v", err)
			log.Warning("showing approximate values from the plaintext fields only")
		} else {
			if err := state.Refine(record, plain); err != nil {
				return cli.NewExitError(err.Error(), 1)
			}
			if c.Bool("verbose") {
				printPlainTail(plain)
			}
		}
	}

	if c.Bool("verbose") {
		printRecord(record)
	}
	printState(state)
	return nil
}

func printState(s proximity.DeviceState) {
	fmt.Println(cyan(s.Model.String()))
	printPod("Left: ", s.LeftBattery, s.LeftCharging, s.LeftInEar)
	printPod("Right:", s.RightBattery, s.RightCharging, s.RightInEar)
	printPod("Case: ", s.CaseBattery, s.CaseCharging, false)

	lid := "Closed"
	if s.LidOpened {
		lid = "Open"
	}
	fmt.Printf("  Lid:   %s\n", lid)
	if s.BothPodsInCase {
		fmt.Println("  Both pods in case")
	}
	if s.Refined {
		fmt.Println("  Battery accuracy: 1% (decrypted)")
	} else {
		fmt.Println("  Battery accuracy: 10% steps (broadcast)")
	}
}

func printPod(label string, battery *uint8, charging, inEar bool) {
	fmt.Printf("  %s ", label)
	if battery == nil {
		fmt.Print(yellow("Unknown"))
	} else {
		fmt.Print(batteryColor(*battery))
		if charging {
			fmt.Print(" ⚡")
		}
		if inEar {
			fmt.Print(" [In Ear]")
		}
	}
	fmt.Println()
}

func batteryColor(pct uint8) string {
	s := fmt.Sprintf("%d%%", pct)
	switch {
	case pct <= 20:
		return red(s)
	case pct <= 40:
		return yellow(s)
	default:
		return green(s)
	}
}

func printRecord(r proximity.Record) {
	fmt.Println(cyan("Raw fields:"))
	fmt.Printf("  modelId:       0x%04X\n", r.ModelID)
	fmt.Printf("  broadcastFrom: %d (%s pod broadcasting)\n", r.BroadcastFrom, r.BroadcastedSide())
	fmt.Printf("  lidState:      %d\n", r.LidState)
	fmt.Printf("  bothInCase:    %v\n", r.BothInCase)
	fmt.Printf("  battery:       curr=%d anot=%d case=%d (units of 10%%, >10 = unknown)\n",
		r.Curr, r.Anot, r.CaseBox)
	fmt.Printf("  charging:      curr=%v anot=%v case=%v\n",
		r.CurrCharging, r.AnotCharging, r.CaseCharging)
	fmt.Printf("  inEar:         curr=%v anot=%v\n", r.CurrInEar, r.AnotInEar)
}

func printPlainTail(plain []byte) {
	fmt.Println(cyan("Decrypted tail:"))
	for i, b := range plain {
		fmt.Printf("  Byte %2d: 0x%02X (%3d) %08b", i, b, b, b)
		switch i {
		case 1:
			fmt.Print("  ← broadcasting pod battery")
		case 2:
			fmt.Print("  ← other pod battery")
		case 3:
			fmt.Print("  ← case battery")
		}
		fmt.Println()
	}
}

func aapBatteryCommand(c *cli.Context) error {
	data, err := hexArg(c)
	if err != nil {
		return err
	}
	info, err := aap.ParseBatteryPacket(data)
	if err != nil {
		log.Warningf("dropping unparseable battery packet: %v", err)
		return cli.NewExitError("not an AAP battery packet", 1)
	}
	fmt.Print(info)
	return nil
}

func aapKeysCommand(c *cli.Context) error {
	data, err := hexArg(c)
	if err != nil {
		return err
	}
	if !aap.IsKeyPacket(data) {
		log.Warning("payload does not look like a key-response packet")
	}
	keys, err := aap.ParseProximityKeys(data)
	if err != nil {
		log.Warningf("dropping unparseable key packet: %v", err)
		return cli.NewExitError("not an AAP key-response packet", 1)
	}
	for _, key := range keys {
		fmt.Printf("%s\n  %s\n", cyan(key.Type.String()), hex.EncodeToString(key.Data))
	}
	if enc := aap.FindKey(keys, aap.KeyTypeENCKEY); enc != nil {
		fmt.Printf("\nDecrypt advertisements with:\n  applecp decode --key %s <hex>\n",
			hex.EncodeToString(enc))
	}
	return nil
}
