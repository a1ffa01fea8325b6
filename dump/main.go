package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hatstand/somfy/rts"
)

var address = flag.String("address", "184623", "Remote address in hexadecimal")
var command = flag.String("command", "u", "Command: u, s, d or p")
var code = flag.Uint("code", 1, "Rolling code")
var deobfuscate = flag.String("frame", "", "Obfuscated frame in hexadecimal to decode instead")

func dumpFrame(name string, f rts.Frame) {
	fmt.Printf("%-12s %s\n", name, f)
}

func decode(s string) error {
	data, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil || len(data) != rts.FrameLen {
		return fmt.Errorf("frame must be exactly %d bytes in hexadecimal", rts.FrameLen)
	}
	var f rts.Frame
	copy(f[:], data)
	raw := rts.Deobfuscate(f)
	dumpFrame("obfuscated", f)
	dumpFrame("checksummed", raw)
	fmt.Printf("%-12s %s\n", "button", rts.Button(raw[1]>>4))
	fmt.Printf("%-12s %d\n", "code", int(raw[2])<<8|int(raw[3]))
	fmt.Printf("%-12s %02x%02x%02x\n", "address", raw[4], raw[5], raw[6])
	fmt.Printf("%-12s %v\n", "checksum ok", rts.Checksum(raw) == 0)
	return nil
}

func main() {
	flag.Parse()

	if *deobfuscate != "" {
		if err := decode(*deobfuscate); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	addr, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(*address), "0x"), 16, 24)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Address must be at most 3 bytes in hexadecimal")
		os.Exit(1)
	}
	if len(*command) != 1 {
		fmt.Fprintln(os.Stderr, "Command must be a single character")
		os.Exit(1)
	}
	button, ok := rts.ParseCommand((*command)[0])
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", *command)
		os.Exit(1)
	}

	dumpFrame("raw", rts.Raw(uint32(addr), button, uint32(*code)))
	dumpFrame("checksummed", rts.Checksummed(uint32(addr), button, uint32(*code)))
	f, next := rts.Encode(uint32(addr), button, uint32(*code))
	dumpFrame("obfuscated", f)
	fmt.Printf("%-12s %d\n", "next code", next)
	for _, first := range []bool{true, false} {
		p := rts.Waveform(f, first)
		fmt.Printf("%-12s %d pulses, %v (first=%v)\n", "waveform", len(p), rts.Duration(p), first)
	}
}
