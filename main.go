// This is free and unencumbered software released into the public domain.
// See the UNLICENSE file for details.

// Package main - fialka is a simulator of a ten rotor cipher machine in the
// style of the Soviet M-125 "Fialka".  Each letter passes through a plugboard,
// ten stepping rotors and a reflector, then back out through the rotors and
// the plugboard, so the same settings both encrypt and decrypt.
package main

import "github.com/bgallie/fialka/cmd"

func main() {
	cmd.Execute()
}
