// This is free and unencumbered software released into the public domain.
// See the UNLICENSE file for details.

// Package main - cyclometer is a three rotor cipher machine, after the
// Enigma I with rotors I, II and III and reflectors A and B, together with
// a cyclometer that computes the cycle structure of the doubled message key
// indicator for every rotor order and ground setting.
package main

import "github.com/bgallie/cyclometer/cmd"

func main() {
	cmd.Execute()
}
