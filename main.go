package main

import "github.com/philipparndt/fusion2scad/internal/cmd"

func main() {
	cmd.Parse()
}
