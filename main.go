package main

import "github.com/BioHazard786/warpline/cmd"

func main() {
	cmd.Execute()
}
