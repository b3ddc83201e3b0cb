package main

import "github.com/oshokin/timedeck/cmd/timedeck-ctl/cmd"

func main() {
	cmd.Execute()
}
