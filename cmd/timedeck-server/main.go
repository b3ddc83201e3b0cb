package main

import "github.com/oshokin/timedeck/cmd/timedeck-server/cmd"

func main() {
	cmd.Execute()
}
