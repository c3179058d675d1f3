package main

import "github.com/oshokin/hydration-clock/cmd/clockctl/cmd"

func main() {
	cmd.Execute()
}
