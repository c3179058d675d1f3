package main

import "github.com/oshokin/hydration-clock/cmd/clockd/cmd"

func main() {
	cmd.Execute()
}
