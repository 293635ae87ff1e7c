package main

import "pulsestudy/cmd/pulse/root"

func main() {
	root.Execute()
}
