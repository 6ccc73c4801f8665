package main

import "github.com/oshokin/proximity-lock/cmd/proximity-lock/cmd"

func main() {
	cmd.Execute()
}
