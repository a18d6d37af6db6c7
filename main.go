package main

import "github.com/tracksure/tracksure/cmd"

func main() {
	cmd.Execute()
}
