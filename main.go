package main

import "github.com/jmercer/compass/cmd"

func main() {
	cmd.Execute()
}
