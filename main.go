package main

import "github.com/xvierd/dayblocks/cmd"

func main() {
	cmd.Execute()
}
