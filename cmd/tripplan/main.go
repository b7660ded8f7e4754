package main

import "github.com/example/tripplanner/cmd"

func main() {
	cmd.Execute()
}
