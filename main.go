package main

import "github.com/mpapenbr/iracelog-fuelplan/cmd"

func main() {
	cmd.Execute()
}
