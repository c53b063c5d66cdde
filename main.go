package main

import "train_station/cmd"

func main() {
	cmd.Execute()
}
