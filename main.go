package main

import "tobaccoform/cmd"

func main() {
	cmd.Execute()
}
