package main

import "triekv/cmd"

func main() {
	cmd.Execute()
}
