package main

import "commission-comparer/cmd"

func main() {
	cmd.Execute()
}
