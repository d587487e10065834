package main

import "subra-settlement/cmd/settlectl/cmd"

func main() {
	cmd.Execute()
}
