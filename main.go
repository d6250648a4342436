package main

import "lcftrans/cmd"

func main() {
	cmd.Execute()
}
