package main

import "github.com/confect-dev/confect/cmd"

func main() {
	cmd.Execute()
}
