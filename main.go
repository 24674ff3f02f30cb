package main

import "github.com/fdapde/gomesh/cmd"

func main() {
	cmd.Execute()
}
