package main

import "github.com/sayanbanerjee32/nanogpt2-text-generator/cmd"

func main() {
	cmd.Execute()
}
