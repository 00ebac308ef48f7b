package main

import "github.com/kasuboski/mediaindex/cmd"

func main() {
	cmd.Execute()
}
