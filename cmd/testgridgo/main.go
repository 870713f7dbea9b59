package main

import "github.com/vk/testgridgo/cmd/testgridgo/cmd"

func main() {
	cmd.Execute()
}
