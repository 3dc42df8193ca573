package main

import "github.com/dvkhr/madodl/cmd"

func main() {
	cmd.Execute()
}
