package main

import "github.com/Yuiki/rgit/cmd/rgit/cmd"

func main() {
	cmd.Execute()
}
