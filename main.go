package main

import "github.com/pagegate/pagegate/cmd"

func main() {
	cmd.Execute()
}
