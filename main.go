package main

import "github.com/vibhu927/pg-next-full/cmd"

func main() {
	cmd.Execute()
}
