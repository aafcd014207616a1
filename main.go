package main

import "github.com/Manu343726/mcugen/cmd"

func main() {
	cmd.Execute()
}
