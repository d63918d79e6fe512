package main

import "github.com/KaramelBytes/tableprof/cmd"

func main() {
	cmd.Execute()
}
