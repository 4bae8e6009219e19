package main

import "github.com/rahmadiangg/attendance-management/cmd"

func main() {
	cmd.Execute()
}
