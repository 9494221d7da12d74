package main

import "github.com/kwyt0087/AI-employee-takes-leave/cmd"

func main() {
	cmd.Execute()
}
