package main

import "github.com/Mohsinsiddi/stakeforms/cmd"

func main() {
	cmd.Execute()
}
