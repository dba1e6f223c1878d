package main

import "github.com/nbelhadj/maintenance-management/cmd"

func main() {
	cmd.Execute()
}
