package main

import "github.com/mytheresa/warehouse-service/cmd/warehouse/commands"

func main() {
	commands.Execute()
}
