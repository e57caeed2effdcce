package main

import "notetaking-be/cmd/notes/cmd"

func main() {
	cmd.Execute()
}
