package main

import "github.com/Abdulai258/aula/cmd"

func main() {
	cmd.Execute()
}
