package main

import (
	"NoYaRender/cmd"
)

func main() {
	cmd.Execute()
}
