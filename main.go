package main

import "github.com/KaramelBytes/dietrisk-cli/cmd"

func main() {
	cmd.Execute()
}
