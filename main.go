package main

import "github.com/KaramelBytes/hostcompare/cmd"

func main() {
	cmd.Execute()
}
