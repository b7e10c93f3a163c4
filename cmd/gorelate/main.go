package main

import "github.com/dbsmedya/gorelate/cmd/gorelate/cmd"

func main() {
	cmd.Execute()
}
