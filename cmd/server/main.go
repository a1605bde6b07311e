package main

import "ptotracker/internal/app/server"

func main() {
	server.Run()
}
