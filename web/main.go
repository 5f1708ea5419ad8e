package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()

	webServer := server.NewServer(*port)
	fmt.Printf("Whitted Raytracer Web Server\nVisit http://localhost:%d/api/scenes to list scenes\n", *port)

	if err := webServer.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting server: %v\n", err)
		os.Exit(1)
	}
}
