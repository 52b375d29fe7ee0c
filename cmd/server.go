package cmd

import (
	"fmt"
	"log"
	"net/http"
)

// APIServer starts the HTTP server on the given port
func APIServer(handler http.Handler, port string) {
	addr := fmt.Sprintf(":%s", port)
	fmt.Printf("Server running on http://localhost%s\n", addr)

	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal("Server error:", err)
	}
}
