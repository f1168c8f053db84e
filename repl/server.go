/*
File    : yalc/repl/server.go
Package : repl
*/

package repl

import (
	"fmt"
	"net"
)

// Serve listens on port and starts a fresh Repl (with its own Pipeline,
// via Start) per accepted connection, so each connection gets an
// independent compiler.Pipeline.
func (r *Repl) Serve(port string) error {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("could not start server on port %s: %w", port, err)
	}
	defer listener.Close()
	cyanColor.Printf("yalc REPL server listening on :%s\n", port)

	for {
		conn, err := listener.Accept()
		if err != nil {
			redColor.Printf("failed to accept connection: %v\n", err)
			continue
		}
		go r.handleClient(conn)
	}
}

func (r *Repl) handleClient(conn net.Conn) {
	defer conn.Close()
	cyanColor.Printf("client connected from %s\n", conn.RemoteAddr())
	session := New(r.Banner, r.Version, r.Line, r.Prompt, r.Config)
	session.Start(conn, conn)
	cyanColor.Printf("client disconnected from %s\n", conn.RemoteAddr())
}
