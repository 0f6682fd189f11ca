// lox-playground serves a small WebSocket endpoint that runs Lox programs
// and streams their print output back to the client, one message per line.
//
// Protocol on /run: the client sends one text message containing the source.
// The server replies with zero or more {"type":"print"} messages while the
// program runs, then exactly one terminal message: {"type":"ok"} on success
// or {"type":"error","stage":..,"message":..} on failure. The connection is
// closed after the terminal message.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	lox "github.com/MegaThorx/lox-interpreter"
)

var addr = flag.String("addr", ":8090", "listen address")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The playground is same-origin agnostic; anyone who can reach the
	// port may run programs.
	CheckOrigin: func(*http.Request) bool { return true },
}

type outMsg struct {
	Type    string `json:"type"`
	Stage   string `json:"stage,omitempty"`
	Line    string `json:"line,omitempty"`
	Message string `json:"message,omitempty"`
}

func main() {
	flag.Parse()

	http.HandleFunc("/run", handleRun)
	log.Printf("lox-playground %s listening on %s", lox.Version, *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}

func handleRun(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade: %v", err)
		return
	}
	defer conn.Close()

	_, src, err := conn.ReadMessage()
	if err != nil {
		log.Printf("read: %v", err)
		return
	}

	runProgram(conn, string(src))
}

// runProgram executes one source text over the socket. Errors from the three
// pipeline stages are reported with their stage name so the client can map
// them to the CLI's exit statuses (lex/parse → 65, runtime → 70).
func runProgram(conn *websocket.Conn, src string) {
	tokens, lexErrs := lox.NewScanner(src).ScanTokens()
	if len(lexErrs) > 0 {
		send(conn, outMsg{Type: "error", Stage: "lex", Message: strings.Join(lexErrs, "\n")})
		return
	}

	statements, err := lox.NewParser(tokens).Parse()
	if err != nil {
		send(conn, outMsg{Type: "error", Stage: "parse", Message: err.Error()})
		return
	}

	ip := lox.NewInterpreter(func(line string) {
		send(conn, outMsg{Type: "print", Line: line})
	})
	if err := ip.Run(statements); err != nil {
		send(conn, outMsg{Type: "error", Stage: "runtime", Message: err.Error()})
		return
	}

	send(conn, outMsg{Type: "ok"})
}

func send(conn *websocket.Conn, m outMsg) {
	payload, err := json.Marshal(m)
	if err != nil {
		log.Printf("marshal: %v", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		log.Printf("write: %v", err)
	}
}
