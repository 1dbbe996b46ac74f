package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"coin_panel/internal/service"
)

func main() {
	userID := flag.String("user", "smoke-1", "user id to accrue coins for")
	panelID := flag.String("panel-user", "1", "panel user id for the session")
	ticks := flag.Int("ticks", 3, "credit events to wait for before exiting")
	flag.Parse()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	path := os.Getenv("AFK_PATH")
	if path == "" {
		path = "ws"
	}

	service.InitJWT(jwtSecret)
	token, err := service.GenerateJWT(*userID, *panelID)
	if err != nil {
		log.Fatalf("gen token: %v", err)
	}

	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	wsURL := fmt.Sprintf("ws://127.0.0.1:%s/%s?token=%s", port, path, token)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	log.Printf("connected as %s, waiting for %d credits", *userID, *ticks)

	got := 0
	for got < *ticks {
		conn.SetReadDeadline(time.Now().Add(2 * time.Minute))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			log.Fatalf("read: %v", err)
		}
		var obj map[string]any
		_ = json.Unmarshal(msg, &obj)
		if t, ok := obj["type"].(string); ok && t == "coin" {
			got++
			log.Printf("credit %d/%d: %s", got, *ticks, string(msg))
		}
	}

	log.Println("smoke test finished")
}
