package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"shopassist/internal/chatbot"
	"shopassist/internal/console"
	"shopassist/internal/stub"
	"shopassist/internal/widget"
)

// shopchat runs the chat widget against a terminal instead of a storefront
// page: same controller, same wrapper, a console surface.
func main() {
	serviceURL := flag.String("service-url", envOrDefault("CHATBOT_SERVICE_URL", "http://localhost:8081"), "assistant service base URL")
	timeout := flag.Duration("timeout", 30*time.Second, "per-exchange timeout")
	products := flag.String("products", "", "comma-separated id=label pairs the page shows (default: demo catalog)")
	verbose := flag.Bool("v", false, "log exchange failures to stderr")
	flag.Parse()

	log := logrus.New()
	if *verbose {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	page := parsePageProducts(*products)
	if len(page) == 0 {
		page = demoPage()
	}

	client := chatbot.New(*serviceURL, chatbot.WithTimeout(*timeout), chatbot.WithLogger(log))
	surface := console.New(os.Stdout, page)
	ctrl := widget.New(surface, client, widget.WithControllerLogger(log))

	fmt.Println("Type a message, or /history, /clear, /minimize, /quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "/quit", "/q":
			return
		case "/history":
			for _, l := range client.History() {
				fmt.Println(l)
			}
			continue
		case "/clear":
			client.ClearHistory()
			fmt.Println("(history cleared)")
			continue
		case "/minimize":
			ctrl.ToggleMinimize()
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		err := ctrl.Send(ctx, line)
		cancel()
		if err != nil {
			fmt.Println("(still waiting on the previous message)")
		}
	}
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// parsePageProducts turns "ID=Label,ID2=Label2" into the page's product map.
// A bare id uses itself as the label.
func parsePageProducts(s string) map[string]string {
	page := make(map[string]string)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, label, found := strings.Cut(part, "=")
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		label = strings.TrimSpace(label)
		if !found || label == "" {
			label = id
		}
		page[id] = label
	}
	return page
}

// demoPage mirrors the demo catalog so recommendations from the stub have
// something on the page to flag.
func demoPage() map[string]string {
	page := make(map[string]string)
	for _, p := range stub.Catalog() {
		page[p.ID] = p.Name
	}
	return page
}
