// Command client is a small terminal client for the voice notes API.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"voicenotes-server/internal/domain"
	"voicenotes-server/internal/view"
	"voicenotes-server/pkg/client"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "server base URL")
	flag.Parse()

	v := view.New(client.New(*addr))
	if err := v.Load(); err != nil {
		log.Fatalf("Failed to load notes: %v", err)
	}

	printNotes(v)
	fmt.Println(`Commands: list | add <text> | edit <id> <text> | summarize <id> | delete <id> | quit`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}

		cmd, rest, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		switch cmd {
		case "":
		case "list":
			if err := v.Load(); err != nil {
				fmt.Println("error:", err)
				continue
			}
			printNotes(v)
		case "add":
			if _, err := v.Commit(rest); err != nil {
				fmt.Println("error:", err)
				continue
			}
			printNotes(v)
		case "edit":
			id, text, _ := strings.Cut(rest, " ")
			if _, err := v.Edit(id, text); err != nil {
				fmt.Println("error:", err)
				continue
			}
			printNotes(v)
		case "summarize":
			note, err := v.Summarize(strings.TrimSpace(rest))
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			fmt.Printf("summary: %s\n", *note.Summary)
		case "delete":
			if err := v.Delete(strings.TrimSpace(rest)); err != nil {
				fmt.Println("error:", err)
				continue
			}
			printNotes(v)
		case "quit", "exit":
			return
		default:
			fmt.Println("unknown command:", cmd)
		}
	}
}

func printNotes(v *view.View) {
	notes := v.Notes()
	if len(notes) == 0 {
		fmt.Println("no notes yet")
		return
	}
	for _, n := range notes {
		fmt.Printf("%s  %s  %s\n", n.ID, n.CreatedAt.Format("2006-01-02 15:04"), n.Text)
		if n.Summary != nil {
			fmt.Printf("    summary: %s\n", summaryLine(n))
		}
	}
}

func summaryLine(n *domain.Note) string {
	return strings.ReplaceAll(*n.Summary, "\n", " ")
}
