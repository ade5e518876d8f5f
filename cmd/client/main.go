// Package main implements the interactive Notesia client shell: it
// authenticates against the server and manages notes and AI requests
// through the API client layer.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/notesia/notesia/internal/client/api"
	"github.com/notesia/notesia/internal/client/session"
	"github.com/notesia/notesia/internal/client/validate"
	"github.com/notesia/notesia/internal/models"
)

var (
	version   string
	buildDate string
)

// prompt reads one trimmed line after printing label.
func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

// promptPassword reads a password without echoing it.
func promptPassword(label string) string {
	fmt.Print(label)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// promptDraft collects a note draft from the terminal, enforcing the form
// constraints as fields are entered. base pre-fills the form when editing.
func promptDraft(scanner *bufio.Scanner, base *models.Note) (models.NoteDraft, bool) {
	var draft models.NoteDraft
	if base != nil {
		draft = models.NoteDraft{
			Title:   base.Title,
			Content: base.Content,
			Status:  string(base.Status),
			Tags:    append([]string{}, base.Tags...),
		}
	}

	if t := prompt(scanner, fmt.Sprintf("Title [%s]: ", draft.Title)); t != "" {
		draft.Title = t
	}
	if c := prompt(scanner, fmt.Sprintf("Content [%s]: ", truncate(draft.Content, 40))); c != "" {
		draft.Content = c
	}
	if s := prompt(scanner, fmt.Sprintf("Status (draft/published/archived) [%s]: ", draft.Status)); s != "" {
		draft.Status = s
	}

	// Tags are validated as they are typed, not only at submit time
	for {
		raw := prompt(scanner, fmt.Sprintf("Add tag (empty to finish) %v: ", draft.Tags))
		if raw == "" {
			break
		}
		tags, err := validate.AddTag(draft.Tags, raw)
		if err != nil {
			fmt.Println("  ", err)
			if errors.Is(err, validate.ErrTooManyTags) {
				break
			}
			continue
		}
		draft.Tags = tags
	}

	if errs := validate.Draft(draft); len(errs) > 0 {
		for field, msg := range errs {
			fmt.Printf("  %s: %s\n", field, msg)
		}
		return draft, false
	}
	return draft, true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func printNote(n models.Note) {
	fmt.Printf("ID: %s\nTitle: %s\nStatus: %s\nTags: %s\nUpdated: %s\n%s\n---\n",
		n.ID, n.Title, n.Status, strings.Join(n.Tags, ", "),
		n.UpdatedAt.Format("2006-01-02 15:04"), n.Content)
}

// fail prints an error; it reports true when the session has expired and
// the shell should drop back to login.
func fail(err error) bool {
	if errors.Is(err, api.ErrSessionExpired) {
		fmt.Println("Session expired. Please log in again.")
		return true
	}
	fmt.Println("error:", err)
	return false
}

func runRegister(ctx context.Context, client *api.Client, scanner *bufio.Scanner) {
	email := prompt(scanner, "Email: ")
	password := promptPassword("Password: ")
	firstName := prompt(scanner, "First name: ")
	lastName := prompt(scanner, "Last name: ")
	username := prompt(scanner, "Username (empty to derive from email): ")

	res, err := client.Register(ctx, api.RegisterParams{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
		Username:  username,
	})
	if err != nil {
		fail(err)
		return
	}
	fmt.Println(res.Message)
}

func runLogin(ctx context.Context, client *api.Client, scanner *bufio.Scanner) bool {
	email := prompt(scanner, "Email: ")
	password := promptPassword("Password: ")

	if _, err := client.Login(ctx, email, password); err != nil {
		fail(err)
		return false
	}
	fmt.Println("Logged in as", email)
	return true
}

// repl runs the interactive shell loop, accepting commands to manage notes.
func repl(client *api.Client, scanner *bufio.Scanner) {
	ctx := context.Background()

	for {
		fmt.Print("notesia> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, list [status], search <text>, get <id>, new, edit <id>,")
			fmt.Println("  delete <id>, tags, chat, summarize <id>, enhance <id> [mode], generate, analyze,")
			fmt.Println("  whoami, logout, exit")
		case "list":
			opts := api.ListOptions{}
			if len(args) > 1 {
				opts.Status = args[1]
			}
			notes, err := client.ListNotes(ctx, opts)
			if err != nil {
				if fail(err) {
					return
				}
				continue
			}
			for _, n := range notes {
				fmt.Printf("%s  [%s]  %s\n", n.ID, n.Status, n.Title)
			}
		case "search":
			if len(args) < 2 {
				fmt.Println("Usage: search <text>")
				continue
			}
			notes, err := client.ListNotes(ctx, api.ListOptions{Search: strings.Join(args[1:], " ")})
			if err != nil {
				if fail(err) {
					return
				}
				continue
			}
			for _, n := range notes {
				fmt.Printf("%s  [%s]  %s\n", n.ID, n.Status, n.Title)
			}
		case "get":
			if len(args) < 2 {
				fmt.Println("Usage: get <id>")
				continue
			}
			note, err := client.GetNote(ctx, args[1])
			if err != nil {
				if fail(err) {
					return
				}
				continue
			}
			printNote(*note)
		case "new":
			draft, ok := promptDraft(scanner, nil)
			if !ok {
				continue
			}
			note, err := client.CreateNote(ctx, draft)
			if err != nil {
				if fail(err) {
					return
				}
				continue
			}
			fmt.Println("Created note", note.ID)
		case "edit":
			if len(args) < 2 {
				fmt.Println("Usage: edit <id>")
				continue
			}
			existing, err := client.GetNote(ctx, args[1])
			if err != nil {
				if fail(err) {
					return
				}
				continue
			}
			draft, ok := promptDraft(scanner, existing)
			if !ok {
				continue
			}
			note, err := client.UpdateNote(ctx, args[1], draft)
			if err != nil {
				if fail(err) {
					return
				}
				continue
			}
			fmt.Println("Updated note", note.ID)
		case "delete":
			if len(args) < 2 {
				fmt.Println("Usage: delete <id>")
				continue
			}
			if err := client.DeleteNote(ctx, args[1]); err != nil {
				if fail(err) {
					return
				}
				continue
			}
			fmt.Println("Note deleted")
		case "tags":
			tags, err := client.Tags(ctx)
			if err != nil {
				if fail(err) {
					return
				}
				continue
			}
			fmt.Println(strings.Join(tags, ", "))
		case "chat":
			q := prompt(scanner, "Ask: ")
			if q == "" {
				continue
			}
			res, err := client.Chat(ctx, q, "")
			if err != nil {
				if fail(err) {
					return
				}
				continue
			}
			fmt.Println(res.Response)
		case "summarize":
			if len(args) < 2 {
				fmt.Println("Usage: summarize <id>")
				continue
			}
			res, err := client.Summarize(ctx, args[1])
			if err != nil {
				if fail(err) {
					return
				}
				continue
			}
			fmt.Println(res.AISummary)
		case "enhance":
			if len(args) < 2 {
				fmt.Println("Usage: enhance <id> [improve|expand|simplify]")
				continue
			}
			mode := ""
			if len(args) > 2 {
				mode = args[2]
			}
			res, err := client.Enhance(ctx, args[1], mode)
			if err != nil {
				if fail(err) {
					return
				}
				continue
			}
			fmt.Println(res.AIEnhancedContent)
		case "generate":
			p := prompt(scanner, "Prompt: ")
			if p == "" {
				continue
			}
			res, err := client.Generate(ctx, p, "")
			if err != nil {
				if fail(err) {
					return
				}
				continue
			}
			fmt.Printf("Title: %s\n\n%s\n", res.Title, res.Content)
		case "analyze":
			res, err := client.AnalyzeNotes(ctx)
			if err != nil {
				if fail(err) {
					return
				}
				continue
			}
			fmt.Printf("Analyzed %d notes (%s):\n%s\n", res.TotalNotesAnalyzed, res.AnalysisDate, res.Insights)
		case "whoami":
			u, err := client.Profile(ctx)
			if err != nil {
				if fail(err) {
					return
				}
				continue
			}
			fmt.Printf("%s <%s> (@%s)\n", u.FullName, u.Email, u.Username)
		case "logout":
			if err := client.Logout(ctx); err != nil {
				fmt.Println("error:", err)
			}
			fmt.Println("Logged out")
			return
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// main parses command-line flags and dispatches to the register or shell commands.
func main() {
	var (
		cmd     string
		baseURL string
		showVer bool
	)

	flag.StringVar(&cmd, "cmd", "shell", "command: register | shell")
	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("Notesia Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	if url := os.Getenv("NOTESIA_URL"); url != "" {
		baseURL = url
	}

	store := session.NewStore(session.DefaultPath())
	client := api.New(baseURL, store, nil)
	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	switch cmd {
	case "register":
		runRegister(ctx, client, scanner)
	case "shell":
		sess, err := store.Restore()
		if err != nil {
			log.Fatal(err)
		}
		if sess == nil {
			if !runLogin(ctx, client, scanner) {
				return
			}
		} else {
			fmt.Println("Welcome back,", sess.Email)
		}
		repl(client, scanner)
	default:
		log.Fatalf("unknown command: %s", cmd)
	}
}
