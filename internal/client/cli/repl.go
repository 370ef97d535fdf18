// Package cli implements the interactive command loop of the client binary.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"streamverse/internal/client"
	"streamverse/internal/client/api"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// REPL drives one client App from an input stream.
type REPL struct {
	app    *client.App
	reader *bufio.Reader
	out    io.Writer
}

// NewREPL creates a command loop over the given app.
func NewREPL(app *client.App, in io.Reader, out io.Writer) *REPL {
	return &REPL{app: app, reader: bufio.NewReader(in), out: out}
}

// Run processes commands until exit or EOF.
func (r *REPL) Run(ctx context.Context) {
	fmt.Fprintln(r.out, "StreamVerse CLI (type 'help' for commands)")

	for {
		fmt.Fprintf(r.out, "streamverse %s> ", r.prompt())

		line, err := r.reader.ReadString('\n')
		if err != nil {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd, args := parts[0], parts[1:]
		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(r.out, "Bye!")

			return
		}

		if err := r.dispatch(ctx, cmd, args); err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
	}
}

func (r *REPL) prompt() string {
	if snapshot := r.app.State(); snapshot.LoggedIn() {
		return "[" + snapshot.Session.Username + "] "
	}

	return ""
}

func (r *REPL) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		r.printHelp()

		return nil
	case "ping":
		if err := r.app.Ping(ctx); err != nil {
			return err
		}
		fmt.Fprintln(r.out, "server is up")

		return nil
	case "register":
		return r.register(ctx)
	case "login":
		return r.login(ctx)
	case "logout":
		return r.app.Logout(ctx)
	case "whoami":
		return r.whoami()
	case "update":
		return r.updateProfile(ctx)
	case "delete-account":
		return r.deleteAccount(ctx)
	case "list":
		return r.list(ctx)
	case "add":
		return r.add(ctx)
	case "remove":
		if len(args) == 0 {
			return errors.New("usage: remove <item-id>")
		}

		return r.app.Favourites().Remove(ctx, args[0])
	case "theme":
		if len(args) == 0 {
			fmt.Fprintln(r.out, r.app.State().Theme)

			return nil
		}

		return r.app.SetTheme(ctx, args[0])
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (r *REPL) printHelp() {
	if r.app.State().LoggedIn() {
		fmt.Fprintln(r.out, "Available commands: whoami, list, add, remove, update, theme, delete-account, logout, ping, exit")

		return
	}

	fmt.Fprintln(r.out, "Available commands: register, login, theme, ping, exit")
}

func (r *REPL) register(ctx context.Context) error {
	email, err := r.readLine("Email")
	if err != nil {
		return err
	}
	username, err := r.readLine("Username")
	if err != nil {
		return err
	}
	firstName, err := r.readLine("First name")
	if err != nil {
		return err
	}
	lastName, err := r.readLine("Last name")
	if err != nil {
		return err
	}
	password, err := r.readSecret()
	if err != nil {
		return err
	}

	if err := r.app.Register(ctx, api.RegisterRequest{
		Email:     email,
		Username:  username,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
	}); err != nil {
		return err
	}

	fmt.Fprintln(r.out, "registered and logged in")

	return nil
}

func (r *REPL) login(ctx context.Context) error {
	identifier, err := r.readLine("Email or username")
	if err != nil {
		return err
	}
	password, err := r.readSecret()
	if err != nil {
		return err
	}

	if err := r.app.Login(ctx, identifier, password); err != nil {
		return err
	}

	fmt.Fprintln(r.out, "logged in")

	return nil
}

func (r *REPL) whoami() error {
	snapshot := r.app.State()
	if !snapshot.LoggedIn() {
		fmt.Fprintln(r.out, "not logged in")

		return nil
	}

	sess := snapshot.Session
	fmt.Fprintf(r.out, "%s %s <%s> (@%s)\n", sess.FirstName, sess.LastName, sess.Email, sess.Username)

	return nil
}

func (r *REPL) updateProfile(ctx context.Context) error {
	fmt.Fprintln(r.out, "Leave a field empty to keep its current value.")

	email, err := r.readLine("Email")
	if err != nil {
		return err
	}
	username, err := r.readLine("Username")
	if err != nil {
		return err
	}
	firstName, err := r.readLine("First name")
	if err != nil {
		return err
	}
	lastName, err := r.readLine("Last name")
	if err != nil {
		return err
	}

	if err := r.app.UpdateProfile(ctx, api.UpdateProfileRequest{
		Email:     email,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
	}); err != nil {
		return err
	}

	fmt.Fprintln(r.out, "profile updated")

	return nil
}

func (r *REPL) deleteAccount(ctx context.Context) error {
	answer, err := r.readLine("Type 'yes' to permanently delete your account")
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(r.out, "aborted")

		return nil
	}

	if err := r.app.DeleteAccount(ctx); err != nil {
		return err
	}

	fmt.Fprintln(r.out, "account deleted")

	return nil
}

func (r *REPL) list(ctx context.Context) error {
	if err := r.app.Favourites().Refresh(ctx); err != nil {
		return err
	}

	items := r.app.State().Favourites
	if len(items) == 0 {
		fmt.Fprintln(r.out, "no favourites yet")

		return nil
	}

	for _, item := range items {
		fmt.Fprintf(r.out, "%s  [%s]  %s\n", item.ID, item.Type, item.Title)
	}

	return nil
}

func (r *REPL) add(ctx context.Context) error {
	id, err := r.readLine("Item id")
	if err != nil {
		return err
	}
	itemType, err := r.readLine("Type (movie/music/podcast)")
	if err != nil {
		return err
	}
	title, err := r.readLine("Title")
	if err != nil {
		return err
	}
	description, err := r.readLine("Description")
	if err != nil {
		return err
	}
	image, err := r.readLine("Image URL")
	if err != nil {
		return err
	}
	status, err := r.readLine("Status")
	if err != nil {
		return err
	}

	return r.app.Favourites().Add(ctx, api.FavouriteItem{
		ID:          id,
		Type:        itemType,
		Title:       title,
		Description: description,
		Image:       image,
		Status:      status,
	})
}

// readLine prints a prompt and reads one trimmed input line.
func (r *REPL) readLine(prompt string) (string, error) {
	if _, err := fmt.Fprint(r.out, prompt+"\n> "); err != nil {
		return "", err
	}

	line, err := r.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}

		return "", err
	}

	return strings.TrimSpace(line), nil
}

// readSecret reads a password from the terminal without echo.
func (r *REPL) readSecret() (string, error) {
	if _, err := fmt.Fprint(r.out, "Enter password: "); err != nil {
		return "", err
	}

	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(r.out)
	if err != nil {
		return "", err
	}

	return string(pw), nil
}
