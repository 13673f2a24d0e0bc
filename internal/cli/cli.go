// Package cli implements the interactive terminal front end: a small command
// loop over the queue, sync, and auth services. Every mutation goes through
// the modifier queue, so the commands work identically online and offline.
package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/zylch/zylch-go/internal/logger"
	"github.com/zylch/zylch-go/internal/service"
	"github.com/zylch/zylch-go/internal/store"
	"github.com/zylch/zylch-go/models"
)

const helpText = `Commands:
  sync                        run a full sync round now
  status                      cached record counts, queue depth, session expiry
  list <collection> [all]     list cached records (all includes tombstoned)
  show <collection> <id>      print one record's payload
  add <collection> <json>     queue a create
  edit <collection> <id> <json>  queue an update
  rm <collection> <id>        queue a delete
  copy <collection> <id>      copy a record's payload to the clipboard
  pending                     unconfirmed modifiers in enqueue order
  failed                      terminally failed modifiers
  retry <id>                  re-arm a failed modifier
  discard <id>                drop a modifier without sending it
  login                       run the browser login flow
  logout                      clear the session and return to login
  quit                        exit`

// CLI is the interactive command loop. Input and output are injectable so
// tests can drive it with canned command scripts.
type CLI struct {
	services *service.Services
	in       io.Reader
	out      io.Writer
	copyText func(string) error
	logger   *logger.Logger
}

func New(services *service.Services, log *logger.Logger) *CLI {
	return &CLI{
		services: services,
		in:       os.Stdin,
		out:      os.Stdout,
		copyText: clipboard.WriteAll,
		logger:   log,
	}
}

// LoginFlow runs the browser login and reports the resulting session. Used
// at startup when no persisted session can be restored.
func (c *CLI) LoginFlow(ctx context.Context) (models.Session, error) {
	fmt.Fprintln(c.out, "Opening your browser to sign in. Complete the login there and come back.")

	session, err := c.services.Auth.Login(ctx)
	if err != nil {
		return models.Session{}, fmt.Errorf("login flow: %w", err)
	}

	fmt.Fprintln(c.out, okStyle.Render("Signed in as "+session.Email))
	return session, nil
}

// Run reads commands until quit or logout. It returns true when the user
// logged out, so the caller can restart with a fresh login.
func (c *CLI) Run(ctx context.Context) (logout bool, err error) {
	fmt.Fprintln(c.out, titleStyle.Render("zylch"))
	fmt.Fprintln(c.out, helpStyle.Render(`Type "help" for commands.`))

	scanner := bufio.NewScanner(c.in)
	for {
		fmt.Fprint(c.out, promptStyle.Render("> "))
		if !scanner.Scan() {
			return false, scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		done, logout, err := c.dispatch(ctx, line)
		if err != nil {
			fmt.Fprintln(c.out, errorStyle.Render("error: "+err.Error()))
			continue
		}
		if done {
			return logout, nil
		}
	}
}

// dispatch executes one command line. done reports whether the loop should
// exit; command failures come back as err and keep the loop alive.
func (c *CLI) dispatch(ctx context.Context, line string) (done, logout bool, err error) {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "help":
		fmt.Fprintln(c.out, helpStyle.Render(helpText))
	case "sync":
		err = c.cmdSync(ctx)
	case "status":
		err = c.cmdStatus(ctx)
	case "list":
		err = c.cmdList(ctx, rest)
	case "show":
		err = c.cmdShow(ctx, rest)
	case "add":
		err = c.cmdAdd(ctx, rest)
	case "edit":
		err = c.cmdEdit(ctx, rest)
	case "rm":
		err = c.cmdRemove(ctx, rest)
	case "copy":
		err = c.cmdCopy(ctx, rest)
	case "pending":
		err = c.cmdPending(ctx)
	case "failed":
		err = c.cmdFailed(ctx)
	case "retry":
		err = c.cmdRetry(ctx, rest)
	case "discard":
		err = c.cmdDiscard(ctx, rest)
	case "login":
		_, err = c.LoginFlow(ctx)
	case "logout":
		if err = c.services.Auth.Logout(ctx); err != nil {
			return false, false, err
		}
		fmt.Fprintln(c.out, "Logged out.")
		return true, true, nil
	case "quit", "exit":
		return true, false, nil
	default:
		err = fmt.Errorf("unknown command %q, type \"help\"", cmd)
	}

	return false, false, err
}

func (c *CLI) cmdSync(ctx context.Context) error {
	fmt.Fprintln(c.out, "Syncing...")

	if err := c.services.Sync.Sync(ctx); err != nil {
		if errors.Is(err, service.ErrAuthRequired) {
			fmt.Fprintln(c.out, errorStyle.Render(`Session expired. Run "login" and sync again; queued changes are kept.`))
			return nil
		}
		return err
	}

	fmt.Fprintln(c.out, okStyle.Render("Sync finished."))
	return nil
}

func (c *CLI) cmdStatus(ctx context.Context) error {
	stats, err := c.services.Queue.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, titleStyle.Render("Cached records"))
	for _, collection := range models.Collections {
		fmt.Fprintf(c.out, "  %-10s %d\n", collection, stats.Records[collection])
	}
	fmt.Fprintf(c.out, "Queue: %d pending, %d failed\n", stats.Pending, stats.Failed)

	expiry, err := c.services.Auth.TokenExpiry()
	switch {
	case err != nil:
		fmt.Fprintln(c.out, helpStyle.Render("Session: none"))
	case expiry.IsZero():
		fmt.Fprintln(c.out, "Session: active")
	default:
		fmt.Fprintf(c.out, "Session: active until %s\n", expiry.Format("2006-01-02 15:04 MST"))
	}
	return nil
}

func (c *CLI) cmdList(ctx context.Context, rest string) error {
	name, option, _ := strings.Cut(rest, " ")
	collection, err := parseCollection(name)
	if err != nil {
		return err
	}

	filter := store.ListFilter{IncludeTombstoned: strings.TrimSpace(option) == "all"}
	records, err := c.services.Queue.List(ctx, collection, filter)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(c.out, helpStyle.Render("(empty)"))
		return nil
	}

	for _, record := range records {
		fmt.Fprintf(c.out, "  %-40s v%-4d %s\n", recordID(record), record.Version, recordFlags(record))
	}
	return nil
}

func (c *CLI) cmdShow(ctx context.Context, rest string) error {
	collection, id, err := parseCollectionAndID(rest)
	if err != nil {
		return err
	}

	record, err := c.services.Queue.Get(ctx, collection, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "%s v%d %s\n", recordID(record), record.Version, recordFlags(record))
	fmt.Fprintln(c.out, prettyJSON(record.Payload))
	return nil
}

func (c *CLI) cmdAdd(ctx context.Context, rest string) error {
	name, payload, _ := strings.Cut(rest, " ")
	collection, err := parseCollection(name)
	if err != nil {
		return err
	}

	queued, err := c.services.Queue.EnqueueCreate(ctx, collection, json.RawMessage(payload))
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Queued create %s\n", queued.ClientID)
	return nil
}

func (c *CLI) cmdEdit(ctx context.Context, rest string) error {
	name, tail, _ := strings.Cut(rest, " ")
	id, payload, _ := strings.Cut(strings.TrimSpace(tail), " ")
	collection, err := parseCollection(name)
	if err != nil {
		return err
	}
	if id == "" {
		return errors.New("usage: edit <collection> <id> <json>")
	}

	queued, err := c.services.Queue.EnqueueUpdate(ctx, collection, id, json.RawMessage(payload))
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Queued update %s\n", queued.ClientID)
	return nil
}

func (c *CLI) cmdRemove(ctx context.Context, rest string) error {
	collection, id, err := parseCollectionAndID(rest)
	if err != nil {
		return err
	}

	queued, err := c.services.Queue.EnqueueDelete(ctx, collection, id)
	if err != nil {
		return err
	}

	if queued.ClientID == "" {
		// The target was an unsent create; both cancelled out locally.
		fmt.Fprintln(c.out, "Removed locally, nothing to send.")
		return nil
	}
	fmt.Fprintf(c.out, "Queued delete %s\n", queued.ClientID)
	return nil
}

func (c *CLI) cmdCopy(ctx context.Context, rest string) error {
	collection, id, err := parseCollectionAndID(rest)
	if err != nil {
		return err
	}

	record, err := c.services.Queue.Get(ctx, collection, id)
	if err != nil {
		return err
	}
	if err = c.copyText(prettyJSON(record.Payload)); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}

	fmt.Fprintln(c.out, okStyle.Render("Copied to clipboard."))
	return nil
}

func (c *CLI) cmdPending(ctx context.Context) error {
	pending, err := c.services.Queue.Pending(ctx)
	if err != nil {
		return err
	}
	return c.printModifiers(pending)
}

func (c *CLI) cmdFailed(ctx context.Context) error {
	failed, err := c.services.Queue.Failed(ctx)
	if err != nil {
		return err
	}
	return c.printModifiers(failed)
}

func (c *CLI) cmdRetry(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("usage: retry <id>")
	}
	if err := c.services.Queue.Retry(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Re-armed for the next sync.")
	return nil
}

func (c *CLI) cmdDiscard(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("usage: discard <id>")
	}
	if err := c.services.Queue.Discard(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Discarded.")
	return nil
}

func (c *CLI) printModifiers(modifiers []models.Modifier) error {
	if len(modifiers) == 0 {
		fmt.Fprintln(c.out, helpStyle.Render("(empty)"))
		return nil
	}

	for _, m := range modifiers {
		line := fmt.Sprintf("  %s  %-6s %-10s %-40s %s attempts=%d",
			m.ClientID, m.Kind, m.Collection, m.DispatchTarget(), m.State, m.Attempts)
		if m.LastError != "" {
			line += "  " + errorStyle.Render(m.LastError)
		}
		fmt.Fprintln(c.out, line)
	}
	return nil
}

func parseCollection(name string) (models.Collection, error) {
	collection := models.Collection(strings.TrimSpace(name))
	if !collection.Valid() {
		return "", fmt.Errorf("unknown collection %q (email, calendar, contacts)", name)
	}
	return collection, nil
}

func parseCollectionAndID(rest string) (models.Collection, string, error) {
	name, id, _ := strings.Cut(rest, " ")
	collection, err := parseCollection(name)
	if err != nil {
		return "", "", err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "", errors.New("missing record id")
	}
	return collection, id, nil
}

// recordID prefers the server id; pending creates only have their
// placeholder client id.
func recordID(record models.CacheRecord) string {
	if record.RemoteID != "" {
		return record.RemoteID
	}
	return record.ClientID + " (local)"
}

func recordFlags(record models.CacheRecord) string {
	var flags []string
	if record.PendingCreate() {
		flags = append(flags, "unsent")
	}
	if record.Tombstoned {
		flags = append(flags, "deleted")
	}
	return strings.Join(flags, ",")
}

func prettyJSON(payload json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", "  "); err != nil {
		return string(payload)
	}
	return buf.String()
}
