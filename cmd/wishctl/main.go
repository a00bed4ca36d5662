// wishctl is a small command-line client for a running wishbox server. It
// talks the same REST surface as the web frontend, including the
// drag-and-drop reorder protocol: move issues one priority update per
// visible item, with no batching or rollback.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/mlakar/wishbox/internal/model"
	"github.com/mlakar/wishbox/internal/reorder"
)

const usage = `Usage: wishctl <command> [flags]

Commands:
  list    [-addr <url>] [-category <cat>]            list items in display order
  add     [-addr <url>] -name <n> -price <p> -url <u> [-category <cat>]
  move    [-addr <url>] [-category <cat>] <dragged-id> <target-id>
  delete  [-addr <url>] <id>
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "list":
		err = cmdList(ctx, os.Args[2:])
	case "add":
		err = cmdAdd(ctx, os.Args[2:])
	case "move":
		err = cmdMove(ctx, os.Args[2:])
	case "delete":
		err = cmdDelete(ctx, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n%s", os.Args[1], usage)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func addrFlag(fs *flag.FlagSet) *string {
	return fs.String("addr", "http://localhost:8080", "server base URL")
}

func fetchItems(ctx context.Context, base, category string) ([]model.Item, error) {
	u := base + "/items"
	if category != "" {
		u += "?category=" + url.QueryEscape(category)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching items: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching items: server returned %d", resp.StatusCode)
	}

	var items []model.Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decoding items: %w", err)
	}
	return items, nil
}

func cmdList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	addr := addrFlag(fs)
	category := fs.String("category", "", "filter by category")
	fs.Parse(args)

	items, err := fetchItems(ctx, *addr, *category)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tCATEGORY\tPRIORITY\tURL")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%s\t%d\t%s\n",
			it.ID, it.Name, it.Price, it.Category, it.Priority, it.URL)
	}
	return tw.Flush()
}

func cmdAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	addr := addrFlag(fs)
	name := fs.String("name", "", "item name")
	price := fs.Float64("price", 0, "item price")
	itemURL := fs.String("url", "", "item link")
	category := fs.String("category", "", "item category")
	fs.Parse(args)

	body, err := json.Marshal(map[string]any{
		"name":     *name,
		"price":    *price,
		"url":      *itemURL,
		"category": *category,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, *addr+"/items", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("creating item: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Success bool   `json:"success"`
		ID      int64  `json:"id"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("creating item: %s", result.Error)
	}

	fmt.Printf("created item %d\n", result.ID)
	return nil
}

// httpWriter implements reorder.Writer over the REST API: one PUT per item,
// exactly like the web frontend's drag handler.
type httpWriter struct {
	base string
}

func (w httpWriter) SetPriority(ctx context.Context, id int64, priority int) error {
	body, err := json.Marshal(map[string]int{"priority": priority})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		fmt.Sprintf("%s/items/%d", w.base, id), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}
	return nil
}

func cmdMove(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("move", flag.ExitOnError)
	addr := addrFlag(fs)
	category := fs.String("category", "", "reorder within this category view only")
	fs.Parse(args)

	if fs.NArg() != 2 {
		return fmt.Errorf("move needs a dragged id and a target id")
	}
	draggedID, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid dragged id: %q", fs.Arg(0))
	}
	targetID, err := strconv.ParseInt(fs.Arg(1), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid target id: %q", fs.Arg(1))
	}

	items, err := fetchItems(ctx, *addr, *category)
	if err != nil {
		return err
	}

	seq := make([]int64, len(items))
	for i, it := range items {
		seq[i] = it.ID
	}

	moved := reorder.Move(seq, draggedID, targetID)
	if err := reorder.Persist(ctx, httpWriter{base: *addr}, moved); err != nil {
		// Earlier writes are already in place; the server is left with a
		// partially applied order.
		return fmt.Errorf("reorder incomplete: %w", err)
	}

	fmt.Printf("moved item %d onto %d (%d items renumbered)\n", draggedID, targetID, len(moved))
	return nil
}

func cmdDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	addr := addrFlag(fs)
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("delete needs an item id")
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id: %q", fs.Arg(0))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		fmt.Sprintf("%s/items/%d", *addr, id), nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("deleting item: server returned %d", resp.StatusCode)
	}

	fmt.Printf("deleted item %d\n", id)
	return nil
}
