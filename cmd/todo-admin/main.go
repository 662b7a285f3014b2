package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/dimitrije/todo-api/internal/config"
	"github.com/dimitrije/todo-api/internal/database"
	"github.com/dimitrije/todo-api/internal/services"
)

const usage = `Usage:
  todo-admin migrate            create missing tables and indexes
  todo-admin users              list all users
  todo-admin purge-list <id>    delete a list with its tasks and memberships`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL, 2)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := dispatch(ctx, db, os.Args[1:]); err != nil {
		db.Close()
		log.Fatal(err)
	}
}

func dispatch(ctx context.Context, db *database.DB, args []string) error {
	switch args[0] {
	case "migrate":
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		fmt.Println("Schema is up to date")

	case "users":
		users, err := services.NewUserService(db).List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME")
		for _, u := range users {
			fmt.Fprintf(w, "%d\t%s\n", u.ID, u.Username)
		}
		return w.Flush()

	case "purge-list":
		if len(args) != 2 {
			return fmt.Errorf("usage: todo-admin purge-list <id>")
		}
		listID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid list id %q", args[1])
		}
		if err := services.NewTodoListService(db).Delete(ctx, listID); err != nil {
			return fmt.Errorf("failed to purge list %d: %w", listID, err)
		}
		fmt.Printf("Successfully purged list %d\n", listID)

	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
	return nil
}
