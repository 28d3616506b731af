package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/plaindb/plaindb/db"
	"github.com/plaindb/plaindb/print"
)

// CLI drives the interactive prompt and the script mode around one engine.
type CLI struct {
	engine *db.Engine
}

func (cli *CLI) run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cli.prompt(),
		HistoryFile:     historyPath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "bye",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		rl.SetPrompt(cli.prompt())

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			fmt.Printf("%sGoodbye!%s\n", SuccessColor, ResetColor)
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "bye" {
			fmt.Printf("%sGoodbye!%s\n", SuccessColor, ResetColor)
			return nil
		}
		if strings.HasPrefix(line, ".") {
			if cli.handleCommand(line) {
				continue
			}
			return nil
		}

		cli.executeLine(line)
	}
}

func (cli *CLI) prompt() string {
	if cli.engine.InTransaction() {
		return PromptColor + "plaindb*> " + ResetColor
	}
	return PromptColor + "plaindb> " + ResetColor
}

// handleCommand runs a dot-command; returning false exits the REPL.
func (cli *CLI) handleCommand(line string) bool {
	fields := strings.Fields(line)

	switch fields[0] {
	case ".quit", ".exit":
		fmt.Printf("%sGoodbye!%s\n", SuccessColor, ResetColor)
		return false

	case ".help":
		printHelp()

	case ".tables":
		names := cli.engine.Database().TableNames()
		if len(names) == 0 {
			fmt.Println("(no tables)")
			break
		}
		rows := make([][]string, len(names))
		for i, name := range names {
			table, _ := cli.engine.Database().Table(name)
			rows[i] = []string{name, fmt.Sprintf("%d", len(table.Rows))}
		}
		print.RenderTable(os.Stdout, []string{"table", "rows"}, rows, print.Options{})

	case ".history":
		snapshots, err := cli.engine.History(20)
		if err != nil {
			fmt.Printf("%sError: %v%s\n", ErrorColor, err, ResetColor)
			break
		}
		if len(snapshots) == 0 {
			fmt.Println("(no snapshots)")
			break
		}
		rows := make([][]string, len(snapshots))
		for i, snapshot := range snapshots {
			rows[i] = []string{
				snapshot.Id,
				snapshot.When.Format("2006-01-02 15:04:05"),
				snapshot.Author,
				snapshot.Message,
			}
		}
		print.RenderTable(os.Stdout, []string{"id", "when", "author", "message"}, rows, print.Options{MaxWidth: 64})

	case ".restore":
		if len(fields) != 2 {
			fmt.Printf("%sUsage: .restore <snapshot id>%s\n", ErrorColor, ResetColor)
			break
		}
		if err := cli.engine.RestoreSnapshot(fields[1]); err != nil {
			fmt.Printf("%sError: %v%s\n", ErrorColor, err, ResetColor)
			break
		}
		fmt.Printf("%sRestored to %s%s\n", SuccessColor, fields[1], ResetColor)

	default:
		fmt.Printf("%sUnknown command %s, try .help%s\n", ErrorColor, fields[0], ResetColor)
	}

	return true
}

func (cli *CLI) executeLine(line string) {
	result, err := cli.engine.Execute(line)
	if err != nil {
		fmt.Printf("%sError: %v%s\n", ErrorColor, err, ResetColor)
		return
	}
	result.Display()
}

// runScript executes a file of commands, one per line. Blank lines and
// lines starting with # are skipped; the first failing command aborts.
func (cli *CLI) runScript(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	lineNo := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		result, err := cli.engine.Execute(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		result.Display()
	}
	return scanner.Err()
}

func printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  build <table> <column> <type> ... [primarykey <column>]")
	fmt.Println("  add in <table> <column> <value> ...")
	fmt.Println("  change <table> <key> <column> <value> ...")
	fmt.Println("  kick out <table> <key>")
	fmt.Println("  show <table>")
	fmt.Println("  mix it up <table1> <table2> <column>")
	fmt.Println("  begin / commit / rollback")
	fmt.Println()
	fmt.Println("Types: int, float, boolean, date, char, text, string")
	fmt.Println("Quote values with spaces: add in users name \"John Doe\"")
	fmt.Println()
	fmt.Println("Dot commands:")
	fmt.Println("  .tables            list tables and row counts")
	fmt.Println("  .history           list persisted snapshots")
	fmt.Println("  .restore <id>      restore the database to a snapshot")
	fmt.Println("  .help              this help")
	fmt.Println("  .quit              exit (or type 'bye')")
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".plaindb_repl_history")
}
