package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plaindb/plaindb"
	"github.com/plaindb/plaindb/config"
	"github.com/plaindb/plaindb/core"
	"github.com/plaindb/plaindb/store"
)

const (
	PromptColor  = "\033[36m" // Cyan
	ErrorColor   = "\033[31m" // Red
	SuccessColor = "\033[32m" // Green
	ResetColor   = "\033[0m"
	BoldColor    = "\033[1m"
)

// Version is set at build time via -ldflags
var Version = "dev"

var (
	configPath  string
	dataDir     string
	memory      bool
	scriptFile  string
	authorName  string
	authorEmail string
	noHistory   bool
)

var rootCmd = &cobra.Command{
	Use:   "plaindb",
	Short: "A file-backed database with a plain-words query language",
	Long: `PlainDB is a single-file database you talk to in plain words:
build tables, add in rows, change and kick out records, mix it up for joins.
The database persists as one compressed snapshot file; begin/commit/rollback
batch mutations into a single persisted unit.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	rootCmd.Flags().StringVarP(&dataDir, "data-dir", "d", "", "Data directory (default: ~/.plaindb)")
	rootCmd.Flags().BoolVarP(&memory, "memory", "m", false, "Keep everything in memory, nothing on disk")
	rootCmd.Flags().StringVarP(&scriptFile, "script", "s", "", "Command file to execute (non-interactive)")
	rootCmd.Flags().StringVar(&authorName, "name", "", "Author name recorded in the snapshot history")
	rootCmd.Flags().StringVar(&authorEmail, "email", "", "Author email recorded in the snapshot history")
	rootCmd.Flags().BoolVar(&noHistory, "no-history", false, "Disable the snapshot history")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if authorName != "" {
		cfg.Author.Name = authorName
	}
	if authorEmail != "" {
		cfg.Author.Email = authorEmail
	}
	if noHistory {
		cfg.History = false
	}

	options := store.Options{FileName: cfg.FileName, History: cfg.History}

	var st *store.Store
	if memory {
		st, err = store.NewMemoryStore(options)
	} else {
		st, err = store.NewFileStore(cfg.DataDir, options)
	}
	if err != nil {
		return err
	}

	engine, err := plaindb.Open(st).Engine(core.Identity{
		Name:  cfg.Author.Name,
		Email: cfg.Author.Email,
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	cli := &CLI{engine: engine}

	if scriptFile != "" {
		return cli.runScript(scriptFile)
	}

	printBanner()
	if memory {
		fmt.Printf("%sUsing in-memory store%s\n", SuccessColor, ResetColor)
	} else {
		fmt.Printf("%sUsing data directory: %s%s\n", SuccessColor, cfg.DataDir, ResetColor)
	}

	return cli.run()
}

func printBanner() {
	fmt.Println()
	fmt.Printf("%s%sPlainDB %s — say it, store it%s\n", BoldColor, PromptColor, Version, ResetColor)
	fmt.Println()
	fmt.Println("Type .help for commands, 'bye' or .quit to exit")
	fmt.Println()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%sError: %v%s\n", ErrorColor, err, ResetColor)
		os.Exit(1)
	}
}
