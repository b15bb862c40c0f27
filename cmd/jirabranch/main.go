// jirabranch resolves the current git branch to a Jira issue and prints its
// summary, caching results so repeated shell-prompt renders stay fast.
//
// Flag surface (kept stable for shell integrations):
//
//	jirabranch --register-secrets <domain> <email> <api_key>
//	jirabranch --register-project <domain>
//	jirabranch --view-git-issue
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for static builds

	gitadapter "github.com/promptutils/jirabranch/internal/adapter/driven/git"
	jiraadapter "github.com/promptutils/jirabranch/internal/adapter/driven/jira"
	sqliteadapter "github.com/promptutils/jirabranch/internal/adapter/driven/sqlite"
	"github.com/promptutils/jirabranch/internal/application"
	"github.com/promptutils/jirabranch/internal/config"
)

var (
	registerSecretsFlag bool
	registerProjectFlag string
	viewGitIssueFlag    bool

	rootCmd = &cobra.Command{
		Use:   "jirabranch",
		Short: "Show the Jira issue behind the current git branch",
		Long: "jirabranch maps issue/jira/<KEY> branches to Jira issue summaries for shell prompts.\n" +
			"Register credentials once per Jira domain, bind each repository to a domain, and\n" +
			"--view-git-issue prints the cached (or freshly fetched) summary of the current issue.",
		Args:          cobra.MaximumNArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
)

func init() {
	rootCmd.Flags().BoolVar(&registerSecretsFlag, "register-secrets", false,
		"Register a Jira domain, email, and API key (three positional arguments)")
	rootCmd.Flags().StringVar(&registerProjectFlag, "register-project", "",
		"Bind the current git project to the given Jira domain")
	rootCmd.Flags().BoolVar(&viewGitIssueFlag, "view-git-issue", false,
		"Print the summary of the Jira issue named by the current branch")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// One short line on stderr; stdout stays clean for the prompt.
		fmt.Fprintf(os.Stderr, "jirabranch: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	setupLogging(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}

	credentialStore := sqliteadapter.NewCredentialRepo(db, cfg.SecretKey)
	projectStore := sqliteadapter.NewProjectRepo(db)
	issueCache := sqliteadapter.NewIssueCacheRepo(db, cfg.CacheTTL)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	gitInfo := gitadapter.NewRepo(cwd)
	jiraClient := jiraadapter.NewClient(cfg.HTTPCache, cfg.HTTPTimeout)

	switch {
	case registerSecretsFlag:
		if len(args) != 3 {
			return errors.New("--register-secrets requires exactly three arguments: <domain> <email> <api_key>")
		}
		registerSvc := application.NewRegisterService(credentialStore, projectStore, gitInfo, jiraClient)
		if err := registerSvc.RegisterSecrets(ctx, args[0], args[1], args[2]); err != nil {
			return err
		}
		fmt.Printf("Registered %s with provided email and API key.\n", args[0])
		return nil

	case registerProjectFlag != "":
		registerSvc := application.NewRegisterService(credentialStore, projectStore, gitInfo, jiraClient)
		if err := registerSvc.RegisterProject(ctx, registerProjectFlag); err != nil {
			return err
		}
		fmt.Printf("Registered %s for this project.\n", registerProjectFlag)
		return nil

	case viewGitIssueFlag:
		issueSvc := application.NewIssueService(gitInfo, issueCache, projectStore, credentialStore, jiraClient, slog.Default())
		summary, err := issueSvc.Summary(ctx)
		if errors.Is(err, application.ErrNoIssue) {
			// Unrecognized branch or no repo: stay silent so the prompt
			// renders cleanly, and exit zero.
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Println(summary)
		return nil

	default:
		_ = cmd.Help()
		return errors.New("specify one of --register-secrets, --register-project, --view-git-issue")
	}
}

// setupLogging routes slog to stderr at the configured level. The default is
// warn: a shell prompt helper should say nothing unless something is wrong.
func setupLogging(level string) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "info":
		l = slog.LevelInfo
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}
