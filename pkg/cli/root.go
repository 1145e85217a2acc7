package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"mini-admin/internal/config"
	"mini-admin/internal/domain"
	"mini-admin/internal/logging"
	"mini-admin/internal/querycache"
	"mini-admin/internal/restclient"
	"mini-admin/internal/service/assignment"
	"mini-admin/internal/service/employee"
	"mini-admin/internal/service/training"
)

var (
	version = "dev"
	commit  = "none"
)

const defaultHost = "http://localhost:3001"

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output, _ := rootCmd.PersistentFlags().GetString("output")
		if output == "json" {
			errObj := map[string]interface{}{
				"error": err.Error(),
			}
			if code := errorCode(err); code != "" {
				errObj["code"] = code
			}
			var upstream *domain.UpstreamError
			if errors.As(err, &upstream) {
				errObj["http_status"] = upstream.StatusCode
			}
			_ = printJSON(rootCmd.OutOrStdout(), errObj)
		} else {
			_, _ = fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func errorCode(err error) string {
	var (
		notFound   *domain.NotFoundError
		validation *domain.ValidationError
		conflict   *domain.ConflictError
		partial    *domain.PartialFailureError
		upstream   *domain.UpstreamError
	)
	switch {
	case errors.As(err, &partial):
		return "PARTIAL_FAILURE"
	case errors.As(err, &notFound):
		return "NOT_FOUND"
	case errors.As(err, &validation):
		return "VALIDATION_ERROR"
	case errors.As(err, &conflict):
		return "CONFLICT"
	case errors.As(err, &upstream):
		return "UPSTREAM_ERROR"
	}
	return ""
}

// session carries the resolved connection settings to the data commands.
type session struct {
	host    string
	timeout time.Duration
	output  string
	// hostSource records where host came from: flag, env, profile or default.
	hostSource string
	profile    string
}

type serviceSet struct {
	employees   *employee.Service
	trainings   *training.Service
	assignments *assignment.Service
}

// services builds uncached services against the data server. The CLI is
// one-shot, so nothing is kept between calls.
func (s *session) services() serviceSet {
	logger := logging.New(os.Stderr, slog.LevelWarn, "text")
	client := restclient.New(restclient.Options{BaseURL: s.host, Timeout: s.timeout, Logger: logger})
	cache := querycache.New(0)
	emp := employee.NewService(client.Employees(), cache, logger)
	tr := training.NewService(client.Trainings(), cache)
	return serviceSet{
		employees:   emp,
		trainings:   tr,
		assignments: assignment.NewService(client.Assignments(), emp, tr, cache, logger),
	}
}

func newRootCmd() *cobra.Command {
	var (
		profile string
		quiet   bool
	)
	sess := &session{host: defaultHost, timeout: 10 * time.Second, hostSource: "default"}

	rootCmd := &cobra.Command{
		Use:           "mini-admin",
		Short:         "Employee training admin console",
		Long:          "Run the admin console and its mock data server, generate fixture data, and manage employees, trainings and assignments from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadUserConfig()
			if err != nil {
				cfg = &UserConfig{Profiles: map[string]Profile{}}
			}
			p, err := cfg.ActiveProfile(profile)
			if err != nil {
				return err
			}
			sess.profile = profile
			if sess.profile == "" {
				sess.profile = cfg.CurrentProfile
			}

			// flag > env > profile > default
			switch {
			case cmd.Flags().Changed("host"):
				sess.hostSource = "flag"
			case os.Getenv("MINI_ADMIN_HOST") != "":
				sess.host, sess.hostSource = os.Getenv("MINI_ADMIN_HOST"), "env"
			case p.Host != "":
				sess.host, sess.hostSource = p.Host, "profile "+sess.profile
			}
			if !cmd.Flags().Changed("output") {
				if v := os.Getenv("MINI_ADMIN_OUTPUT"); v != "" {
					sess.output = v
				} else if p.Output != "" {
					sess.output = p.Output
				}
			}

			if err := validateOutputFormat(sess.output); err != nil {
				return err
			}
			host, err := config.NormalizeDataServerURL(sess.host)
			if err != nil {
				return fmt.Errorf("%s (from %s)", err, sess.hostSource)
			}
			sess.host = host
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&sess.host, "host", defaultHost, "Data server base URL")
	rootCmd.PersistentFlags().DurationVar(&sess.timeout, "timeout", 10*time.Second, "Data server request timeout")
	rootCmd.PersistentFlags().StringVarP(&sess.output, "output", "o", "table", "Output format (table, json)")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "Config profile to use")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only output resource identifiers")

	// Servers and data
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMockServerCmd())
	rootCmd.AddCommand(newGenerateCmd())

	// Resource commands
	rootCmd.AddCommand(newEmployeesCmd(sess))
	rootCmd.AddCommand(newTrainingsCmd(sess))
	rootCmd.AddCommand(newAssignmentsCmd(sess))

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(sess))
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
	return cmd
}
