package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/spf13/cobra"

	"mini-admin/internal/config"
)

func newConfigCmd(sess *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage data server profiles",
		Long:  "Profiles live in " + ConfigPath() + " and name a data server and a default output format. The active profile applies when neither --host nor MINI_ADMIN_HOST is set.",
	}
	cmd.AddCommand(newConfigShowCmd(sess))
	cmd.AddCommand(newConfigSetProfileCmd(sess))
	cmd.AddCommand(newConfigUseProfileCmd())
	cmd.AddCommand(newConfigDeleteProfileCmd())
	return cmd
}

type effectiveConfig struct {
	Host       string `json:"host"`
	HostSource string `json:"host_source"`
	Output     string `json:"output"`
}

type configView struct {
	Path           string             `json:"path"`
	CurrentProfile string             `json:"current_profile,omitempty"`
	Profiles       map[string]Profile `json:"profiles"`
	Effective      effectiveConfig    `json:"effective"`
}

// loadUserConfigOrEmpty treats a missing config file as an empty one.
func loadUserConfigOrEmpty() (*UserConfig, error) {
	cfg, err := LoadUserConfig()
	if errors.Is(err, fs.ErrNotExist) {
		return &UserConfig{Profiles: map[string]Profile{}}, nil
	}
	return cfg, err
}

func newConfigShowCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show profiles and the data server this invocation would use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadUserConfigOrEmpty()
			if err != nil {
				return err
			}
			view := configView{
				Path:           ConfigPath(),
				CurrentProfile: cfg.CurrentProfile,
				Profiles:       cfg.Profiles,
				Effective:      effectiveConfig{Host: sess.host, HostSource: sess.hostSource, Output: sess.output},
			}
			out := cmd.OutOrStdout()
			if getOutputFormat(cmd) == "json" {
				return printJSON(out, view)
			}

			names := make([]string, 0, len(cfg.Profiles))
			for name := range cfg.Profiles {
				names = append(names, name)
			}
			sort.Strings(names)
			if len(names) > 0 {
				rows := make([][]string, 0, len(names))
				for _, name := range names {
					p := cfg.Profiles[name]
					active := ""
					if name == cfg.CurrentProfile {
						active = "*"
					}
					rows = append(rows, []string{name, active, p.Host, p.Output})
				}
				printTable(out, []string{"profile", "active", "host", "output"}, rows)
				_, _ = fmt.Fprintln(out)
			}
			printDetail(out, [][2]string{
				{"config_file", view.Path},
				{"data_server", fmt.Sprintf("%s (%s)", sess.host, sess.hostSource)},
				{"output", sess.output},
			})
			return nil
		},
	}
}

func newConfigSetProfileCmd(sess *session) *cobra.Command {
	var (
		host   string
		output string
		check  bool
	)
	cmd := &cobra.Command{
		Use:   "set-profile <name>",
		Short: "Create or update a profile",
		Example: `  mini-admin config set-profile local --host http://localhost:3001
  mini-admin config set-profile staging --host https://data.staging.example.com --default-output json --check`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			cfg, err := loadUserConfigOrEmpty()
			if err != nil {
				return err
			}

			p := cfg.Profiles[name]
			if cmd.Flags().Changed("host") {
				if p.Host, err = config.NormalizeDataServerURL(host); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("default-output") {
				if err := validateOutputFormat(output); err != nil {
					return err
				}
				p.Output = output
			}

			var trainings int
			if check {
				if p.Host == "" {
					return fmt.Errorf("profile %q has no host to check", name)
				}
				target := &session{host: p.Host, timeout: sess.timeout}
				all, err := target.services().trainings.All(cmd.Context())
				if err != nil {
					return fmt.Errorf("data server %s did not answer: %w", p.Host, err)
				}
				trainings = len(all)
			}

			cfg.Profiles[name] = p
			if cfg.CurrentProfile == "" {
				cfg.CurrentProfile = name
			}
			if err := SaveUserConfig(cfg); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if getOutputFormat(cmd) == "json" {
				res := map[string]any{"profile": name, "host": p.Host, "active": cfg.CurrentProfile == name}
				if check {
					res["trainings"] = trainings
				}
				return printJSON(out, res)
			}
			_, _ = fmt.Fprintf(out, "Profile %q saved\n", name)
			if check {
				_, _ = fmt.Fprintf(out, "Data server %s answered with %d trainings\n", p.Host, trainings)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "Data server base URL")
	cmd.Flags().StringVar(&output, "default-output", "", "Output format stored in the profile (table, json)")
	cmd.Flags().BoolVar(&check, "check", false, "Verify the data server answers before saving")
	return cmd
}

func newConfigUseProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use-profile <name>",
		Short: "Make a profile the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadUserConfigOrEmpty()
			if err != nil {
				return err
			}
			name := args[0]
			if _, ok := cfg.Profiles[name]; !ok {
				return fmt.Errorf("profile %q not found", name)
			}
			cfg.CurrentProfile = name
			if err := SaveUserConfig(cfg); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Active profile: %s\n", name)
			return nil
		},
	}
}

func newConfigDeleteProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-profile <name>",
		Short: "Remove a profile other than the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadUserConfigOrEmpty()
			if err != nil {
				return err
			}
			name := args[0]
			if _, ok := cfg.Profiles[name]; !ok {
				return fmt.Errorf("profile %q not found", name)
			}
			if name == cfg.CurrentProfile {
				return fmt.Errorf("profile %q is active: switch with use-profile first", name)
			}
			delete(cfg.Profiles, name)
			if err := SaveUserConfig(cfg); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Profile %q deleted\n", name)
			return nil
		},
	}
}
