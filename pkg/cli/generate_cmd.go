package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"mini-admin/internal/fixture"
)

func newGenerateCmd() *cobra.Command {
	var (
		out       string
		seed      uint64
		employees int
		force     bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a fixture data file for the mock server",
		Long:  "Generate employees, the fixed training catalog and random assignments as a JSON document. The same seed always produces the same document.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("seed") {
				seed = uint64(time.Now().UnixNano())
			}
			doc := fixture.Generate(seed, fixture.Options{Employees: employees})

			if out == "-" {
				return fixture.Write(cmd.OutOrStdout(), doc)
			}
			if !force {
				if _, err := os.Stat(out); err == nil {
					return fmt.Errorf("%s already exists: pass --force to overwrite", out)
				}
			}
			if err := writeFileAtomic(out, func(w io.Writer) error { return fixture.Write(w, doc) }); err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"path":        out,
					"seed":        seed,
					"employees":   len(doc.Employees),
					"trainings":   len(doc.Trainings),
					"assignments": len(doc.Assignments),
				})
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d employees, %d trainings, %d assignments (seed %d)\n",
				out, len(doc.Employees), len(doc.Trainings), len(doc.Assignments), seed)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "db.json", `Output file, or "-" for stdout`)
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed (default: current time)")
	cmd.Flags().IntVar(&employees, "employees", fixture.DefaultEmployees, "Number of employees")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}

func writeFileAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".generate-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}
