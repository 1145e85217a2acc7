package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mini-admin/internal/domain"
)

func newTrainingsCmd(sess *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "trainings",
		Aliases: []string{"training"},
		Short:   "Browse trainings",
	}
	cmd.AddCommand(newTrainingsListCmd(sess))
	return cmd
}

func newTrainingsListCmd(sess *session) *cobra.Command {
	var title, status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trainings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			trainings, err := sess.services().trainings.List(cmd.Context(), domain.TrainingFilter{
				Title:  title,
				Status: domain.ParseTrainingStatusFilter(status),
			})
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(cmd.OutOrStdout(), trainings)
			}
			if isQuiet(cmd) {
				for _, t := range trainings {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), t.ID)
				}
				return nil
			}
			rows := make([][]string, 0, len(trainings))
			for _, t := range trainings {
				state := "passive"
				if t.Active {
					state = "active"
				}
				rows = append(rows, []string{strconv.FormatInt(t.ID, 10), t.Title, t.StartDate, t.EndDate, state})
			}
			printTable(cmd.OutOrStdout(), []string{"id", "title", "start", "end", "status"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Case-insensitive title filter")
	cmd.Flags().StringVar(&status, "status", "", "Status filter (active, passive)")
	return cmd
}
