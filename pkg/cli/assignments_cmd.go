package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mini-admin/internal/domain"
)

const missingRef = "-"

func newAssignmentsCmd(sess *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assignments",
		Aliases: []string{"assignment"},
		Short:   "Manage training assignments",
	}
	cmd.AddCommand(newAssignmentsListCmd(sess))
	cmd.AddCommand(newAssignmentsAssignCmd(sess))
	cmd.AddCommand(newAssignmentsUpdateCmd(sess))
	cmd.AddCommand(newAssignmentsDeleteCmd(sess))
	return cmd
}

type assignmentJSON struct {
	ID            int64  `json:"id"`
	EmployeeID    int64  `json:"employeeId"`
	EmployeeName  string `json:"employeeName,omitempty"`
	TrainingID    int64  `json:"trainingId"`
	TrainingTitle string `json:"trainingTitle,omitempty"`
	AssignedAt    string `json:"assignedAt"`
}

func orMissing(s string) string {
	if s == "" {
		return missingRef
	}
	return s
}

func newAssignmentsListCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List assignments with employee and training names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			views, err := sess.services().assignments.List(cmd.Context())
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				out := make([]assignmentJSON, 0, len(views))
				for _, v := range views {
					out = append(out, assignmentJSON{
						ID:            v.ID,
						EmployeeID:    v.EmployeeID,
						EmployeeName:  v.EmployeeName(),
						TrainingID:    v.TrainingID,
						TrainingTitle: v.TrainingTitle(),
						AssignedAt:    v.AssignedAt,
					})
				}
				return printJSON(cmd.OutOrStdout(), out)
			}
			if isQuiet(cmd) {
				for _, v := range views {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), v.ID)
				}
				return nil
			}
			rows := make([][]string, 0, len(views))
			for _, v := range views {
				rows = append(rows, []string{
					strconv.FormatInt(v.ID, 10),
					orMissing(v.EmployeeName()),
					orMissing(v.TrainingTitle()),
					v.AssignedAt,
				})
			}
			printTable(cmd.OutOrStdout(), []string{"id", "employee", "training", "assigned_at"}, rows)
			return nil
		},
	}
}

func newAssignmentsAssignCmd(sess *session) *cobra.Command {
	var (
		employeeID  int64
		trainingIDs []int64
	)
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assign one employee to one or more trainings",
		Example: `  mini-admin assignments assign --employee 3 --training 101 --training 102
  mini-admin assignments assign --employee 3 --training 101,103`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			created, err := sess.services().assignments.Assign(cmd.Context(), employeeID, trainingIDs)
			var partial *domain.PartialFailureError
			if err != nil && !errors.As(err, &partial) {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				if perr := printJSON(cmd.OutOrStdout(), created); perr != nil {
					return perr
				}
				return err
			}
			for _, a := range created {
				if isQuiet(cmd) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), a.ID)
					continue
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Assignment %d created (training %d)\n", a.ID, a.TrainingID)
			}
			return err
		},
	}
	cmd.Flags().Int64Var(&employeeID, "employee", 0, "Employee ID (required)")
	cmd.Flags().Int64SliceVar(&trainingIDs, "training", nil, "Training ID, repeatable (required)")
	_ = cmd.MarkFlagRequired("employee")
	_ = cmd.MarkFlagRequired("training")
	return cmd
}

func newAssignmentsUpdateCmd(sess *session) *cobra.Command {
	var (
		employeeID int64
		trainingID int64
		assignedAt string
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change an assignment's employee, training or date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			svc := sess.services().assignments
			current, err := svc.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			in := domain.AssignmentInput{
				EmployeeID: current.EmployeeID,
				TrainingID: current.TrainingID,
				AssignedAt: current.AssignedAt,
			}
			if cmd.Flags().Changed("employee") {
				in.EmployeeID = employeeID
			}
			if cmd.Flags().Changed("training") {
				in.TrainingID = trainingID
			}
			if cmd.Flags().Changed("assigned-at") {
				in.AssignedAt = assignedAt
			}
			updated, err := svc.Update(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(cmd.OutOrStdout(), updated)
			}
			printDetail(cmd.OutOrStdout(), [][2]string{
				{"id", strconv.FormatInt(updated.ID, 10)},
				{"employee_id", strconv.FormatInt(updated.EmployeeID, 10)},
				{"training_id", strconv.FormatInt(updated.TrainingID, 10)},
				{"assigned_at", updated.AssignedAt},
			})
			return nil
		},
	}
	cmd.Flags().Int64Var(&employeeID, "employee", 0, "Employee ID")
	cmd.Flags().Int64Var(&trainingID, "training", 0, "Training ID")
	cmd.Flags().StringVar(&assignedAt, "assigned-at", "", "Assignment date (YYYY-MM-DD); empty means today")
	return cmd
}

func newAssignmentsDeleteCmd(sess *session) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			if err := confirmDestructive(yes, cmd.InOrStdin(), cmd.ErrOrStderr(), "delete assignment "+args[0]); err != nil {
				return err
			}
			if err := sess.services().assignments.Delete(cmd.Context(), id); err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(cmd.OutOrStdout(), map[string]string{"status": "deleted", "id": strconv.FormatInt(id, 10)})
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Assignment %d deleted\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
