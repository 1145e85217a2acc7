package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mini-admin/internal/domain"
)

var employeeTableColumns = []string{"id", "name", "email", "role", "status", "created_at"}

func employeeRow(e domain.Employee) []string {
	return []string{domain.FormatID(e.ID), e.Name, e.Email, string(e.Role), string(e.Status), e.CreatedAt}
}

func parseIDArg(arg string) (int64, error) {
	return domain.ParseID(arg)
}

// parseRoleFlag accepts "" or "all" for no filter.
func parseRoleFlag(raw string) (domain.Role, error) {
	if raw == "" || strings.EqualFold(raw, "all") {
		return "", nil
	}
	r, ok := domain.ParseRole(raw)
	if !ok {
		return "", domain.ErrValidation("unknown role %q", raw)
	}
	return r, nil
}

func parseStatusFlag(raw string) (domain.EmployeeStatus, error) {
	s := domain.EmployeeStatus(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range domain.EmployeeStatuses {
		if s == known {
			return s, nil
		}
	}
	return "", domain.ErrValidation("unknown status %q", raw)
}

func newEmployeesCmd(sess *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employees",
		Aliases: []string{"employee", "emp"},
		Short:   "Manage employees",
	}
	cmd.AddCommand(newEmployeesListCmd(sess))
	cmd.AddCommand(newEmployeesGetCmd(sess))
	cmd.AddCommand(newEmployeesCreateCmd(sess))
	cmd.AddCommand(newEmployeesUpdateCmd(sess))
	cmd.AddCommand(newEmployeesDeleteCmd(sess))
	return cmd
}

func newEmployeesListCmd(sess *session) *cobra.Command {
	var (
		page  int
		limit int
		sort  string
		order string
		name  string
		role  string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees one page at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := parseRoleFlag(role)
			if err != nil {
				return err
			}
			q := domain.EmployeeQuery{
				Page:  page,
				Limit: limit,
				Sort:  sort,
				Order: domain.SortOrder(strings.ToLower(order)),
				Name:  name,
				Role:  r,
			}.Normalized()

			result, err := sess.services().employees.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			pages := q.TotalPages(result.Total)

			if getOutputFormat(cmd) == "json" {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"items": result.Employees,
					"total": result.Total,
					"page":  q.Page,
					"limit": q.Limit,
					"pages": pages,
				})
			}
			if isQuiet(cmd) {
				for _, e := range result.Employees {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), e.ID)
				}
				return nil
			}
			rows := make([][]string, 0, len(result.Employees))
			for _, e := range result.Employees {
				rows = append(rows, employeeRow(e))
			}
			printTable(cmd.OutOrStdout(), employeeTableColumns, rows)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nPage %d of %d (%d total)\n", q.Page, pages, result.Total)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultPageSize, "Rows per page")
	cmd.Flags().StringVar(&sort, "sort", "", "Sort field ("+strings.Join(domain.EmployeeSortFields, ", ")+")")
	cmd.Flags().StringVar(&order, "order", "asc", "Sort order (asc, desc)")
	cmd.Flags().StringVar(&name, "name", "", "Case-insensitive name filter")
	cmd.Flags().StringVar(&role, "role", "", "Role filter (admin, engineer, manager, all)")
	return cmd
}

func newEmployeesGetCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			e, err := sess.services().employees.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printEmployee(cmd, e)
		},
	}
}

func printEmployee(cmd *cobra.Command, e *domain.Employee) error {
	if getOutputFormat(cmd) == "json" {
		return printJSON(cmd.OutOrStdout(), e)
	}
	if isQuiet(cmd) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), e.ID)
		return nil
	}
	printDetail(cmd.OutOrStdout(), [][2]string{
		{"id", domain.FormatID(e.ID)},
		{"name", e.Name},
		{"email", e.Email},
		{"role", string(e.Role)},
		{"status", string(e.Status)},
		{"created_at", e.CreatedAt},
	})
	return nil
}

func newEmployeesCreateCmd(sess *session) *cobra.Command {
	var name, email, role, status string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, ok := domain.ParseRole(role)
			if !ok {
				return domain.ErrValidation("unknown role %q", role)
			}
			s, err := parseStatusFlag(status)
			if err != nil {
				return err
			}
			e, err := sess.services().employees.Create(cmd.Context(), domain.EmployeeInput{
				Name: name, Email: email, Role: r, Status: s,
			})
			if err != nil {
				return err
			}
			return printEmployee(cmd, e)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Full name (required)")
	cmd.Flags().StringVar(&email, "email", "", "E-mail address")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleEngineer), "Role (admin, engineer, manager)")
	cmd.Flags().StringVar(&status, "status", string(domain.StatusActive), "Status (active, inactive)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newEmployeesUpdateCmd(sess *session) *cobra.Command {
	var name, email, role, status string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an employee; fields without a flag keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			svc := sess.services().employees
			current, err := svc.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			in := domain.EmployeeInput{Name: current.Name, Email: current.Email, Role: current.Role, Status: current.Status}
			if cmd.Flags().Changed("name") {
				in.Name = name
			}
			if cmd.Flags().Changed("email") {
				in.Email = email
			}
			if cmd.Flags().Changed("role") {
				r, ok := domain.ParseRole(role)
				if !ok {
					return domain.ErrValidation("unknown role %q", role)
				}
				in.Role = r
			}
			if cmd.Flags().Changed("status") {
				if in.Status, err = parseStatusFlag(status); err != nil {
					return err
				}
			}
			e, err := svc.Update(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			return printEmployee(cmd, e)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "E-mail address")
	cmd.Flags().StringVar(&role, "role", "", "Role (admin, engineer, manager)")
	cmd.Flags().StringVar(&status, "status", "", "Status (active, inactive)")
	return cmd
}

func newEmployeesDeleteCmd(sess *session) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an employee; their assignments are kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			if err := confirmDestructive(yes, cmd.InOrStdin(), cmd.ErrOrStderr(), "delete employee "+args[0]); err != nil {
				return err
			}
			if err := sess.services().employees.Delete(cmd.Context(), id); err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(cmd.OutOrStdout(), map[string]string{"status": "deleted", "id": strconv.FormatInt(id, 10)})
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Employee %d deleted\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
