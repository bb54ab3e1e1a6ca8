package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	adminpkg "github.com/mikios34/choonpaan/admin"
	driverpkg "github.com/mikios34/choonpaan/driver"
	"github.com/mikios34/choonpaan/entity"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts (admin)",
	PersistentPreRunE: adminOnly,
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users, optionally filtered by name or email",
	Args:  cobra.NoArgs,
	RunE:  runUsersList,
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user's profile record",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersDelete,
}

var usersReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the user roster as a PDF",
	Args:  cobra.NoArgs,
	RunE:  runUsersReport,
}

var driversCmd = &cobra.Command{
	Use:   "drivers",
	Short: "Manage drivers (admin)",
	PersistentPreRunE: adminOnly,
}

var driversListCmd = &cobra.Command{
	Use:   "list",
	Short: "List drivers, optionally filtered by name or email",
	Args:  cobra.NoArgs,
	RunE:  runDriversList,
}

var driversAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a pending driver record",
	Args:  cobra.NoArgs,
	RunE:  runDriversAdd,
}

var driversUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a driver's name and email",
	Args:  cobra.ExactArgs(1),
	RunE:  runDriversUpdate,
}

var driversDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a driver record",
	Args:  cobra.ExactArgs(1),
	RunE:  runDriversDelete,
}

var driversReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the driver roster as a PDF",
	Args:  cobra.NoArgs,
	RunE:  runDriversReport,
}

var adminsCmd = &cobra.Command{
	Use:   "admins",
	Short: "Manage admins (admin)",
	PersistentPreRunE: adminOnly,
}

var adminsAddCmd = &cobra.Command{
	Use:   "add <principal-id>",
	Short: "Grant admin to an existing account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminsAdd,
}

var (
	searchQuery      string
	usersReportOut   string
	driversReportOut string

	driverName  string
	driverEmail string

	adminName  string
	adminEmail string
)

func init() {
	rootCmd.AddCommand(usersCmd, driversCmd, adminsCmd)
	usersCmd.AddCommand(usersListCmd, usersDeleteCmd, usersReportCmd)
	driversCmd.AddCommand(driversListCmd, driversAddCmd, driversUpdateCmd, driversDeleteCmd, driversReportCmd)
	adminsCmd.AddCommand(adminsAddCmd)

	for _, c := range []*cobra.Command{usersListCmd, usersReportCmd, driversListCmd, driversReportCmd} {
		c.Flags().StringVarP(&searchQuery, "query", "q", "", "Match name or email (case-insensitive)")
	}
	usersReportCmd.Flags().StringVarP(&usersReportOut, "out", "o", "UserReport.pdf", "Output file, - for stdout")
	driversReportCmd.Flags().StringVarP(&driversReportOut, "out", "o", "DriverReport.pdf", "Output file, - for stdout")

	for _, c := range []*cobra.Command{driversAddCmd, driversUpdateCmd} {
		c.Flags().StringVar(&driverName, "name", "", "Driver name")
		c.Flags().StringVar(&driverEmail, "email", "", "Driver email")
	}

	adminsAddCmd.Flags().StringVar(&adminName, "name", "", "Admin display name")
	adminsAddCmd.Flags().StringVar(&adminEmail, "email", "", "Admin email")
}

// adminOnly runs the root setup, which a subcommand PersistentPreRunE
// replaces, then checks the device session.
func adminOnly(cmd *cobra.Command, args []string) error {
	if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
		return err
	}
	_, err := requireRole(cmd, entity.RoleAdmin)
	return err
}

func writeReport(cmd *cobra.Command, out string, render func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	if out == "-" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", out)
	return nil
}

func runUsersList(cmd *cobra.Command, args []string) error {
	users, err := current.Customers.ListCustomers(cmd.Context(), searchQuery)
	if err != nil {
		return err
	}
	printRecords(cmd, users, "No users found.")
	return nil
}

func runUsersDelete(cmd *cobra.Command, args []string) error {
	if err := current.Customers.DeleteCustomer(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %s\n", args[0])
	return nil
}

func runUsersReport(cmd *cobra.Command, args []string) error {
	return writeReport(cmd, usersReportOut, func(w io.Writer) error {
		return current.Customers.Report(cmd.Context(), searchQuery, w)
	})
}

func runDriversList(cmd *cobra.Command, args []string) error {
	drivers, err := current.Drivers.ListDrivers(cmd.Context(), searchQuery)
	if err != nil {
		return err
	}
	printRecords(cmd, drivers, "No drivers found.")
	return nil
}

func runDriversAdd(cmd *cobra.Command, args []string) error {
	d, err := current.Drivers.CreateDriver(cmd.Context(), driverpkg.DriverRequest{Name: driverName, Email: driverEmail})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added driver %s (id %s)\n", d.Name, d.ID)
	return nil
}

func runDriversUpdate(cmd *cobra.Command, args []string) error {
	d, err := current.Drivers.UpdateDriver(cmd.Context(), args[0], driverpkg.DriverRequest{Name: driverName, Email: driverEmail})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated driver %s\n", d.ID)
	return nil
}

func runDriversDelete(cmd *cobra.Command, args []string) error {
	if err := current.Drivers.DeleteDriver(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted driver %s\n", args[0])
	return nil
}

func runDriversReport(cmd *cobra.Command, args []string) error {
	return writeReport(cmd, driversReportOut, func(w io.Writer) error {
		return current.Drivers.Report(cmd.Context(), searchQuery, w)
	})
}

func runAdminsAdd(cmd *cobra.Command, args []string) error {
	rec, err := current.Admins.RegisterAdmin(cmd.Context(), adminpkg.RegisterAdminRequest{
		PrincipalID: args[0],
		Name:        adminName,
		Email:       adminEmail,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Granted admin to %s <%s>\n", rec.Name, rec.Email)
	return nil
}
