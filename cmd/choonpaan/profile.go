package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mikios34/choonpaan/entity"
	"github.com/mikios34/choonpaan/media"
	profilepkg "github.com/mikios34/choonpaan/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit your own profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change your name or email",
	Long: `Change the name or email on your profile. Fields you do not pass keep
their stored value.

Examples:
  choonpaan profile set --name "Hana Tesfaye"
  choonpaan profile set --email hana@example.com`,
	Args: cobra.NoArgs,
	RunE: runProfileSet,
}

var profileImageCmd = &cobra.Command{
	Use:   "image <file>",
	Short: "Upload a profile image",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileImage,
}

var (
	profileName  string
	profileEmail string
)

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileSetCmd, profileImageCmd)

	profileSetCmd.Flags().StringVar(&profileName, "name", "", "New display name")
	profileSetCmd.Flags().StringVar(&profileEmail, "email", "", "New email address")
}

func sessionOwner(cmd *cobra.Command) (profilepkg.Owner, error) {
	st, err := requireRole(cmd)
	if err != nil {
		return profilepkg.Owner{}, err
	}
	return profilepkg.Owner{ID: st.UserID, Role: st.Role, Email: st.UserEmail}, nil
}

func printProfile(cmd *cobra.Command, rec *entity.ProfileRecord) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name:  %s\n", rec.Name)
	fmt.Fprintf(out, "Email: %s\n", rec.Email)
	fmt.Fprintf(out, "Type:  %s\n", rec.UserType)
	if rec.Status != "" {
		fmt.Fprintf(out, "Status: %s\n", rec.Status)
	}
	if rec.ProfileImage != "" {
		fmt.Fprintf(out, "Image: %s\n", rec.ProfileImage)
	}
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	o, err := sessionOwner(cmd)
	if err != nil {
		return err
	}
	rec, err := current.Profiles.Load(cmd.Context(), o)
	if err != nil {
		return err
	}
	printProfile(cmd, rec)
	return nil
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	o, err := sessionOwner(cmd)
	if err != nil {
		return err
	}
	var changes profilepkg.Changes
	if cmd.Flags().Changed("name") {
		changes.Name = profilepkg.String(profileName)
	}
	if cmd.Flags().Changed("email") {
		changes.Email = profilepkg.String(profileEmail)
	}
	if changes.Name == nil && changes.Email == nil {
		return fmt.Errorf("nothing to change; pass --name or --email")
	}
	rec, err := current.Profiles.Save(cmd.Context(), o, changes)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Profile saved.")
	printProfile(cmd, rec)
	return nil
}

func runProfileImage(cmd *cobra.Command, args []string) error {
	o, err := sessionOwner(cmd)
	if err != nil {
		return err
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	rec, err := current.Profiles.UploadImage(cmd.Context(), o, media.Image{
		Filename:    filepath.Base(args[0]),
		ContentType: mime.TypeByExtension(filepath.Ext(args[0])),
		Body:        f,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Image uploaded: %s\n", rec.ProfileImage)
	return nil
}
