package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"geometa/internal/app"
	"geometa/internal/types"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or update the stored default profile",
	}
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetContactCommand())
	cmd.AddCommand(newConfigSetLicenseCommand())
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored default profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigure(cmd.Context(), app.ConfigureRequest{})
		},
	}
}

func newConfigSetContactCommand() *cobra.Command {
	contact := types.ContactSchema{}
	cmd := &cobra.Command{
		Use:   "set-contact",
		Short: "Store default contact information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigure(cmd.Context(), app.ConfigureRequest{Contact: &contact})
		},
	}
	cmd.Flags().StringVar(&contact.Email, "email", "", "Contact email address")
	cmd.Flags().StringVar(&contact.Organization, "organization", "", "Responsible organization")
	cmd.Flags().StringVar(&contact.IndividualName, "individual-name", "", "Responsible person")
	cmd.Flags().StringVar(&contact.PositionName, "position-name", "", "Role of the responsible person")
	return cmd
}

func newConfigSetLicenseCommand() *cobra.Command {
	license := types.LicenseSchema{}
	cmd := &cobra.Command{
		Use:   "set-license",
		Short: "Store default license information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigure(cmd.Context(), app.ConfigureRequest{License: &license})
		},
	}
	cmd.Flags().StringVar(&license.Title, "title", "", "License name")
	cmd.Flags().StringVar(&license.Path, "path", "", "URL describing the license")
	return cmd
}

func runConfigure(ctx context.Context, req app.ConfigureRequest) error {
	service := app.NewService(viper.GetString("profile_path"))
	result, err := service.Configure(ctx, req)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(result.Profile)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
