package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"geometa/internal/app"
)

type validateOptions struct {
	Recursive bool
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "Validate metadata documents against the current schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), cmd, args[0], opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.Recursive, "recursive", "r", false, "Validate sidecars in subdirectories too")
	_ = viper.BindPFlag("recursive", cmd.Flags().Lookup("recursive"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, path string, opts validateOptions) error {
	service := app.NewService(viper.GetString("profile_path"))

	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		result, err := service.ValidateDir(ctx, app.ValidateDirRequest{
			Dir:       path,
			Recursive: resolveBool(cmd, opts.Recursive, "recursive", "recursive"),
		})
		if err != nil {
			return err
		}
		for _, doc := range result.Documents {
			if len(doc.Findings) == 0 {
				fmt.Printf("%s: ok\n", doc.SidecarPath)
				continue
			}
			for _, finding := range doc.Findings {
				fmt.Printf("%s: %s\n", doc.SidecarPath, finding)
			}
		}
		return nil
	}

	result, err := service.Validate(ctx, app.ValidateRequest{Path: path})
	if err != nil {
		return err
	}
	if len(result.Findings) == 0 {
		fmt.Println("ok")
		return nil
	}
	for _, finding := range result.Findings {
		fmt.Println(finding)
	}
	return nil
}
