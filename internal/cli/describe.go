package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"geometa/internal/app"
)

type describeOptions struct {
	Depth     int
	Recursive bool
	Profile   string
}

func newDescribeCommand() *cobra.Command {
	opts := describeOptions{}
	cmd := &cobra.Command{
		Use:   "describe <path>",
		Short: "Create or refresh a metadata document for a data source",
		Long: "Inspects a data file or directory, merges the derived attributes with " +
			"any existing metadata document, and writes the result as a YAML sidecar.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescribe(cmd.Context(), cmd, args[0], opts)
		},
	}
	cmd.Flags().IntVar(&opts.Depth, "depth", 0, "Directory recursion depth")
	cmd.Flags().BoolVarP(&opts.Recursive, "recursive", "r", false, "Recurse into subdirectories without a depth bound")
	cmd.Flags().StringVar(&opts.Profile, "profile", "", "Profile file overriding stored defaults")
	_ = viper.BindPFlag("depth", cmd.Flags().Lookup("depth"))
	_ = viper.BindPFlag("profile", cmd.Flags().Lookup("profile"))
	return cmd
}

func runDescribe(ctx context.Context, cmd *cobra.Command, path string, opts describeOptions) error {
	service := app.NewService(viper.GetString("profile_path"))

	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		depth := resolveInt(cmd, opts.Depth, "depth", "depth")
		if resolveBool(cmd, opts.Recursive, "recursive", "recursive") {
			depth = -1
		}
		result, err := service.DescribeCollection(ctx, app.DescribeCollectionRequest{
			Dir:         path,
			Depth:       depth,
			ProfilePath: resolveString(cmd, opts.Profile, "profile", "profile"),
		})
		if err != nil {
			return err
		}
		fmt.Printf("described %d file(s): %s\n", result.Described, result.SidecarPath)
		for _, skipped := range result.Skipped {
			fmt.Printf("skipped %s: %s\n", skipped.Path, skipped.Reason)
		}
		return nil
	}

	result, err := service.Describe(ctx, app.DescribeRequest{
		Path:        path,
		ProfilePath: resolveString(cmd, opts.Profile, "profile", "profile"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("described: %s\n", result.SidecarPath)
	if result.BackedUp {
		fmt.Printf("incompatible document backed up to %s\n", result.BackupPath)
	}
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return value
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
