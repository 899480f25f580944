package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"threadbound/internal/assets"
	"threadbound/internal/bunny"
)

var uploadPrefix string

var uploadImagesCmd = &cobra.Command{
	Use:   "upload-images <dir>",
	Short: "Compress product photos and upload them to the CDN",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if !cfg.BunnyConfigured() {
			return fmt.Errorf("bunny storage is not configured")
		}
		cdn := bunny.New(cfg.BunnyStorageZone, cfg.BunnyAccessKey, cfg.BunnyPullZone, cfg.BunnyStorageHost)

		return filepath.WalkDir(args[0], func(path string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			ext := strings.ToLower(filepath.Ext(path))
			if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
				return nil
			}

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			compressed, err := assets.Recompress(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			name := strings.TrimSuffix(filepath.Base(path), ext) + ".jpg"
			url, err := cdn.Upload(context.Background(), uploadPrefix+"/"+name, bytes.NewReader(compressed), "image/jpeg")
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Printf("%s -> %s (%d bytes)\n", path, url, len(compressed))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(uploadImagesCmd)
	uploadImagesCmd.Flags().StringVar(&uploadPrefix, "prefix", "products", "Storage path prefix")
}
